package dto

// CreateReferenceRequest entrada para crear marca, tipo de producto, color o talla.
type CreateReferenceRequest struct {
	Name string `json:"nome" validate:"required,max=100"`
}

// ReferenceResponse salida de un registro de referencia.
type ReferenceResponse struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}
