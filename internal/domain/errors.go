package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("falla de almacenamiento")
)

// Error asocia un mensaje para el cliente a una de las categorías de arriba.
// errors.Is(err, ErrInvalidInput) sigue funcionando a través de Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Invalid construye un error de validación con mensaje legible.
func Invalid(message string) error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

// Conflict construye un error de conflicto con mensaje legible.
func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Message devuelve el mensaje de un *Error o el texto del error si no lo es.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
