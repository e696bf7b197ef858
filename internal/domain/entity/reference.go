package entity

import "time"

// ReferenceKind identifica la tabla de catálogo a la que pertenece un Reference.
type ReferenceKind string

const (
	KindBrand       ReferenceKind = "brand"
	KindProductType ReferenceKind = "product_type"
	KindColor       ReferenceKind = "color"
	KindSize        ReferenceKind = "size"
)

// Kinds lista los tipos de referencia en el orden en que se exponen.
var Kinds = []ReferenceKind{KindBrand, KindProductType, KindColor, KindSize}

// Reference representa un registro simple con nombre (marca, tipo de producto, color o talla).
// Los productos lo referencian por ID; el registro no conoce a sus productos.
type Reference struct {
	ID        string
	Kind      ReferenceKind
	Name      string
	Removed   bool // borrado lógico: nunca aparece en listados
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Copy devuelve una copia independiente (nil-safe).
func (r *Reference) Copy() *Reference {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
