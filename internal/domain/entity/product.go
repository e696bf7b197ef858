package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender categoría de género del producto.
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderUnisex Gender = 3
)

// Valid indica si el valor pertenece a la enumeración.
func (g Gender) Valid() bool {
	return g >= GenderMale && g <= GenderUnisex
}

// Product representa un producto del catálogo.
// BrandID, TypeID, ColorID y SizeID son claves foráneas; Brand, Type, Color y Size
// se completan sólo cuando el repositorio hace el join.
type Product struct {
	ID          string
	Name        string
	Description string
	SalePrice   decimal.Decimal // valor de venta
	Gender      Gender
	Image       string // nombre del archivo en el image store
	BrandID     string
	TypeID      string
	ColorID     string
	SizeID      string
	Removed     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Brand *Reference
	Type  *Reference
	Color *Reference
	Size  *Reference
}

// Copy devuelve una copia profunda, incluidas las referencias unidas.
func (p *Product) Copy() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Brand = p.Brand.Copy()
	c.Type = p.Type.Copy()
	c.Color = p.Color.Copy()
	c.Size = p.Size.Copy()
	return &c
}

// ReferenceID devuelve la clave foránea correspondiente a kind.
func (p *Product) ReferenceID(kind ReferenceKind) string {
	switch kind {
	case KindBrand:
		return p.BrandID
	case KindProductType:
		return p.TypeID
	case KindColor:
		return p.ColorID
	case KindSize:
		return p.SizeID
	}
	return ""
}

// SetReference asigna la referencia unida y su clave foránea según su Kind.
func (p *Product) SetReference(ref *Reference) {
	if ref == nil {
		return
	}
	switch ref.Kind {
	case KindBrand:
		p.Brand, p.BrandID = ref, ref.ID
	case KindProductType:
		p.Type, p.TypeID = ref, ref.ID
	case KindColor:
		p.Color, p.ColorID = ref, ref.ID
	case KindSize:
		p.Size, p.SizeID = ref, ref.ID
	}
}
