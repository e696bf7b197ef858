package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// Repositories agrupa los repositorios atados a una misma unidad de trabajo.
type Repositories struct {
	Products ProductRepository
	Brands   ReferenceRepository
	Types    ReferenceRepository
	Colors   ReferenceRepository
	Sizes    ReferenceRepository
}

// Reference devuelve el repositorio de referencias del kind indicado.
func (r Repositories) Reference(kind entity.ReferenceKind) ReferenceRepository {
	switch kind {
	case entity.KindBrand:
		return r.Brands
	case entity.KindProductType:
		return r.Types
	case entity.KindColor:
		return r.Colors
	case entity.KindSize:
		return r.Sizes
	}
	return nil
}

// UnitOfWork ejecuta fn con repositorios cuyas escrituras quedan pendientes hasta el commit.
// Si fn devuelve error (o hace panic) los cambios se descartan; si no, se confirman.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
