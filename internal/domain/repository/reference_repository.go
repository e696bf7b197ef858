package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ReferenceRepository define el puerto de persistencia para una tabla de referencia
// (marcas, tipos de producto, colores o tallas). Hay una instancia por Kind.
type ReferenceRepository interface {
	Kind() entity.ReferenceKind
	Add(ctx context.Context, ref *entity.Reference) error
	Update(ctx context.Context, ref *entity.Reference) error
	GetByID(ctx context.Context, id string) (*entity.Reference, error)
	// ListAll devuelve los registros no removidos ordenados por nombre.
	ListAll(ctx context.Context) ([]*entity.Reference, error)
}
