package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven instantáneas; GetByID devuelve nil, nil si no existe o está removido.
type ProductRepository interface {
	Add(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// ListPage listado simple: busca query sólo en el nombre y devuelve el total de ese mismo conjunto.
	ListPage(ctx context.Context, page catalog.Page, query string) ([]*entity.Product, int, error)
	// Search consulta filtrada, ordenada y paginada; total es el conteo filtrado sin paginar.
	Search(ctx context.Context, filter catalog.ProductFilter) ([]*entity.Product, int, error)
}
