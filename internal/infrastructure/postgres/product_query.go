package postgres

import (
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres/sqlbuilder"
)

var productColumns = []string{
	"p.id", "p.name", "p.description", "p.sale_price", "p.gender", "p.image",
	"p.brand_id", "p.type_id", "p.color_id", "p.size_id", "p.removed", "p.created_at", "p.updated_at",
	"b.name", "t.name", "c.name", "s.name",
}

// referenceColumn columna FK en products por cada kind.
var referenceColumn = map[entity.ReferenceKind]string{
	entity.KindBrand:       "p.brand_id",
	entity.KindProductType: "p.type_id",
	entity.KindColor:       "p.color_id",
	entity.KindSize:        "p.size_id",
}

// productBase SELECT de productos no removidos con las cuatro referencias unidas.
func productBase() *sqlbuilder.Builder {
	return sqlbuilder.From("products p").
		Select(productColumns...).
		Join("LEFT JOIN brands b ON b.id = p.brand_id").
		Join("LEFT JOIN product_types t ON t.id = p.type_id").
		Join("LEFT JOIN colors c ON c.id = p.color_id").
		Join("LEFT JOIN sizes s ON s.id = p.size_id").
		Where(sqlbuilder.Eq("p.removed", false))
}

// productSearch aplica los filtros de f en el orden fijo: dimensiones, género, texto.
// Devuelve el builder sin orden ni paginación para poder derivar el COUNT.
func productSearch(f catalog.ProductFilter) *sqlbuilder.Builder {
	b := productBase()
	for _, kind := range catalog.FilterKinds {
		b = b.Where(sqlbuilder.In(referenceColumn[kind], f.IDsFor(kind)))
	}
	genders := make([]int16, 0, len(f.Genders))
	for _, g := range f.Genders {
		genders = append(genders, int16(g))
	}
	b = b.Where(sqlbuilder.In("p.gender", genders))
	return b.Where(sqlbuilder.ContainsAny(catalog.Fold(f.Query),
		"p.name", "p.description", "b.name", "c.name", "s.name", "t.name"))
}

// orderAndPage agrega ORDER BY según mode y la paginación.
func orderAndPage(b *sqlbuilder.Builder, mode catalog.SortMode, page catalog.Page) *sqlbuilder.Builder {
	switch mode {
	case catalog.SortPriceAsc:
		b = b.OrderBy("p.sale_price", sqlbuilder.Asc)
	case catalog.SortPriceDesc:
		b = b.OrderBy("p.sale_price", sqlbuilder.Desc)
	default:
		b = b.OrderBy("p.created_at", sqlbuilder.Asc)
	}
	return b.OrderBy("p.id", sqlbuilder.Asc).
		Limit(page.Size).
		Offset(page.Offset())
}
