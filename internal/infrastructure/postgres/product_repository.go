package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres/sqlbuilder"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Add inserta un producto. Dentro de una tx no es durable hasta el commit.
func (r *ProductRepo) Add(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sale_price, gender, image, brand_id, type_id, color_id, size_id, removed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SalePrice, int16(p.Gender), p.Image,
		p.BrandID, p.TypeID, p.ColorID, p.SizeID, p.Removed, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageError("insert product", err)
	}
	return nil
}

// Update reemplaza el registro completo.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, sale_price = $4, gender = $5, image = $6,
			brand_id = $7, type_id = $8, color_id = $9, size_id = $10, removed = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SalePrice, int16(p.Gender), p.Image,
		p.BrandID, p.TypeID, p.ColorID, p.SizeID, p.Removed, p.UpdatedAt,
	)
	if err != nil {
		return storageError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un producto no removido con sus referencias unidas.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	stmt := productBase().Where(sqlbuilder.Eq("p.id", id)).Build()
	p, err := scanProduct(r.q.QueryRow(ctx, stmt.SQL, stmt.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get product", err)
	}
	return p, nil
}

// ListAll lista todos los productos no removidos, en orden de almacenamiento.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	stmt := productBase().
		OrderBy("p.created_at", sqlbuilder.Asc).
		OrderBy("p.id", sqlbuilder.Asc).
		Build()
	return r.list(ctx, "list products", stmt)
}

// ListPage listado simple paginado; query se busca sólo en el nombre.
func (r *ProductRepo) ListPage(ctx context.Context, page catalog.Page, query string) ([]*entity.Product, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	b := productBase().Where(sqlbuilder.ContainsAny(catalog.Fold(query), "p.name"))
	return r.page(ctx, "list products page", b, catalog.SortDefault, page)
}

// Search consulta filtrada. El total se calcula con el mismo WHERE, sin paginar.
func (r *ProductRepo) Search(ctx context.Context, f catalog.ProductFilter) ([]*entity.Product, int, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}
	return r.page(ctx, "search products", productSearch(f), f.Sort, f.Page)
}

func (r *ProductRepo) page(ctx context.Context, op string, b *sqlbuilder.Builder, mode catalog.SortMode, page catalog.Page) ([]*entity.Product, int, error) {
	count := b.Count().Build()
	var total int
	if err := r.q.QueryRow(ctx, count.SQL, count.Args...).Scan(&total); err != nil {
		return nil, 0, storageError(op+" count", err)
	}
	if total == 0 || page.Offset() < 0 || page.Offset() >= total {
		return []*entity.Product{}, total, nil
	}
	list, err := r.list(ctx, op, orderAndPage(b, mode, page).Build())
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) list(ctx context.Context, op string, stmt sqlbuilder.Statement) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageError(fmt.Sprintf("%s: scan", op), err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return list, nil
}

// scanProduct lee una fila con el orden de productColumns.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                                         entity.Product
		gender                                    int16
		brandName, typeName, colorName, sizeName *string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.SalePrice, &gender, &p.Image,
		&p.BrandID, &p.TypeID, &p.ColorID, &p.SizeID, &p.Removed, &p.CreatedAt, &p.UpdatedAt,
		&brandName, &typeName, &colorName, &sizeName,
	)
	if err != nil {
		return nil, err
	}
	p.Gender = entity.Gender(gender)
	p.Brand = joined(entity.KindBrand, p.BrandID, brandName)
	p.Type = joined(entity.KindProductType, p.TypeID, typeName)
	p.Color = joined(entity.KindColor, p.ColorID, colorName)
	p.Size = joined(entity.KindSize, p.SizeID, sizeName)
	return &p, nil
}

// joined arma la referencia unida; un LEFT JOIN sin fila deja la referencia en nil.
func joined(kind entity.ReferenceKind, id string, name *string) *entity.Reference {
	if name == nil {
		return nil
	}
	return &entity.Reference{ID: id, Kind: kind, Name: *name}
}
