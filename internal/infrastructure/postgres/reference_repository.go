package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// referenceTables tabla de cada kind. Todas comparten columnas.
var referenceTables = map[entity.ReferenceKind]string{
	entity.KindBrand:       "brands",
	entity.KindProductType: "product_types",
	entity.KindColor:       "colors",
	entity.KindSize:        "sizes",
}

// ReferenceRepo implementación de ReferenceRepository para una de las tablas de referencia.
type ReferenceRepo struct {
	q     Querier
	kind  entity.ReferenceKind
	table string
}

// NewReferenceRepository construye el adaptador para kind. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier, kind entity.ReferenceKind) *ReferenceRepo {
	table, ok := referenceTables[kind]
	if !ok {
		panic(fmt.Sprintf("postgres: kind de referencia desconocido %q", kind))
	}
	return &ReferenceRepo{q: q, kind: kind, table: table}
}

// Kind tipo de referencia que maneja el repositorio.
func (r *ReferenceRepo) Kind() entity.ReferenceKind { return r.kind }

// Add inserta un registro. Nombre repetido -> domain.ErrDuplicate.
func (r *ReferenceRepo) Add(ctx context.Context, ref *entity.Reference) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, removed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`, r.table)
	_, err := r.q.Exec(ctx, query, ref.ID, ref.Name, ref.Removed, ref.CreatedAt, ref.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageError("insert "+string(r.kind), err)
	}
	return nil
}

// Update reemplaza nombre y flag de borrado.
func (r *ReferenceRepo) Update(ctx context.Context, ref *entity.Reference) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $2, removed = $3, updated_at = $4 WHERE id = $1`, r.table)
	cmd, err := r.q.Exec(ctx, query, ref.ID, ref.Name, ref.Removed, ref.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageError("update "+string(r.kind), err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un registro no removido por ID.
func (r *ReferenceRepo) GetByID(ctx context.Context, id string) (*entity.Reference, error) {
	query := fmt.Sprintf(`
		SELECT id, name, removed, created_at, updated_at
		FROM %s WHERE id = $1 AND removed = false`, r.table)
	ref, err := r.scan(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get "+string(r.kind), err)
	}
	return ref, nil
}

// ListAll lista los registros no removidos ordenados por nombre.
func (r *ReferenceRepo) ListAll(ctx context.Context) ([]*entity.Reference, error) {
	query := fmt.Sprintf(`
		SELECT id, name, removed, created_at, updated_at
		FROM %s WHERE removed = false ORDER BY name ASC, id ASC`, r.table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storageError("list "+r.table, err)
	}
	defer rows.Close()
	list := []*entity.Reference{}
	for rows.Next() {
		ref, err := r.scan(rows)
		if err != nil {
			return nil, storageError("scan "+string(r.kind), err)
		}
		list = append(list, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list "+r.table, err)
	}
	return list, nil
}

func (r *ReferenceRepo) scan(row pgx.Row) (*entity.Reference, error) {
	ref := entity.Reference{Kind: r.kind}
	if err := row.Scan(&ref.ID, &ref.Name, &ref.Removed, &ref.CreatedAt, &ref.UpdatedAt); err != nil {
		return nil, err
	}
	return &ref, nil
}
