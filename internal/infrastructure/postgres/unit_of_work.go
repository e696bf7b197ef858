package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// NewRepositories arma el juego de repositorios sobre q (pool para lecturas, tx dentro de Do).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Products: NewProductRepository(q),
		Brands:   NewReferenceRepository(q, entity.KindBrand),
		Types:    NewReferenceRepository(q, entity.KindProductType),
		Colors:   NewReferenceRepository(q, entity.KindColor),
		Sizes:    NewReferenceRepository(q, entity.KindSize),
	}
}

// UnitOfWork ejecuta callbacks dentro de una transacción PostgreSQL.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork construye la unidad de trabajo con el pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Do inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido cubre también un panic dentro de fn; tras el Commit no tiene efecto.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)
