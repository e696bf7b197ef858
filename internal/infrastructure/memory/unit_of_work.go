package memory

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork acumula los cambios de fn y los aplica de forma atómica si fn termina sin error.
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork construye la unidad de trabajo sobre st.
func NewUnitOfWork(st *Store) *UnitOfWork {
	return &UnitOfWork{store: st}
}

// Do ejecuta fn. Un error o panic en fn descarta todo lo pendiente.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	var pending []op
	repos := newRepositories(u.store, func(o op) error {
		pending = append(pending, o)
		return nil
	})
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.store.apply(pending...)
}
