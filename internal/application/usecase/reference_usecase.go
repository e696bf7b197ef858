package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ReferenceUseCase casos de uso CRUD para marcas, tipos de producto, colores y tallas.
type ReferenceUseCase struct {
	reads repository.Repositories
	uow   repository.UnitOfWork
	now   func() time.Time
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(reads repository.Repositories, uow repository.UnitOfWork) *ReferenceUseCase {
	return &ReferenceUseCase{reads: reads, uow: uow, now: time.Now}
}

// List registros activos de kind ordenados por nombre.
func (uc *ReferenceUseCase) List(ctx context.Context, kind entity.ReferenceKind) ([]dto.ReferenceResponse, error) {
	list, err := uc.reads.Reference(kind).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReferenceResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReferenceResponse(r))
	}
	return items, nil
}

// Create agrega un registro. Nombre repetido -> domain.ErrDuplicate.
func (uc *ReferenceUseCase) Create(ctx context.Context, kind entity.ReferenceKind, in dto.CreateReferenceRequest) (*dto.ReferenceResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("O nome é obrigatório.")
	}
	now := uc.now()
	ref := &entity.Reference{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Reference(kind).Add(ctx, ref)
	})
	if err != nil {
		return nil, err
	}
	return toReferenceResponse(ref), nil
}

// Remove borrado lógico. false si no existe.
func (uc *ReferenceUseCase) Remove(ctx context.Context, kind entity.ReferenceKind, id string) (bool, error) {
	id, ok := normalizeID(id)
	if !ok {
		return false, nil
	}
	found := false
	err := uc.uow.Do(ctx, func(repos repository.Repositories) error {
		repo := repos.Reference(kind)
		ref, err := repo.GetByID(ctx, id)
		if err != nil || ref == nil {
			return err
		}
		found = true
		ref.Removed = true
		ref.UpdatedAt = uc.now()
		return repo.Update(ctx, ref)
	})
	return found, err
}
