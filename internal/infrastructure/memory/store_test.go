package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

func seedReferences(t *testing.T, repos repository.Repositories) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repos.Brands.Add(ctx, &entity.Reference{ID: "b1", Name: "Nike"}))
	require.NoError(t, repos.Colors.Add(ctx, &entity.Reference{ID: "c1", Name: "Azul"}))
	require.NoError(t, repos.Sizes.Add(ctx, &entity.Reference{ID: "s1", Name: "G"}))
	require.NoError(t, repos.Types.Add(ctx, &entity.Reference{ID: "t1", Name: "Tênis"}))
}

func newProduct(id string, price int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID: id, Name: "Produto " + id, SalePrice: decimal.NewFromInt(price), Gender: entity.GenderUnisex,
		BrandID: "b1", ColorID: "c1", SizeID: "s1", TypeID: "t1", CreatedAt: now, UpdatedAt: now,
	}
}

func TestUnitOfWork_CambiosVisiblesSoloTrasCommit(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	reads := memory.NewRepositories(st)
	seedReferences(t, reads)

	err := memory.NewUnitOfWork(st).Do(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Products.Add(ctx, newProduct("p1", 10)))

		got, err := reads.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Nil(t, got, "un add pendiente no debe ser visible antes del commit")
		return nil
	})
	require.NoError(t, err)

	got, err := reads.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nike", got.Brand.Name)
	assert.Equal(t, "Azul", got.Color.Name)
	assert.Equal(t, "G", got.Size.Name)
	assert.Equal(t, "Tênis", got.Type.Name)
}

func TestUnitOfWork_ErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	boom := errors.New("boom")

	err := memory.NewUnitOfWork(st).Do(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Brands.Add(ctx, &entity.Reference{ID: "b1", Name: "Nike"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := memory.NewRepositories(st).Brands.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUnitOfWork_CommitAtomico(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	reads := memory.NewRepositories(st)
	require.NoError(t, reads.Brands.Add(ctx, &entity.Reference{ID: "b1", Name: "Nike"}))

	err := memory.NewUnitOfWork(st).Do(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Brands.Add(ctx, &entity.Reference{ID: "b2", Name: "Puma"}))
		require.NoError(t, repos.Brands.Add(ctx, &entity.Reference{ID: "b3", Name: "Nike"}))
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := reads.Brands.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "ningún cambio del lote debe quedar aplicado")
}

func TestReferenceRepo_ListAllOrdenadoYSinRemovidos(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	for i, name := range []string{"Verde", "Azul", "Preto", "Branco"} {
		require.NoError(t, repos.Colors.Add(ctx, &entity.Reference{ID: fmt.Sprint(i), Name: name}))
	}
	require.NoError(t, repos.Colors.Update(ctx, &entity.Reference{ID: "2", Name: "Preto", Removed: true}))

	list, err := repos.Colors.ListAll(ctx)
	require.NoError(t, err)

	var names []string
	for _, c := range list {
		names = append(names, c.Name)
		assert.Equal(t, entity.KindColor, c.Kind)
	}
	assert.Equal(t, []string{"Azul", "Branco", "Verde"}, names)

	got, err := repos.Colors.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, got, "removido se comporta como inexistente")
}

func TestReferenceRepo_UpdateInexistente(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())

	err := repos.Sizes.Update(context.Background(), &entity.Reference{ID: "x", Name: "P"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_LecturasSonInstantaneas(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	seedReferences(t, repos)
	require.NoError(t, repos.Products.Add(ctx, newProduct("p1", 10)))

	got, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Name = "mutado"
	got.Brand.Name = "mutado"

	again, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Produto p1", again.Name)
	assert.Equal(t, "Nike", again.Brand.Name)
}

func TestProductRepo_UpdateReemplazaRegistro(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	seedReferences(t, repos)
	p := newProduct("p1", 10)
	require.NoError(t, repos.Products.Add(ctx, p))

	p.Removed = true
	require.NoError(t, repos.Products.Update(ctx, p))

	got, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := repos.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, repos.Products.Update(ctx, newProduct("zz", 1)), domain.ErrNotFound)
}

func TestProductRepo_ListPageBuscaSoloEnNombre(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	seedReferences(t, repos)
	for i := 0; i < 5; i++ {
		require.NoError(t, repos.Products.Add(ctx, newProduct(fmt.Sprintf("p%d", i), int64(i))))
	}

	list, total, err := repos.Products.ListPage(ctx, catalog.Page{Size: 2, Index: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)

	list, total, err = repos.Products.ListPage(ctx, catalog.Page{Size: 2, Index: 1}, "nike")
	require.NoError(t, err)
	assert.Equal(t, 0, total, "la marca no participa del listado simple")
	assert.Empty(t, list)

	list, total, err = repos.Products.ListPage(ctx, catalog.Page{Size: 8, Index: 1}, "PRODUTO P3")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "p3", list[0].ID)

	_, _, err = repos.Products.ListPage(ctx, catalog.Page{Size: 0, Index: 1}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepo_SearchBuscaEnReferenciasUnidas(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	seedReferences(t, repos)
	require.NoError(t, repos.Products.Add(ctx, newProduct("p1", 10)))

	list, total, err := repos.Products.Search(ctx, catalog.ProductFilter{Query: "TÊNIS", Page: catalog.Page{Size: 8, Index: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestProductRepo_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repos := memory.NewRepositories(memory.NewStore())

	_, err := repos.Products.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
