package usecase_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/storage"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

type fixture struct {
	store  *memory.Store
	repos  repository.Repositories
	fs     afero.Fs
	uc     *usecase.CatalogUseCase
	refs   *usecase.ReferenceUseCase
	brands []string
	color  string
	size   string
	typ    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	repos := memory.NewRepositories(st)
	uow := memory.NewUnitOfWork(st)
	fs := afero.NewMemMapFs()

	f := &fixture{
		store: st,
		repos: repos,
		fs:    fs,
		uc:    usecase.NewCatalogUseCase(repos, uow, storage.NewImageStore(fs), logger.Nop()),
		refs:  usecase.NewReferenceUseCase(repos, uow),
	}
	for _, name := range []string{"Nike", "Adidas", "Puma"} {
		r, err := f.refs.Create(ctx, entity.KindBrand, dto.CreateReferenceRequest{Name: name})
		require.NoError(t, err)
		f.brands = append(f.brands, r.ID)
	}
	c, err := f.refs.Create(ctx, entity.KindColor, dto.CreateReferenceRequest{Name: "Azul"})
	require.NoError(t, err)
	s, err := f.refs.Create(ctx, entity.KindSize, dto.CreateReferenceRequest{Name: "M"})
	require.NoError(t, err)
	tp, err := f.refs.Create(ctx, entity.KindProductType, dto.CreateReferenceRequest{Name: "Camiseta"})
	require.NoError(t, err)
	f.color, f.size, f.typ = c.ID, s.ID, tp.ID
	return f
}

func (f *fixture) request(name, brand string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        name,
		Description: "algodão",
		SalePrice:   decimal.RequireFromString("59.90"),
		Gender:      int(entity.GenderUnisex),
		BrandID:     brand,
		TypeID:      f.typ,
		ColorID:     f.color,
		SizeID:      f.size,
		Image:       "foto.png",
		ImageUpload: base64.StdEncoding.EncodeToString([]byte("png")),
	}
}

// seed crea 20 productos: 3 de la segunda marca y el resto de la primera.
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	for i := 0; i < 20; i++ {
		brand := f.brands[0]
		if i < 3 {
			brand = f.brands[1]
		}
		_, err := f.uc.Create(context.Background(), f.request(fmt.Sprintf("Camiseta %02d", i), brand))
		require.NoError(t, err)
	}
}

func TestCatalogUseCase_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.Create(ctx, f.request("Camiseta básica", f.brands[0]))
	require.NoError(t, err)
	assert.Equal(t, "Camiseta básica", out.Name)
	assert.True(t, decimal.RequireFromString("59.90").Equal(out.SalePrice))
	require.NotNil(t, out.Brand)
	assert.Equal(t, "Nike", out.Brand.Name)
	assert.Regexp(t, `^[0-9a-f-]{36}_foto\.png$`, out.Image)

	data, err := afero.ReadFile(f.fs, out.Image)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	got, err := f.uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Azul", got.Color.Name)
}

func TestCatalogUseCase_CreateSinImagen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, mutate := range []func(*dto.CreateProductRequest){
		func(r *dto.CreateProductRequest) { r.ImageUpload = "" },
		func(r *dto.CreateProductRequest) { r.Image = "" },
	} {
		req := f.request("Sem imagem", f.brands[0])
		mutate(&req)
		_, err := f.uc.Create(ctx, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, usecase.MsgImageRequired, domain.Message(err))
	}

	all, err := f.uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCatalogUseCase_CreateValidaEntrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"precio negativo", func(r *dto.CreateProductRequest) { r.SalePrice = decimal.NewFromInt(-1) }},
		{"género fuera de rango", func(r *dto.CreateProductRequest) { r.Gender = 4 }},
		{"base64 inválido", func(r *dto.CreateProductRequest) { r.ImageUpload = "%%%" }},
		{"marca inexistente", func(r *dto.CreateProductRequest) { r.BrandID = uuid.NewString() }},
		{"color no uuid", func(r *dto.CreateProductRequest) { r.ColorID = "azul" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("Produto", f.brands[0])
			tt.mutate(&req)
			_, err := f.uc.Create(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	files, err := afero.ReadDir(f.fs, "/")
	require.NoError(t, err)
	assert.Empty(t, files, "ninguna imagen debe quedar tras un alta fallida")
}

func TestCatalogUseCase_CreateReferenciaRemovida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.refs.Remove(ctx, entity.KindBrand, f.brands[2])
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.uc.Create(ctx, f.request("Produto", f.brands[2]))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, domain.Message(err), "Marca")
}

type failingImages struct {
	saved   []string
	removed []string
	saveErr error
}

func (s *failingImages) Save(name string, _ []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, name)
	return nil
}

func (s *failingImages) Remove(name string) error {
	s.removed = append(s.removed, name)
	return nil
}

type failingUoW struct {
	inner repository.UnitOfWork
	err   error
}

func (u failingUoW) Do(ctx context.Context, fn func(repository.Repositories) error) error {
	return u.inner.Do(ctx, func(repos repository.Repositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		return u.err
	})
}

func TestCatalogUseCase_CreateCompensaImagenSiFallaCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := memory.NewStore()
	repos := memory.NewRepositories(st)
	ids := map[entity.ReferenceKind]string{
		entity.KindBrand: f.brands[0], entity.KindColor: f.color,
		entity.KindSize: f.size, entity.KindProductType: f.typ,
	}
	for _, kind := range entity.Kinds {
		require.NoError(t, repos.Reference(kind).Add(ctx, &entity.Reference{ID: ids[kind], Name: string(kind)}))
	}

	images := &failingImages{}
	boom := errors.New("commit falhou")
	uc := usecase.NewCatalogUseCase(repos, failingUoW{inner: memory.NewUnitOfWork(st), err: boom}, images, logger.Nop())

	_, err := uc.Create(ctx, f.request("Produto", f.brands[0]))
	require.ErrorIs(t, err, boom)
	require.Len(t, images.saved, 1)
	assert.Equal(t, images.saved, images.removed)

	all, err := repos.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCatalogUseCase_CreateNombreDeImagenRepetido(t *testing.T) {
	f := newFixture(t)
	images := &failingImages{saveErr: domain.Conflict(storage.MsgFileExists)}
	uc := usecase.NewCatalogUseCase(f.repos, memory.NewUnitOfWork(f.store), images, logger.Nop())

	_, err := uc.Create(context.Background(), f.request("Produto", f.brands[0]))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, storage.MsgFileExists, domain.Message(err))
	assert.Empty(t, images.removed)
}

func TestCatalogUseCase_SearchPrimeraPagina(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	out, err := f.uc.Search(context.Background(), dto.SearchProductsRequest{PageSize: 8, PageIndex: 1})
	require.NoError(t, err)
	assert.Len(t, out.List, 8)
	assert.Equal(t, 20, out.TotalResults)
	assert.Equal(t, 1, out.PageIndex)
	assert.Equal(t, 8, out.PageSize)
}

func TestCatalogUseCase_SearchPorMarca(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	out, err := f.uc.Search(context.Background(), dto.SearchProductsRequest{
		Filters:   []dto.FilterRequest{{Field: "marca", Values: []string{f.brands[1]}}},
		PageSize:  8,
		PageIndex: 1,
	})
	require.NoError(t, err)
	assert.Len(t, out.List, 3)
	assert.Equal(t, 3, out.TotalResults)
	for _, p := range out.List {
		assert.Equal(t, f.brands[1], p.BrandID)
	}
}

func TestCatalogUseCase_IDsEnMayusculasSeNormalizan(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	upper := strings.ToUpper(f.brands[1])
	out, err := f.uc.Search(ctx, dto.SearchProductsRequest{
		Filters: []dto.FilterRequest{
			{Field: "marca", Values: []string{upper}},
			{Field: "cor", Values: []string{"{" + f.color + "}"}},
		},
		PageSize:  8,
		PageIndex: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalResults)

	created, err := f.uc.Create(ctx, f.request("Boné", upper))
	require.NoError(t, err)
	assert.Equal(t, f.brands[1], created.BrandID)

	got, err := f.uc.GetByID(ctx, strings.ToUpper(created.ID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	ok, err := f.uc.Remove(ctx, strings.ToUpper(created.ID))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCatalogUseCase_SearchTextoYOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, price := range []string{"30", "10", "20"} {
		req := f.request(fmt.Sprintf("Boné %d", i), f.brands[0])
		req.SalePrice = decimal.RequireFromString(price)
		_, err := f.uc.Create(ctx, req)
		require.NoError(t, err)
	}
	_, err := f.uc.Create(ctx, f.request("Camiseta", f.brands[0]))
	require.NoError(t, err)

	out, err := f.uc.Search(ctx, dto.SearchProductsRequest{PageSize: 10, PageIndex: 1, Sort: 2, Query: "BONÉ"})
	require.NoError(t, err)
	require.Len(t, out.List, 3)
	assert.Equal(t, 3, out.TotalResults)
	assert.Equal(t, "30", out.List[0].SalePrice.String())
	assert.Equal(t, "10", out.List[2].SalePrice.String())
}

func TestCatalogUseCase_SearchParametrosInvalidos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.SearchProductsRequest
	}{
		{"tamaño cero", dto.SearchProductsRequest{PageSize: 0, PageIndex: 1}},
		{"página cero", dto.SearchProductsRequest{PageSize: 8, PageIndex: 0}},
		{"orden desconocido", dto.SearchProductsRequest{PageSize: 8, PageIndex: 1, Sort: 7}},
		{"campo desconocido", dto.SearchProductsRequest{PageSize: 8, PageIndex: 1,
			Filters: []dto.FilterRequest{{Field: "preco", Values: []string{"1"}}}}},
		{"género no numérico", dto.SearchProductsRequest{PageSize: 8, PageIndex: 1,
			Filters: []dto.FilterRequest{{Field: "genero", Values: []string{"x"}}}}},
		{"id no uuid", dto.SearchProductsRequest{PageSize: 8, PageIndex: 1,
			Filters: []dto.FilterRequest{{Field: "cor", Values: []string{"azul"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Search(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCatalogUseCase_ListPage(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	out, err := f.uc.ListPage(ctx, 8, 3, "")
	require.NoError(t, err)
	assert.Len(t, out.List, 4)
	assert.Equal(t, 20, out.TotalResults)

	out, err = f.uc.ListPage(ctx, 8, 1, "camiseta 1")
	require.NoError(t, err)
	assert.Equal(t, 10, out.TotalResults)

	_, err = f.uc.ListPage(ctx, -1, 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogUseCase_GetByIDYRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.uc.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)

	created, err := f.uc.Create(ctx, f.request("Produto", f.brands[0]))
	require.NoError(t, err)

	ok, err := f.uc.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = f.uc.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReferenceUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.refs.List(ctx, entity.KindBrand)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Adidas", "Nike", "Puma"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = f.refs.Create(ctx, entity.KindBrand, dto.CreateReferenceRequest{Name: "  Nike "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.refs.Create(ctx, entity.KindColor, dto.CreateReferenceRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err := f.refs.Remove(ctx, entity.KindBrand, f.brands[0])
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = f.refs.List(ctx, entity.KindBrand)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	ok, err = f.refs.Remove(ctx, entity.KindBrand, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}
