package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// MsgImageRequired mensaje cuando el producto llega sin imagen.
const MsgImageRequired = "Forneça uma imagem para este produto!"

// ImageStore almacén de imágenes write-once por nombre.
type ImageStore interface {
	Save(name string, data []byte) error
	Remove(name string) error
}

// referenceLabels nombre de cada kind en los mensajes al cliente.
var referenceLabels = map[entity.ReferenceKind]string{
	entity.KindBrand:       "Marca",
	entity.KindProductType: "Tipo de produto",
	entity.KindColor:       "Cor",
	entity.KindSize:        "Tamanho",
}

// CatalogUseCase consultas y altas de productos.
type CatalogUseCase struct {
	reads  repository.Repositories
	uow    repository.UnitOfWork
	images ImageStore
	log    *logger.Logger
	now    func() time.Time
}

// NewCatalogUseCase construye el caso de uso. reads son repositorios fuera de transacción.
func NewCatalogUseCase(reads repository.Repositories, uow repository.UnitOfWork, images ImageStore, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{reads: reads, uow: uow, images: images, log: log.Component("catalog"), now: time.Now}
}

// Search consulta filtrada y paginada. Parámetros inválidos no llegan al almacenamiento.
func (uc *CatalogUseCase) Search(ctx context.Context, in dto.SearchProductsRequest) (*dto.PagedResult[dto.ProductResponse], error) {
	filter, err := toProductFilter(in)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.reads.Products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.PagedResult[dto.ProductResponse]{
		List:         toProductList(list),
		TotalResults: total,
		PageIndex:    in.PageIndex,
		PageSize:     in.PageSize,
		Query:        in.Query,
	}, nil
}

// ListPage listado simple paginado (búsqueda sólo por nombre).
func (uc *CatalogUseCase) ListPage(ctx context.Context, pageSize, pageIndex int, query string) (*dto.PagedResult[dto.ProductResponse], error) {
	page := catalog.Page{Size: pageSize, Index: pageIndex}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.reads.Products.ListPage(ctx, page, query)
	if err != nil {
		return nil, err
	}
	return &dto.PagedResult[dto.ProductResponse]{
		List:         toProductList(list),
		TotalResults: total,
		PageIndex:    pageIndex,
		PageSize:     pageSize,
		Query:        query,
	}, nil
}

// ListAll todos los productos activos.
func (uc *CatalogUseCase) ListAll(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.reads.Products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// GetByID obtiene un producto. nil, nil si no existe, está removido o el ID no es un UUID.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	id, ok := normalizeID(id)
	if !ok {
		return nil, nil
	}
	p, err := uc.reads.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Create valida, guarda la imagen y persiste el producto en una unidad de trabajo.
// Si la persistencia falla después de guardar la imagen, la imagen se borra.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Image == "" || in.ImageUpload == "" {
		return nil, domain.Invalid(MsgImageRequired)
	}
	if in.SalePrice.IsNegative() {
		return nil, domain.Invalid("O valor de venda não pode ser negativo.")
	}
	gender := entity.Gender(in.Gender)
	if !gender.Valid() {
		return nil, domain.Invalid("Gênero inválido.")
	}
	data, err := base64.StdEncoding.DecodeString(in.ImageUpload)
	if err != nil {
		return nil, domain.Invalid("A imagem deve estar em base64.")
	}

	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		SalePrice:   in.SalePrice,
		Gender:      gender,
		Image:       uuid.New().String() + "_" + in.Image,
		BrandID:     in.BrandID,
		TypeID:      in.TypeID,
		ColorID:     in.ColorID,
		SizeID:      in.SizeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved := false
	err = uc.uow.Do(ctx, func(repos repository.Repositories) error {
		for _, kind := range entity.Kinds {
			ref, err := activeReference(ctx, repos.Reference(kind), product.ReferenceID(kind))
			if err != nil {
				return err
			}
			product.SetReference(ref)
		}
		if err := uc.images.Save(product.Image, data); err != nil {
			return err
		}
		saved = true
		return repos.Products.Add(ctx, product)
	})
	if err != nil {
		if saved {
			if rmErr := uc.images.Remove(product.Image); rmErr != nil {
				uc.log.Error().Err(rmErr).Str("image", product.Image).Msg("no se pudo borrar la imagen huérfana")
			}
		}
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("image", product.Image).Msg("producto creado")
	return toProductResponse(product), nil
}

// Remove borrado lógico de un producto. false si no existe.
func (uc *CatalogUseCase) Remove(ctx context.Context, id string) (bool, error) {
	id, ok := normalizeID(id)
	if !ok {
		return false, nil
	}
	found := false
	err := uc.uow.Do(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByID(ctx, id)
		if err != nil || p == nil {
			return err
		}
		found = true
		p.Removed = true
		p.UpdatedAt = uc.now()
		return repos.Products.Update(ctx, p)
	})
	return found, err
}

// activeReference exige que id exista y no esté removido (invariante de creación).
func activeReference(ctx context.Context, repo repository.ReferenceRepository, id string) (*entity.Reference, error) {
	label := referenceLabels[repo.Kind()]
	id, ok := normalizeID(id)
	if !ok {
		return nil, domain.Invalid(fmt.Sprintf("%s inválida.", label))
	}
	ref, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, domain.Invalid(fmt.Sprintf("%s informada não existe.", label))
	}
	return ref, nil
}

// toProductFilter traduce el cuerpo de filtros a catalog.ProductFilter. Varios criterios
// sobre el mismo campo se suman al mismo conjunto.
func toProductFilter(in dto.SearchProductsRequest) (catalog.ProductFilter, error) {
	f := catalog.ProductFilter{
		Sort:  catalog.SortMode(in.Sort),
		Query: in.Query,
		Page:  catalog.Page{Size: in.PageSize, Index: in.PageIndex},
	}
	for _, fr := range in.Filters {
		if fr.Field == "genero" {
			for _, v := range fr.Values {
				g, err := strconv.Atoi(v)
				if err != nil {
					return f, domain.Invalid(fmt.Sprintf("Gênero inválido: %s", v))
				}
				f.Genders = append(f.Genders, entity.Gender(g))
			}
			continue
		}
		ids := make([]string, 0, len(fr.Values))
		for _, v := range fr.Values {
			id, ok := normalizeID(v)
			if !ok {
				return f, domain.Invalid(fmt.Sprintf("Identificador inválido no filtro %s: %s", fr.Field, v))
			}
			ids = append(ids, id)
		}
		switch fr.Field {
		case "cor":
			f.ColorIDs = append(f.ColorIDs, ids...)
		case "marca":
			f.BrandIDs = append(f.BrandIDs, ids...)
		case "tamanho":
			f.SizeIDs = append(f.SizeIDs, ids...)
		case "tipoProduto":
			f.TypeIDs = append(f.TypeIDs, ids...)
		default:
			return f, domain.Invalid(fmt.Sprintf("Filtro desconhecido: %s", fr.Field))
		}
	}
	return f, nil
}

// normalizeID devuelve el UUID en forma canónica (minúsculas, con guiones).
// Acepta mayúsculas, llaves y el prefijo urn:uuid:.
func normalizeID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
