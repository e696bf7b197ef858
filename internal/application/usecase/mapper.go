package usecase

import (
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SalePrice:   p.SalePrice,
		Gender:      int(p.Gender),
		Image:       p.Image,
		BrandID:     p.BrandID,
		TypeID:      p.TypeID,
		ColorID:     p.ColorID,
		SizeID:      p.SizeID,
		Brand:       toReferenceResponse(p.Brand),
		Type:        toReferenceResponse(p.Type),
		Color:       toReferenceResponse(p.Color),
		Size:        toReferenceResponse(p.Size),
		CreatedAt:   p.CreatedAt,
	}
}

func toProductList(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toReferenceResponse(r *entity.Reference) *dto.ReferenceResponse {
	if r == nil {
		return nil
	}
	return &dto.ReferenceResponse{ID: r.ID, Name: r.Name}
}
