package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. ImageUpload es la imagen en base64
// e Image el nombre declarado del archivo.
type CreateProductRequest struct {
	Name        string          `json:"nome" validate:"required,min=1,max=200"`
	Description string          `json:"descricao" validate:"max=2000"`
	SalePrice   decimal.Decimal `json:"valorVenda"`
	Gender      int             `json:"genero" validate:"oneof=1 2 3"`
	BrandID     string          `json:"marcaId" validate:"required,uuid"`
	TypeID      string          `json:"tipoProdutoId" validate:"required,uuid"`
	ColorID     string          `json:"corId" validate:"required,uuid"`
	SizeID      string          `json:"tamanhoId" validate:"required,uuid"`
	Image       string          `json:"imagem" validate:"max=200"`
	ImageUpload string          `json:"imagemUpload"`
}

// ProductResponse salida de un producto con sus referencias unidas.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"nome"`
	Description string             `json:"descricao"`
	SalePrice   decimal.Decimal    `json:"valorVenda"`
	Gender      int                `json:"genero"`
	Image       string             `json:"imagem"`
	BrandID     string             `json:"marcaId"`
	TypeID      string             `json:"tipoProdutoId"`
	ColorID     string             `json:"corId"`
	SizeID      string             `json:"tamanhoId"`
	Brand       *ReferenceResponse `json:"marca,omitempty"`
	Type        *ReferenceResponse `json:"tipoProduto,omitempty"`
	Color       *ReferenceResponse `json:"cor,omitempty"`
	Size        *ReferenceResponse `json:"tamanho,omitempty"`
	CreatedAt   time.Time          `json:"criadoEm"`
}

// FilterRequest un criterio del cuerpo de /catalogo/filtroPaginado.
type FilterRequest struct {
	Field  string   `json:"campo" validate:"required,oneof=cor marca tamanho tipoProduto genero"`
	Values []string `json:"valores"`
}

// SearchProductsRequest parámetros completos de la búsqueda filtrada.
type SearchProductsRequest struct {
	Filters   []FilterRequest `validate:"dive"`
	PageSize  int
	PageIndex int
	Sort      int
	Query     string
}
