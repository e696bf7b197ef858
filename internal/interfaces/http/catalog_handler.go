package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// Valores por defecto de la consulta paginada.
const (
	defaultPageSize  = 8
	defaultPageIndex = 1
)

// CatalogHandler maneja las rutas de productos del catálogo.
type CatalogHandler struct {
	uc  *usecase.CatalogUseCase
	log *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// Search godoc
// @Summary      Consulta filtrada y paginada de productos
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        body       body   []dto.FilterRequest  false  "Filtros por campo"
// @Param        ps         query  int     false  "Tamaño de página"  default(8)
// @Param        page       query  int     false  "Página (desde 1)"  default(1)
// @Param        ordenacao  query  int     false  "0 = padrão, 1 = menor preço, 2 = maior preço"  default(0)
// @Param        q          query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.PagedResult[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /catalogo/filtroPaginado [post]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	in := dto.SearchProductsRequest{Query: c.Query("q")}
	var err error
	if in.PageSize, err = queryInt(c, "ps", defaultPageSize); err != nil {
		return writeError(c, h.log, err)
	}
	if in.PageIndex, err = queryInt(c, "page", defaultPageIndex); err != nil {
		return writeError(c, h.log, err)
	}
	if in.Sort, err = queryInt(c, "ordenacao", 0); err != nil {
		return writeError(c, h.log, err)
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in.Filters); err != nil {
			return invalidBody(c)
		}
	}
	if err := validateBody(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListPage godoc
// @Summary      Listado paginado simple (busca sólo por nombre)
// @Tags         catalogo
// @Produce      json
// @Param        ps    query  int     false  "Tamaño de página"  default(8)
// @Param        page  query  int     false  "Página (desde 1)"  default(1)
// @Param        q     query  string  false  "Texto a buscar en el nombre"
// @Success      200  {object}  dto.PagedResult[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /catalogo/paginado [get]
func (h *CatalogHandler) ListPage(c *fiber.Ctx) error {
	ps, err := queryInt(c, "ps", defaultPageSize)
	if err != nil {
		return writeError(c, h.log, err)
	}
	page, err := queryInt(c, "page", defaultPageIndex)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ListPage(c.UserContext(), ps, page, c.Query("q"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Todos los productos activos
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /catalogo/produtos [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         catalogo
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /catalogo/produtosPorId/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto con imagen en base64
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /catalogo/produtos [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateBody(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Borrado lógico de un producto
// @Tags         catalogo
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /catalogo/produtos/{id} [delete]
func (h *CatalogHandler) Remove(c *fiber.Ctx) error {
	ok, err := h.uc.Remove(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !ok {
		return notFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// queryInt lee un entero de la query string; vacío -> def, no numérico -> error de validación.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(key)
	}
	return n, nil
}
