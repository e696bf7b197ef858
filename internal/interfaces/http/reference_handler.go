package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ReferenceHandler rutas de una tabla de referencia (marcas, tipos, colores o tallas).
type ReferenceHandler struct {
	uc   *usecase.ReferenceUseCase
	kind entity.ReferenceKind
	log  *logger.Logger
}

// NewReferenceHandler construye el handler para kind.
func NewReferenceHandler(uc *usecase.ReferenceUseCase, kind entity.ReferenceKind, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, kind: kind, log: log}
}

// List godoc
// @Summary      Listar registros activos ordenados por nombre
// @Tags         referencias
// @Produce      json
// @Success      200  {array}  dto.ReferenceResponse
// @Router       /catalogo/marcas [get]
// @Router       /catalogo/tipoProduto [get]
// @Router       /catalogo/tamanho [get]
// @Router       /catalogo/cores [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear registro
// @Tags         referencias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReferenceRequest  true  "Nombre"
// @Success      201   {object}  dto.ReferenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /catalogo/marcas [post]
// @Router       /catalogo/marca [post]
// @Router       /catalogo/tipoProduto [post]
// @Router       /catalogo/tamanho [post]
// @Router       /catalogo/cores [post]
func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateBody(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Borrado lógico de un registro
// @Tags         referencias
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /catalogo/marcas/{id} [delete]
// @Router       /catalogo/tipoProduto/{id} [delete]
// @Router       /catalogo/tamanho/{id} [delete]
// @Router       /catalogo/cores/{id} [delete]
func (h *ReferenceHandler) Remove(c *fiber.Ctx) error {
	ok, err := h.uc.Remove(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !ok {
		return notFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
