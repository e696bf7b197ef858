package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *usecase.CatalogUseCase
	ReferenceUC *usecase.ReferenceUseCase
	Logger      *logger.Logger
	AuthEnabled bool
	JWTSecret   string
	JWTIssuer   string
}

// referencePaths ruta de cada tabla de referencia bajo /catalogo.
var referencePaths = map[entity.ReferenceKind]string{
	entity.KindBrand:       "/marcas",
	entity.KindProductType: "/tipoProduto",
	entity.KindSize:        "/tamanho",
	entity.KindColor:       "/cores",
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras
// pasan por AuthMiddleware sólo si AuthEnabled.
func Router(app *fiber.App, deps RouterDeps) {
	write := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthEnabled {
		write = AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	}

	catalogo := app.Group("/catalogo")

	// Productos
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.Logger)
	catalogo.Post("/filtroPaginado", catalogHandler.Search)
	catalogo.Get("/paginado", catalogHandler.ListPage)
	catalogo.Get("/produtos", catalogHandler.List)
	catalogo.Get("/produtosPorId/:id", catalogHandler.GetByID)
	catalogo.Post("/produtos", write, catalogHandler.Create)
	catalogo.Delete("/produtos/:id", write, catalogHandler.Remove)

	// Marcas, tipos de producto, tallas y colores
	for _, kind := range entity.Kinds {
		path := referencePaths[kind]
		h := NewReferenceHandler(deps.ReferenceUC, kind, deps.Logger)
		catalogo.Get(path, h.List)
		catalogo.Post(path, write, h.Create)
		catalogo.Delete(path+"/:id", write, h.Remove)
		if kind == entity.KindBrand {
			catalogo.Post("/marca", write, h.Create)
		}
	}
}
