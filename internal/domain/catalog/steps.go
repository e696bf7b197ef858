package catalog

import (
	"sort"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// Step transforma una secuencia de productos. Los pasos de una consulta se aplican en orden:
// borrado lógico, dimensiones, texto, orden.
type Step interface {
	Apply(products []*entity.Product) []*entity.Product
}

// Predicate decide si un producto se conserva.
type Predicate func(p *entity.Product) bool

type predicateStep struct {
	keep Predicate
}

// Where crea un paso que conserva los productos que cumplen keep. keep nil no filtra.
func Where(keep Predicate) Step {
	return predicateStep{keep: keep}
}

func (s predicateStep) Apply(products []*entity.Product) []*entity.Product {
	if s.keep == nil {
		return products
	}
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if s.keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// NotRemoved descarta productos con borrado lógico.
func NotRemoved() Step {
	return Where(func(p *entity.Product) bool { return !p.Removed })
}

// ReferenceIn conserva los productos cuya referencia kind está en ids. ids vacío no filtra.
func ReferenceIn(kind entity.ReferenceKind, ids []string) Step {
	if len(ids) == 0 {
		return Where(nil)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Where(func(p *entity.Product) bool {
		_, ok := set[p.ReferenceID(kind)]
		return ok
	})
}

// GenderIn conserva los productos cuyo género está en genders. Vacío no filtra.
func GenderIn(genders []entity.Gender) Step {
	if len(genders) == 0 {
		return Where(nil)
	}
	set := make(map[entity.Gender]struct{}, len(genders))
	for _, g := range genders {
		set[g] = struct{}{}
	}
	return Where(func(p *entity.Product) bool {
		_, ok := set[p.Gender]
		return ok
	})
}

// TextMatch busca query como subcadena (sin distinguir mayúsculas) en nombre, descripción
// y en los nombres de marca, color, talla y tipo. Query vacío no filtra; una referencia
// ausente simplemente no coincide.
func TextMatch(query string) Step {
	if query == "" {
		return Where(nil)
	}
	needle := Fold(query)
	return Where(func(p *entity.Product) bool {
		if Contains(p.Name, needle) || Contains(p.Description, needle) {
			return true
		}
		for _, ref := range []*entity.Reference{p.Brand, p.Color, p.Size, p.Type} {
			if ref != nil && Contains(ref.Name, needle) {
				return true
			}
		}
		return false
	})
}

// NameMatch busca query sólo en el nombre del producto (listado simple).
func NameMatch(query string) Step {
	if query == "" {
		return Where(nil)
	}
	needle := Fold(query)
	return Where(func(p *entity.Product) bool { return Contains(p.Name, needle) })
}

type sortStep struct {
	mode SortMode
}

// SortBy ordena de forma estable; SortDefault conserva el orden de entrada.
func SortBy(mode SortMode) Step {
	return sortStep{mode: mode}
}

func (s sortStep) Apply(products []*entity.Product) []*entity.Product {
	if s.mode == SortDefault {
		return products
	}
	out := append([]*entity.Product(nil), products...)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := out[i].SalePrice.Cmp(out[j].SalePrice)
		if s.mode == SortPriceDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// FilterSteps pasos de filtrado del ProductFilter, en el orden fijo de la consulta.
func FilterSteps(f ProductFilter) []Step {
	steps := []Step{NotRemoved()}
	for _, kind := range FilterKinds {
		steps = append(steps, ReferenceIn(kind, f.IDsFor(kind)))
	}
	return append(steps, GenderIn(f.Genders), TextMatch(f.Query))
}

// Paginate devuelve la porción de la página solicitada.
func Paginate(products []*entity.Product, page Page) []*entity.Product {
	start := page.Offset()
	if start < 0 || start >= len(products) {
		return []*entity.Product{}
	}
	end := start + page.Size
	if end > len(products) || end < start {
		end = len(products)
	}
	return products[start:end]
}

// Run ejecuta la consulta completa sobre una instantánea: valida, filtra, cuenta, ordena y pagina.
func Run(products []*entity.Product, f ProductFilter) ([]*entity.Product, int, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}
	for _, step := range FilterSteps(f) {
		products = step.Apply(products)
	}
	total := len(products)
	products = SortBy(f.Sort).Apply(products)
	return Paginate(products, f.Page), total, nil
}
