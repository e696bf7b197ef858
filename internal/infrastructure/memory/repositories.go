package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.ReferenceRepository = (*ReferenceRepo)(nil)
)

// writer decide qué hacer con un cambio: aplicarlo ya (sin unidad de trabajo) o encolarlo.
type writer func(o op) error

// NewRepositories repositorios sin unidad de trabajo: cada escritura se confirma al instante.
func NewRepositories(st *Store) repository.Repositories {
	return newRepositories(st, func(o op) error { return st.apply(o) })
}

func newRepositories(st *Store, w writer) repository.Repositories {
	return repository.Repositories{
		Products: &ProductRepo{store: st, write: w},
		Brands:   &ReferenceRepo{store: st, write: w, kind: entity.KindBrand},
		Types:    &ReferenceRepo{store: st, write: w, kind: entity.KindProductType},
		Colors:   &ReferenceRepo{store: st, write: w, kind: entity.KindColor},
		Sizes:    &ReferenceRepo{store: st, write: w, kind: entity.KindSize},
	}
}

// ProductRepo productos en memoria. Las lecturas ven sólo datos confirmados.
type ProductRepo struct {
	store *Store
	write writer
}

func (r *ProductRepo) Add(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(addProduct(p))
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(updateProduct(p))
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Product
	r.store.read(func(s *state) {
		if i := s.productIndex(id); i >= 0 && !s.products[i].Removed {
			out = s.snapshot(s.products[i])
		}
	})
	return out, nil
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.NotRemoved().Apply(r.snapshots()), nil
}

func (r *ProductRepo) ListPage(ctx context.Context, page catalog.Page, query string) ([]*entity.Product, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	list := r.snapshots()
	for _, step := range []catalog.Step{catalog.NotRemoved(), catalog.NameMatch(query)} {
		list = step.Apply(list)
	}
	return catalog.Paginate(list, page), len(list), nil
}

func (r *ProductRepo) Search(ctx context.Context, f catalog.ProductFilter) ([]*entity.Product, int, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return catalog.Run(r.snapshots(), f)
}

func (r *ProductRepo) snapshots() []*entity.Product {
	var out []*entity.Product
	r.store.read(func(s *state) {
		out = make([]*entity.Product, 0, len(s.products))
		for _, p := range s.products {
			out = append(out, s.snapshot(p))
		}
	})
	return out
}

// ReferenceRepo registros de referencia de un kind.
type ReferenceRepo struct {
	store *Store
	write writer
	kind  entity.ReferenceKind
}

func (r *ReferenceRepo) Kind() entity.ReferenceKind { return r.kind }

func (r *ReferenceRepo) Add(ctx context.Context, ref *entity.Reference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := ref.Copy()
	c.Kind = r.kind
	return r.write(addReference(c))
}

func (r *ReferenceRepo) Update(ctx context.Context, ref *entity.Reference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := ref.Copy()
	c.Kind = r.kind
	return r.write(updateReference(c))
}

func (r *ReferenceRepo) GetByID(ctx context.Context, id string) (*entity.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Reference
	r.store.read(func(s *state) {
		if ref := s.reference(r.kind, id); ref != nil && !ref.Removed {
			out = ref.Copy()
		}
	})
	return out, nil
}

func (r *ReferenceRepo) ListAll(ctx context.Context) ([]*entity.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []*entity.Reference{}
	r.store.read(func(s *state) {
		for _, ref := range s.refs[r.kind] {
			if !ref.Removed {
				out = append(out, ref.Copy())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
