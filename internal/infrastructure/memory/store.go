// Package memory implementa los repositorios del catálogo en memoria. Sirve para desarrollo
// local (DB_DRIVER=memory) y para pruebas; la consulta filtrada usa los mismos pasos de
// internal/domain/catalog que definen la semántica del adaptador SQL.
package memory

import (
	"sync"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// state datos confirmados. Las entidades guardadas nunca se mutan: se reemplazan.
type state struct {
	products []*entity.Product // orden de inserción = orden de almacenamiento
	refs     map[entity.ReferenceKind][]*entity.Reference
}

func (s state) clone() state {
	c := state{
		products: append([]*entity.Product(nil), s.products...),
		refs:     make(map[entity.ReferenceKind][]*entity.Reference, len(s.refs)),
	}
	for k, v := range s.refs {
		c.refs[k] = append([]*entity.Reference(nil), v...)
	}
	return c
}

func (s *state) productIndex(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *state) referenceIndex(kind entity.ReferenceKind, id string) int {
	for i, r := range s.refs[kind] {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// reference busca por ID sin importar el flag removed (equivale al LEFT JOIN).
func (s *state) reference(kind entity.ReferenceKind, id string) *entity.Reference {
	if i := s.referenceIndex(kind, id); i >= 0 {
		return s.refs[kind][i]
	}
	return nil
}

// snapshot copia un producto con sus referencias unidas.
func (s *state) snapshot(p *entity.Product) *entity.Product {
	c := p.Copy()
	for _, kind := range entity.Kinds {
		c.SetReference(s.reference(kind, p.ReferenceID(kind)).Copy())
	}
	return c
}

// op cambio pendiente; se aplica sobre una copia del estado.
type op func(s *state) error

// Store estado compartido entre peticiones, protegido por un RWMutex.
type Store struct {
	mu    sync.RWMutex
	state state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: state{refs: map[entity.ReferenceKind][]*entity.Reference{}}}
}

// read ejecuta fn con el estado confirmado bajo lock de lectura.
func (st *Store) read(fn func(s *state)) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	fn(&st.state)
}

// apply aplica ops de forma atómica: o entran todos o ninguno.
func (st *Store) apply(ops ...op) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	next := st.state.clone()
	for _, o := range ops {
		if err := o(&next); err != nil {
			return err
		}
	}
	st.state = next
	return nil
}

func addProduct(p *entity.Product) op {
	stored := p.Copy()
	stored.Brand, stored.Type, stored.Color, stored.Size = nil, nil, nil, nil
	return func(s *state) error {
		if s.productIndex(stored.ID) >= 0 {
			return domain.ErrDuplicate
		}
		s.products = append(s.products, stored)
		return nil
	}
}

func updateProduct(p *entity.Product) op {
	stored := p.Copy()
	stored.Brand, stored.Type, stored.Color, stored.Size = nil, nil, nil, nil
	return func(s *state) error {
		i := s.productIndex(stored.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		stored.CreatedAt = s.products[i].CreatedAt
		s.products[i] = stored
		return nil
	}
}

func addReference(ref *entity.Reference) op {
	stored := ref.Copy()
	return func(s *state) error {
		for _, r := range s.refs[stored.Kind] {
			if r.ID == stored.ID || (!r.Removed && r.Name == stored.Name) {
				return domain.ErrDuplicate
			}
		}
		s.refs[stored.Kind] = append(s.refs[stored.Kind], stored)
		return nil
	}
}

func updateReference(ref *entity.Reference) op {
	stored := ref.Copy()
	return func(s *state) error {
		i := s.referenceIndex(stored.Kind, stored.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		for j, r := range s.refs[stored.Kind] {
			if j != i && !r.Removed && !stored.Removed && r.Name == stored.Name {
				return domain.ErrDuplicate
			}
		}
		stored.CreatedAt = s.refs[stored.Kind][i].CreatedAt
		s.refs[stored.Kind][i] = stored
		return nil
	}
}
