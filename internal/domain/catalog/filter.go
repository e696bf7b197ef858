// Package catalog contiene las reglas de consulta del catálogo: filtros por dimensión,
// búsqueda textual, ordenamiento y paginación. Los adaptadores de almacenamiento
// traducen ProductFilter a su propio lenguaje (SQL o predicados en memoria).
package catalog

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// SortMode orden de los resultados.
type SortMode int

const (
	SortDefault   SortMode = 0 // orden de almacenamiento
	SortPriceAsc  SortMode = 1
	SortPriceDesc SortMode = 2
)

// Valid indica si el modo es conocido.
func (s SortMode) Valid() bool {
	return s >= SortDefault && s <= SortPriceDesc
}

// MaxPageSize tamaño máximo de página aceptado.
const MaxPageSize = 1000

// Page paginación 1-based.
type Page struct {
	Size  int
	Index int
}

// Validate exige 0 < Size <= MaxPageSize, Index >= 1 y que Offset no desborde int.
func (p Page) Validate() error {
	if p.Size <= 0 {
		return domain.Invalid("O tamanho da página deve ser maior que zero.")
	}
	if p.Size > MaxPageSize {
		return domain.Invalid(fmt.Sprintf("O tamanho da página deve ser no máximo %d.", MaxPageSize))
	}
	if p.Index < 1 {
		return domain.Invalid("O índice da página deve ser maior ou igual a 1.")
	}
	if p.Index-1 > (math.MaxInt-p.Size)/p.Size {
		return domain.Invalid("O índice da página é grande demais.")
	}
	return nil
}

// Offset registros a saltar antes de la página.
func (p Page) Offset() int {
	return p.Size * (p.Index - 1)
}

// ProductFilter criterios de la consulta filtrada. Un conjunto vacío no restringe su dimensión.
type ProductFilter struct {
	ColorIDs []string
	BrandIDs []string
	SizeIDs  []string
	TypeIDs  []string
	Genders  []entity.Gender
	Sort     SortMode
	Query    string
	Page     Page
}

// Validate revisa paginación y modo de orden antes de tocar el almacenamiento.
func (f ProductFilter) Validate() error {
	if err := f.Page.Validate(); err != nil {
		return err
	}
	if !f.Sort.Valid() {
		return domain.Invalid("Ordenação inválida.")
	}
	return nil
}

// IDsFor devuelve el conjunto de IDs del filtro para una dimensión de referencia.
func (f ProductFilter) IDsFor(kind entity.ReferenceKind) []string {
	switch kind {
	case entity.KindBrand:
		return f.BrandIDs
	case entity.KindProductType:
		return f.TypeIDs
	case entity.KindColor:
		return f.ColorIDs
	case entity.KindSize:
		return f.SizeIDs
	}
	return nil
}

// FilterKinds orden fijo en que se aplican las dimensiones de referencia.
var FilterKinds = []entity.ReferenceKind{entity.KindColor, entity.KindBrand, entity.KindSize, entity.KindProductType}

// Fold pasa s a minúsculas sin depender del locale.
// cases.Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Contains indica si needle (ya normalizado con Fold) está contenido en haystack sin distinguir mayúsculas.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), needle)
}
