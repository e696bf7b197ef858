package sqlbuilder

import (
	"fmt"
	"strings"
)

// Condition fragmento de WHERE. argIndex es el número del próximo placeholder ($argIndex).
// Un fragmento vacío significa "sin restricción" y el Builder lo omite.
type Condition interface {
	SQL(argIndex int) (string, []any)
}

type eqCondition struct {
	field string
	value any
}

// Eq genera "field = $n".
func Eq(field string, value any) Condition {
	return eqCondition{field: field, value: value}
}

func (c eqCondition) SQL(argIndex int) (string, []any) {
	return fmt.Sprintf("%s = %s", c.field, placeholder(argIndex)), []any{c.value}
}

type inCondition[T any] struct {
	field  string
	values []T
}

// In genera "field = ANY($n)". Con values vacío no restringe.
func In[T any](field string, values []T) Condition {
	return inCondition[T]{field: field, values: values}
}

func (c inCondition[T]) SQL(argIndex int) (string, []any) {
	if len(c.values) == 0 {
		return "", nil
	}
	return fmt.Sprintf("%s = ANY(%s)", c.field, placeholder(argIndex)), []any{c.values}
}

type containsCondition struct {
	value  string
	fields []string
}

// FoldCollation collation ICU raíz: lower() no depende del LC_CTYPE de la base.
const FoldCollation = `"und-x-icu"`

// ContainsAny genera un OR de strpos(lower(coalesce(field, '') COLLATE "und-x-icu"), $n) > 0 sobre fields,
// reutilizando un solo argumento. value debe venir ya en minúsculas; vacío no restringe.
// COALESCE hace que un campo NULL (join ausente) simplemente no coincida.
func ContainsAny(value string, fields ...string) Condition {
	return containsCondition{value: value, fields: fields}
}

func (c containsCondition) SQL(argIndex int) (string, []any) {
	if c.value == "" || len(c.fields) == 0 {
		return "", nil
	}
	ph := placeholder(argIndex)
	parts := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		parts = append(parts, fmt.Sprintf("strpos(lower(coalesce(%s, '') COLLATE %s), %s) > 0", f, FoldCollation, ph))
	}
	return "(" + strings.Join(parts, " OR ") + ")", []any{c.value}
}
