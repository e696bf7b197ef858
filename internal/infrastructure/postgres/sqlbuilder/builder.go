// Package sqlbuilder arma sentencias SELECT para PostgreSQL con placeholders posicionales ($1, $2...)
// listas para pgx. Cada método devuelve un Builder nuevo; el original no se modifica.
package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction dirección de ORDER BY.
type Direction int

const (
	Asc Direction = iota
	Desc
)

type orderBy struct {
	column    string
	direction Direction
}

// Statement SQL final más sus argumentos en orden posicional.
type Statement struct {
	SQL  string
	Args []any
}

// Builder construye un SELECT con JOINs, WHERE (unidos con AND), ORDER BY, LIMIT y OFFSET.
type Builder struct {
	table      string
	selectCols []string
	joins      []string
	conditions []Condition
	orders     []orderBy
	limitVal   int
	offsetVal  int
}

// From crea un Builder sobre la tabla indicada (puede incluir alias: "products p").
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select agrega columnas a la lista del SELECT.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Join agrega una cláusula de join completa, p. ej. "LEFT JOIN brands b ON b.id = p.brand_id".
func (b *Builder) Join(clause string) *Builder {
	nb := b.clone()
	nb.joins = append(nb.joins, clause)
	return nb
}

// Where agrega una condición. Las condiciones que no restringen nada se omiten al construir.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.conditions = append(nb.conditions, condition)
	return nb
}

// OrderBy agrega una columna de orden; llamadas sucesivas desempatan a las anteriores.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orders = append(nb.orders, orderBy{column: column, direction: direction})
	return nb
}

// Limit máximo de filas (0 = sin límite).
func (b *Builder) Limit(limit int) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset filas a saltar (0 = ninguna).
func (b *Builder) Offset(offset int) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count devuelve un Builder COUNT(*) con el mismo FROM, JOINs y WHERE, sin orden ni paginación.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.orders = nil
	nb.limitVal = 0
	nb.offsetVal = 0
	return nb
}

// Build genera el SQL y los argumentos.
func (b *Builder) Build() Statement {
	var sql strings.Builder
	var args []any

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)
	for _, j := range b.joins {
		sql.WriteString(" ")
		sql.WriteString(j)
	}

	var where []string
	for _, c := range b.conditions {
		fragment, condArgs := c.SQL(len(args) + 1)
		if fragment == "" {
			continue
		}
		where = append(where, fragment)
		args = append(args, condArgs...)
	}
	if len(where) > 0 {
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(where, " AND "))
	}

	if len(b.orders) > 0 {
		parts := make([]string, 0, len(b.orders))
		for _, o := range b.orders {
			dir := "ASC"
			if o.direction == Desc {
				dir = "DESC"
			}
			parts = append(parts, o.column+" "+dir)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limitVal > 0 {
		args = append(args, b.limitVal)
		sql.WriteString(" LIMIT " + placeholder(len(args)))
	}
	if b.offsetVal > 0 {
		args = append(args, b.offsetVal)
		sql.WriteString(" OFFSET " + placeholder(len(args)))
	}

	return Statement{SQL: sql.String(), Args: args}
}

// String representación legible para depuración.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nArgs: %v", stmt.SQL, stmt.Args)
}

func (b *Builder) clone() *Builder {
	nb := *b
	nb.selectCols = append([]string(nil), b.selectCols...)
	nb.joins = append([]string(nil), b.joins...)
	nb.conditions = append([]Condition(nil), b.conditions...)
	nb.orders = append([]orderBy(nil), b.orders...)
	return &nb
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
