// seed genera el script SQL que puebla marcas, tipos de producto, colores y tallas
// a partir de un CSV con líneas "campo,nome" (campo: marca | tipoProduto | cor | tamanho).
//
// Uso: go run ./cmd/seed [-latin1] [ruta/referencias.csv]
// Por defecto busca referencias.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_references.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// tables tabla destino de cada campo del CSV, en el orden en que se escriben.
var tables = []struct{ field, table string }{
	{"marca", "brands"},
	{"tipoProduto", "product_types"},
	{"cor", "colors"},
	{"tamanho", "sizes"},
}

type seedRow struct {
	table string
	name  string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	csvPath := "referencias.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := parseSeed(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_references.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros\n", outPath, len(rows))
}

// parseSeed lee el CSV, descarta duplicados y ordena por tabla y nombre.
func parseSeed(r io.Reader) ([]seedRow, error) {
	tableOf := make(map[string]string, len(tables))
	for _, t := range tables {
		tableOf[t.field] = t.table
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	seen := make(map[seedRow]bool)
	var rows []seedRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		field, name := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		table, ok := tableOf[field]
		if !ok {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("línea %d: campo desconocido %q", line, field)
		}
		if name == "" {
			continue
		}
		row := seedRow{table: table, name: name}
		if seen[row] {
			continue
		}
		seen[row] = true
		rows = append(rows, row)
	}

	order := make(map[string]int, len(tables))
	for i, t := range tables {
		order[t.table] = i
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].table != rows[j].table {
			return order[rows[i].table] < order[rows[j].table]
		}
		return rows[i].name < rows[j].name
	})
	return rows, nil
}

// writeSQL un INSERT por tabla. Los IDs se derivan del nombre para que el script sea estable.
func writeSQL(w io.Writer, rows []seedRow) error {
	var b strings.Builder
	b.WriteString("-- Marcas, tipos de producto, colores y tallas\n")
	b.WriteString("-- Generado por cmd/seed\n")

	for _, t := range tables {
		var values []string
		for _, r := range rows {
			if r.table != t.table {
				continue
			}
			id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.table+":"+r.name))
			values = append(values, fmt.Sprintf("  ('%s', '%s')", id, escapeSQL(r.name)))
		}
		if len(values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nINSERT INTO %s (id, name) VALUES\n", t.table)
		b.WriteString(strings.Join(values, ",\n"))
		b.WriteString("\nON CONFLICT (name) WHERE removed = false DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
