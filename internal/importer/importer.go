// Package importer carga archivos TSV grandes en una tabla dataset, por chunks.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"pets-catalog/internal/adapters/storage/dataset"
	"pets-catalog/internal/platform/logger"
)

const (
	DefaultChunkSize = 10000
	// Null es como los dumps (IMDB, mysqldump) escriben NULL en TSV.
	Null = `\N`
)

type Options struct {
	ChunkSize int
	// Comma por defecto es tab.
	Comma rune
}

type Result struct {
	Rows   int
	Chunks int
}

// Sink es donde se escriben los chunks; *dataset.Table lo implementa.
type Sink interface {
	Name() string
	InsertMany(ctx context.Context, rows []dataset.Row) (int, error)
}

var _ Sink = (*dataset.Table)(nil)

type kind int

const (
	kindInt kind = iota
	kindFloat
	kindString
)

// Import lee r (con fila de encabezado) y agrega las filas a dst en
// transacciones de opts.ChunkSize filas. Los tipos de columna se infieren
// del primer chunk; un valor posterior que no parsea se guarda como texto.
func Import(ctx context.Context, r io.Reader, dst Sink, opts Options, log logger.Logger) (Result, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Comma == 0 {
		opts.Comma = '\t'
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, errors.New("importer: empty input")
		}
		return Result{}, fmt.Errorf("importer: read header: %w", err)
	}
	columns := columnNames(header)
	cr.FieldsPerRecord = len(columns)

	var (
		res   Result
		kinds []kind
		raw   = make([][]string, 0, opts.ChunkSize)
	)

	flush := func() error {
		if len(raw) == 0 {
			return nil
		}
		if kinds == nil {
			kinds = infer(raw, len(columns))
		}
		rows := make([]dataset.Row, 0, len(raw))
		for _, rec := range raw {
			rows = append(rows, convert(columns, kinds, rec))
		}
		n, err := dst.InsertMany(ctx, rows)
		if err != nil {
			return err
		}
		res.Rows += n
		res.Chunks++
		log.Info("chunk imported", map[string]any{
			"table": dst.Name(),
			"chunk": res.Chunks,
			"rows":  res.Rows,
		})
		raw = raw[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("importer: %w", err)
		}
		raw = append(raw, append([]string(nil), rec...))

		if len(raw) == opts.ChunkSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if err := flush(); err != nil {
		return res, err
	}
	return res, nil
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// columnName convierte un encabezado en un identificador SQL válido.
func columnName(h string, i int) string {
	name := nonIdent.ReplaceAllString(strings.TrimSpace(h), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "col" + strconv.Itoa(i+1)
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "c_" + name
	}
	return name
}

// columnNames sanea el encabezado completo. "id" es la clave autoincremental
// de la tabla, así que un encabezado "id" pasa a "id_"; nombres repetidos
// (también sin distinguir mayúsculas) reciben sufijo: a_b, a_b_2, a_b_3.
func columnNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := columnName(h, i)
		if strings.EqualFold(name, "id") {
			name += "_"
		}
		base := name
		for n := 2; seen[strings.ToLower(name)]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		seen[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

// infer elige por columna el tipo más estrecho que acepta todos los valores no nulos.
func infer(records [][]string, n int) []kind {
	out := make([]kind, n)
	for col := 0; col < n; col++ {
		k := kindInt
		for _, rec := range records {
			v := rec[col]
			if v == Null || v == "" {
				continue
			}
			if k == kindInt {
				if _, err := strconv.ParseInt(v, 10, 64); err == nil {
					continue
				}
				k = kindFloat
			}
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				continue
			}
			k = kindString
			break
		}
		out[col] = k
	}
	return out
}

func convert(columns []string, kinds []kind, rec []string) dataset.Row {
	row := make(dataset.Row, len(columns))
	for i, name := range columns {
		v := rec[i]
		if v == Null {
			row[name] = nil
			continue
		}
		row[name] = value(kinds[i], v)
	}
	return row
}

func value(k kind, v string) any {
	switch k {
	case kindInt:
		if v == "" {
			return nil
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case kindFloat:
		if v == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}
