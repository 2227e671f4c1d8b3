// Package dataset da acceso tipo "diccionario" a tablas SQL arbitrarias:
// las filas son map[string]any y las tablas/columnas se crean al insertar,
// infiriendo el tipo a partir del valor. Pensado para cargar datos sueltos
// (imports de TSV, exploración) sin definir structs ni migraciones.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"pets-catalog/internal/adapters/storage/sqlstore"
)

// Row es una fila: columna -> valor. nil es NULL.
type Row map[string]any

var (
	ErrInvalidName = errors.New("dataset: invalid identifier")
	ErrNoSuchTable = errors.New("dataset: no such table")
	ErrNotFound    = errors.New("dataset: row not found")
	ErrMissingKey  = errors.New("dataset: update key not in row")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type DB struct {
	x       *sqlx.DB
	dialect sqlstore.Dialect

	mu     sync.Mutex
	tables map[string]*Table
}

func Open(db *sqlstore.DB) *DB {
	return &DB{x: db.X, dialect: db.Dialect, tables: map[string]*Table{}}
}

// Table devuelve el handle de la tabla; no la crea hasta el primer Insert.
func (d *DB) Table(name string) (*Table, error) {
	if !identifier.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.tables[name]; ok {
		return t, nil
	}
	t := &Table{d: d, name: name}
	d.tables[name] = t
	return t, nil
}

// Tables lista las tablas de usuario de la base.
func (d *DB) Tables(ctx context.Context) ([]string, error) {
	var q string
	switch d.dialect {
	case sqlstore.SQLite:
		q = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	case sqlstore.Postgres:
		q = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`
	default:
		q = `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name`
	}

	var out []string
	if err := d.x.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DB) quote(name string) string {
	if d.dialect == sqlstore.MySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

func (d *DB) idColumn() string {
	switch d.dialect {
	case sqlstore.SQLite:
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	case sqlstore.Postgres:
		return "id BIGSERIAL PRIMARY KEY"
	default:
		return "id BIGINT AUTO_INCREMENT PRIMARY KEY"
	}
}

// columnType infiere el tipo SQL del valor Go.
func (d *DB) columnType(v any) string {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return "BIGINT"
	case float32, float64:
		if d.dialect == sqlstore.Postgres {
			return "DOUBLE PRECISION"
		}
		return "DOUBLE"
	case bool:
		return "BOOLEAN"
	case time.Time:
		return "TIMESTAMP"
	case []byte:
		if d.dialect == sqlstore.Postgres {
			return "BYTEA"
		}
		return "BLOB"
	default:
		return "TEXT"
	}
}

// sortedKeys: orden estable de columnas para que el SQL generado sea determinista.
func sortedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validateRow(r Row) error {
	for k := range r {
		if !identifier.MatchString(k) {
			return fmt.Errorf("%w: column %q", ErrInvalidName, k)
		}
	}
	return nil
}

// normalize convierte lo que devuelven los drivers en MapScan a tipos simples.
func normalize(r map[string]any) Row {
	out := make(Row, len(r))
	for k, v := range r {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[k] = v
	}
	return out
}

func (d *DB) hasTable(ctx context.Context, name string) (bool, error) {
	names, err := d.Tables(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}
