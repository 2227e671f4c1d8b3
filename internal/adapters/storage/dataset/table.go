package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"

	"pets-catalog/internal/adapters/storage/sqlstore"
)

// Table es una tabla con columna id autoincremental y el resto de columnas
// creadas a demanda.
type Table struct {
	d    *DB
	name string

	mu      sync.Mutex
	loaded  bool
	exists  bool
	columns map[string]struct{}
}

func (t *Table) Name() string { return t.name }

// load lee el esquema actual la primera vez. Llamar con t.mu tomado.
func (t *Table) load(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	ok, err := t.d.hasTable(ctx, t.name)
	if err != nil {
		return err
	}
	t.columns = map[string]struct{}{}
	if ok {
		cols, err := t.readColumns(ctx)
		if err != nil {
			return err
		}
		for _, c := range cols {
			t.columns[c] = struct{}{}
		}
	}
	t.exists = ok
	t.loaded = true
	return nil
}

func (t *Table) readColumns(ctx context.Context) ([]string, error) {
	rows, err := t.d.x.QueryxContext(ctx, `SELECT * FROM `+t.d.quote(t.name)+` WHERE 1 = 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}

// ensure crea la tabla o agrega las columnas que falten para guardar r.
// El tipo de cada columna nueva sale del valor; nil da TEXT.
func (t *Table) ensure(ctx context.Context, r Row) error {
	if err := validateRow(r); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(ctx); err != nil {
		return err
	}

	var missing []string
	for _, k := range sortedKeys(r) {
		if k == "id" {
			continue
		}
		if _, ok := t.columns[k]; !ok {
			missing = append(missing, k)
		}
	}

	if !t.exists {
		defs := []string{t.d.idColumn()}
		for _, k := range missing {
			defs = append(defs, t.d.quote(k)+" "+t.d.columnType(r[k]))
		}
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, t.d.quote(t.name), strings.Join(defs, ", "))
		if _, err := t.d.x.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("dataset: create %s: %w", t.name, err)
		}
		t.exists = true
		t.columns["id"] = struct{}{}
		for _, k := range missing {
			t.columns[k] = struct{}{}
		}
		return nil
	}

	for _, k := range missing {
		stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, t.d.quote(t.name), t.d.quote(k), t.d.columnType(r[k]))
		if _, err := t.d.x.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("dataset: add column %s.%s: %w", t.name, k, err)
		}
		t.columns[k] = struct{}{}
	}
	return nil
}

// known dice si la tabla existe y tiene todas las columnas de filter.
// Un filtro sobre una columna inexistente no matchea ninguna fila.
func (t *Table) known(ctx context.Context, filter Row) (bool, error) {
	if err := validateRow(filter); err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(ctx); err != nil {
		return false, err
	}
	if !t.exists {
		return false, nil
	}
	for k := range filter {
		if _, ok := t.columns[k]; !ok {
			return false, nil
		}
	}
	return true, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
}

func (t *Table) insertSQL(r Row) (string, []any) {
	keys := sortedKeys(r)
	if len(keys) == 0 {
		if t.d.dialect == sqlstore.MySQL {
			return `INSERT INTO ` + t.d.quote(t.name) + ` () VALUES ()`, nil
		}
		return `INSERT INTO ` + t.d.quote(t.name) + ` DEFAULT VALUES`, nil
	}

	cols := make([]string, 0, len(keys))
	marks := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, t.d.quote(k))
		marks = append(marks, "?")
		args = append(args, r[k])
	}
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, t.d.quote(t.name), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return t.d.x.Rebind(q), args
}

func (t *Table) insert(ctx context.Context, e execer, r Row) (int64, error) {
	q, args := t.insertSQL(r)
	if t.d.dialect == sqlstore.MySQL {
		res, err := e.ExecContext(ctx, q, args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	var id int64
	if err := e.QueryRowxContext(ctx, q+` RETURNING id`, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Insert guarda una fila (creando tabla/columnas si hace falta) y devuelve su id.
func (t *Table) Insert(ctx context.Context, r Row) (int64, error) {
	if err := t.ensure(ctx, r); err != nil {
		return 0, err
	}
	return t.insert(ctx, t.d.x, r)
}

// InsertMany guarda todas las filas en una sola transacción.
func (t *Table) InsertMany(ctx context.Context, rows []Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	// El esquema se ajusta antes de abrir la tx: con SQLite hay una sola
	// conexión y la tx la tendría tomada.
	if err := t.ensure(ctx, mergeRows(rows)); err != nil {
		return 0, err
	}

	tx, err := t.d.x.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for i, r := range rows {
		if _, err := t.insert(ctx, tx, r); err != nil {
			return 0, fmt.Errorf("dataset: insert row %d into %s: %w", i, t.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// mergeRows junta todas las columnas; para el tipo gana el primer valor no nil.
func mergeRows(rows []Row) Row {
	out := Row{}
	for _, r := range rows {
		for k, v := range r {
			if cur, ok := out[k]; !ok || (cur == nil && v != nil) {
				out[k] = v
			}
		}
	}
	return out
}

func (t *Table) where(filter Row) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for _, k := range sortedKeys(filter) {
		if filter[k] == nil {
			conds = append(conds, t.d.quote(k)+" IS NULL")
			continue
		}
		conds = append(conds, t.d.quote(k)+" = ?")
		args = append(args, filter[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (t *Table) query(ctx context.Context, q string, args ...any) ([]Row, error) {
	rows, err := t.d.x.QueryxContext(ctx, t.d.x.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		out = append(out, normalize(m))
	}
	return out, rows.Err()
}

// All devuelve todas las filas ordenadas por id.
func (t *Table) All(ctx context.Context) ([]Row, error) {
	return t.Find(ctx, nil)
}

// Find devuelve las filas cuyas columnas coinciden con filter (AND; nil es IS NULL).
func (t *Table) Find(ctx context.Context, filter Row) ([]Row, error) {
	ok, err := t.known(ctx, filter)
	if err != nil || !ok {
		return nil, err
	}
	w, args := t.where(filter)
	return t.query(ctx, `SELECT * FROM `+t.d.quote(t.name)+w+` ORDER BY id`, args...)
}

func (t *Table) FindOne(ctx context.Context, filter Row) (Row, error) {
	ok, err := t.known(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	w, args := t.where(filter)
	rows, err := t.query(ctx, `SELECT * FROM `+t.d.quote(t.name)+w+` ORDER BY id LIMIT 1`, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (t *Table) Count(ctx context.Context, filter Row) (int64, error) {
	ok, err := t.known(ctx, filter)
	if err != nil || !ok {
		return 0, err
	}
	w, args := t.where(filter)

	var n int64
	if err := t.d.x.GetContext(ctx, &n, t.d.x.Rebind(`SELECT COUNT(*) FROM `+t.d.quote(t.name)+w), args...); err != nil {
		return 0, err
	}
	return n, nil
}

// Update setea las columnas de r que no son keys en las filas donde las keys
// coinciden con r. Devuelve la cantidad de filas afectadas.
func (t *Table) Update(ctx context.Context, r Row, keys ...string) (int64, error) {
	filter := Row{}
	set := Row{}
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingKey, k)
		}
		filter[k] = v
	}
	for k, v := range r {
		if _, isKey := filter[k]; !isKey {
			set[k] = v
		}
	}
	if len(set) == 0 {
		return 0, nil
	}

	ok, err := t.known(ctx, filter)
	if err != nil || !ok {
		return 0, err
	}
	if err := t.ensure(ctx, set); err != nil {
		return 0, err
	}

	assign := make([]string, 0, len(set))
	args := make([]any, 0, len(set)+len(filter))
	for _, k := range sortedKeys(set) {
		assign = append(assign, t.d.quote(k)+" = ?")
		args = append(args, set[k])
	}
	w, wargs := t.where(filter)
	args = append(args, wargs...)

	res, err := t.d.x.ExecContext(ctx, t.d.x.Rebind(`UPDATE `+t.d.quote(t.name)+` SET `+strings.Join(assign, ", ")+w), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete borra las filas que coinciden con filter; filter vacío borra todo.
func (t *Table) Delete(ctx context.Context, filter Row) (int64, error) {
	ok, err := t.known(ctx, filter)
	if err != nil || !ok {
		return 0, err
	}
	w, args := t.where(filter)

	res, err := t.d.x.ExecContext(ctx, t.d.x.Rebind(`DELETE FROM `+t.d.quote(t.name)+w), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Columns devuelve las columnas actuales (id incluido); vacío si la tabla no existe.
func (t *Table) Columns(ctx context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(ctx); err != nil {
		return nil, err
	}
	if !t.exists {
		return nil, nil
	}
	return t.readColumns(ctx)
}

func (t *Table) Drop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(ctx); err != nil {
		return err
	}
	if !t.exists {
		return fmt.Errorf("%w: %s", ErrNoSuchTable, t.name)
	}
	if _, err := t.d.x.ExecContext(ctx, `DROP TABLE `+t.d.quote(t.name)); err != nil {
		return err
	}
	t.exists = false
	t.columns = map[string]struct{}{}
	return nil
}

var _ execer = (*sqlx.Tx)(nil)
