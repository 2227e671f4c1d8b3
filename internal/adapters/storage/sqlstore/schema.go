package sqlstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
)

var schemas = map[Dialect][]string{
	SQLite: {
		`CREATE TABLE IF NOT EXISTS kind (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			food TEXT,
			sound TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS pet (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			age INTEGER,
			owner TEXT,
			kind_id INTEGER NOT NULL REFERENCES kind(id) ON DELETE RESTRICT
		)`,
	},
	Postgres: {
		`CREATE TABLE IF NOT EXISTS kind (
			id SERIAL PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			food VARCHAR(100),
			sound VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS pet (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			age INTEGER,
			owner VARCHAR(100),
			kind_id INTEGER NOT NULL,
			FOREIGN KEY (kind_id) REFERENCES kind(id) ON DELETE RESTRICT
		)`,
	},
	MySQL: {
		`CREATE TABLE IF NOT EXISTS kind (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			food VARCHAR(100),
			sound VARCHAR(50)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS pet (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			age INT,
			owner VARCHAR(100),
			kind_id INT NOT NULL,
			FOREIGN KEY (kind_id) REFERENCES kind(id) ON DELETE RESTRICT
		) ENGINE=InnoDB`,
	},
}

var dropStatements = map[Dialect][]string{
	SQLite:   {`DROP TABLE IF EXISTS pet`, `DROP TABLE IF EXISTS kind`},
	Postgres: {`DROP TABLE IF EXISTS pet CASCADE`, `DROP TABLE IF EXISTS kind CASCADE`},
	MySQL:    {`DROP TABLE IF EXISTS pet`, `DROP TABLE IF EXISTS kind`},
}

var roleName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type MigrateOptions struct {
	// Reset borra las tablas antes de crearlas (setup de tests/demo).
	Reset bool

	// GrantTo: solo Postgres. Rol de la app al que se le dan permisos
	// mínimos (DML + secuencias), sin DDL. La app no debería conectarse
	// con el superusuario.
	GrantTo string
}

// Migrate crea kind y pet si no existen. Cada statement va por separado:
// el driver de MySQL no acepta multi-statements por defecto.
func Migrate(ctx context.Context, db *DB, opts MigrateOptions) error {
	stmts := make([]string, 0, 8)
	if opts.Reset {
		stmts = append(stmts, dropStatements[db.Dialect]...)
	}
	stmts = append(stmts, schemas[db.Dialect]...)

	if opts.GrantTo != "" {
		grants, err := GrantStatements(db.Dialect, opts.GrantTo)
		if err != nil {
			return err
		}
		stmts = append(stmts, grants...)
	}

	for _, q := range stmts {
		if _, err := db.X.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("sqlstore: migrate: %w", err)
		}
	}
	return nil
}

// GrantStatements devuelve los GRANT de mínimo privilegio para el rol.
func GrantStatements(d Dialect, role string) ([]string, error) {
	if d != Postgres {
		return nil, fmt.Errorf("sqlstore: grants are only supported on postgres, got %s", d)
	}
	if !roleName.MatchString(role) {
		return nil, fmt.Errorf("sqlstore: invalid role name %q", role)
	}

	r := pgx.Identifier{role}.Sanitize()
	return []string{
		`GRANT SELECT, INSERT, UPDATE, DELETE ON kind, pet TO ` + r,
		`GRANT USAGE, SELECT ON SEQUENCE kind_id_seq, pet_id_seq TO ` + r,
	}, nil
}
