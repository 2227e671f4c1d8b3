package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pets-catalog/internal/domain/kinds"
)

type KindsRepo struct {
	db *DB
}

func NewKindsRepo(db *DB) *KindsRepo {
	return &KindsRepo{db: db}
}

type kindRow struct {
	ID    int64          `db:"id"`
	Name  string         `db:"name"`
	Food  sql.NullString `db:"food"`
	Sound sql.NullString `db:"sound"`
}

func (r kindRow) toKind() kinds.Kind {
	return kinds.Kind{
		ID:    formatID(r.ID),
		Name:  r.Name,
		Food:  r.Food.String,
		Sound: r.Sound.String,
	}
}

func (r *KindsRepo) List(ctx context.Context) ([]kinds.Kind, error) {
	var rows []kindRow
	if err := r.db.X.SelectContext(ctx, &rows, `
		SELECT id, name, food, sound
		FROM kind
		ORDER BY name, id
	`); err != nil {
		return nil, err
	}

	out := make([]kinds.Kind, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toKind())
	}
	return out, nil
}

func (r *KindsRepo) GetByID(ctx context.Context, id string) (kinds.Kind, error) {
	n, ok := parseID(id)
	if !ok {
		return kinds.Kind{}, kinds.ErrNotFound
	}

	var row kindRow
	err := r.db.X.GetContext(ctx, &row, r.db.X.Rebind(`
		SELECT id, name, food, sound
		FROM kind
		WHERE id = ?
	`), n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kinds.Kind{}, kinds.ErrNotFound
		}
		return kinds.Kind{}, err
	}
	return row.toKind(), nil
}

func (r *KindsRepo) Create(ctx context.Context, k kinds.Kind) (kinds.Kind, error) {
	id, err := r.db.insertReturningID(ctx, `
		INSERT INTO kind (name, food, sound)
		VALUES (?, ?, ?)
	`, k.Name, k.Food, k.Sound)
	if err != nil {
		return kinds.Kind{}, err
	}
	k.ID = formatID(id)
	return k, nil
}

func (r *KindsRepo) Update(ctx context.Context, k kinds.Kind) error {
	n, ok := parseID(k.ID)
	if !ok {
		return kinds.ErrNotFound
	}

	res, err := r.db.X.ExecContext(ctx, r.db.X.Rebind(`
		UPDATE kind
		SET name = ?, food = ?, sound = ?
		WHERE id = ?
	`), k.Name, k.Food, k.Sound, n)
	if err != nil {
		return err
	}
	return expectOne(res, kinds.ErrNotFound)
}

func (r *KindsRepo) Delete(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return kinds.ErrNotFound
	}

	res, err := r.db.X.ExecContext(ctx, r.db.X.Rebind(`DELETE FROM kind WHERE id = ?`), n)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %v", kinds.ErrInUse, err)
		}
		return err
	}
	return expectOne(res, kinds.ErrNotFound)
}

// insertReturningID: Postgres y SQLite soportan RETURNING; MySQL usa LastInsertId.
func (db *DB) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if db.Dialect == MySQL {
		res, err := db.X.ExecContext(ctx, db.X.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	var id int64
	if err := db.X.QueryRowxContext(ctx, db.X.Rebind(query+` RETURNING id`), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
