package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pets-catalog/internal/domain/pets"
)

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

type petRow struct {
	ID     int64          `db:"id"`
	Name   string         `db:"name"`
	Age    sql.NullInt64  `db:"age"`
	Owner  sql.NullString `db:"owner"`
	KindID int64          `db:"kind_id"`
}

func (r petRow) toPet() pets.Pet {
	return pets.Pet{
		ID:     formatID(r.ID),
		Name:   r.Name,
		Age:    int(r.Age.Int64),
		Owner:  r.Owner.String,
		KindID: formatID(r.KindID),
	}
}

type petViewRow struct {
	petRow

	KindName string         `db:"kind_name"`
	Food     sql.NullString `db:"food"`
	Sound    sql.NullString `db:"sound"`
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.View, error) {
	var rows []petViewRow
	if err := r.db.X.SelectContext(ctx, &rows, `
		SELECT
			pet.id, pet.name, pet.age, pet.owner, pet.kind_id,
			kind.name AS kind_name, kind.food, kind.sound
		FROM pet
		JOIN kind ON pet.kind_id = kind.id
		ORDER BY pet.name, pet.id
	`); err != nil {
		return nil, err
	}

	out := make([]pets.View, 0, len(rows))
	for _, row := range rows {
		out = append(out, pets.View{
			Pet:      row.toPet(),
			KindName: row.KindName,
			Food:     row.Food.String,
			Sound:    row.Sound.String,
		})
	}
	return out, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	n, ok := parseID(id)
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}

	var row petRow
	err := r.db.X.GetContext(ctx, &row, r.db.X.Rebind(`
		SELECT id, name, age, owner, kind_id
		FROM pet
		WHERE id = ?
	`), n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return row.toPet(), nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	kindID, ok := parseID(p.KindID)
	if !ok {
		return pets.Pet{}, pets.ErrUnknownKind
	}

	id, err := r.db.insertReturningID(ctx, `
		INSERT INTO pet (name, age, owner, kind_id)
		VALUES (?, ?, ?, ?)
	`, p.Name, p.Age, p.Owner, kindID)
	if err != nil {
		return pets.Pet{}, mapPetWriteError(err)
	}
	p.ID = formatID(id)
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	n, ok := parseID(p.ID)
	if !ok {
		return pets.ErrNotFound
	}
	kindID, ok := parseID(p.KindID)
	if !ok {
		return pets.ErrUnknownKind
	}

	res, err := r.db.X.ExecContext(ctx, r.db.X.Rebind(`
		UPDATE pet
		SET name = ?, age = ?, owner = ?, kind_id = ?
		WHERE id = ?
	`), p.Name, p.Age, p.Owner, kindID, n)
	if err != nil {
		return mapPetWriteError(err)
	}
	return expectOne(res, pets.ErrNotFound)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return pets.ErrNotFound
	}

	res, err := r.db.X.ExecContext(ctx, r.db.X.Rebind(`DELETE FROM pet WHERE id = ?`), n)
	if err != nil {
		return err
	}
	return expectOne(res, pets.ErrNotFound)
}

func mapPetWriteError(err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", pets.ErrUnknownKind, err)
	}
	return err
}
