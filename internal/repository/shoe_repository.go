package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/bowling-center/internal/model"
)

// ShoeSchema creates the shoes table on Postgres.  Shoe ids live in a
// native uuid column.
const ShoeSchema = `CREATE TABLE IF NOT EXISTS shoes (
	id            UUID PRIMARY KEY,
	size          VARCHAR(2) NOT NULL,
	purchase_date DATE NOT NULL,
	status        VARCHAR(20) NOT NULL
)`

const (
	shoeInsert = "INSERT INTO shoes (id, size, purchase_date, status) VALUES ($1, $2, $3, $4)"
	shoeSelect = "SELECT id, size, purchase_date, status FROM shoes WHERE id = $1"
	shoeList   = "SELECT id, size, purchase_date, status FROM shoes ORDER BY purchase_date, id"
	shoeUpdate = "UPDATE shoes SET size = $1, purchase_date = $2, status = $3 WHERE id = $4"
	shoeDelete = "DELETE FROM shoes WHERE id = $1"
)

// ShoeRepo stores rental shoes in Postgres.
type ShoeRepo struct {
	db *sql.DB
}

func NewShoeRepo(db *sql.DB) *ShoeRepo {
	return &ShoeRepo{db: db}
}

// Create always assigns a new UUID; a caller-supplied id is replaced.
func (r *ShoeRepo) Create(ctx context.Context, s *model.Shoe) error {
	id := uuid.New()
	if _, err := r.db.ExecContext(ctx, shoeInsert, id, string(s.Size), s.PurchaseDate.Time, string(s.Status)); err != nil {
		return err
	}
	s.ID = id.String()
	return nil
}

// GetByID returns ErrNotFound for unknown ids and for ids that are not
// UUIDs at all, since such an id can never match the uuid column.
func (r *ShoeRepo) GetByID(ctx context.Context, id string) (*model.Shoe, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var s model.Shoe
	err = r.db.QueryRowContext(ctx, shoeSelect, key).Scan(&s.ID, &s.Size, &s.PurchaseDate.Time, &s.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.PurchaseDate = model.NewDate(s.PurchaseDate.Time)
	return &s, nil
}

func (r *ShoeRepo) List(ctx context.Context) ([]*model.Shoe, error) {
	rows, err := r.db.QueryContext(ctx, shoeList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Shoe{}
	for rows.Next() {
		s := new(model.Shoe)
		if err := rows.Scan(&s.ID, &s.Size, &s.PurchaseDate.Time, &s.Status); err != nil {
			return nil, err
		}
		s.PurchaseDate = model.NewDate(s.PurchaseDate.Time)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ShoeRepo) Update(ctx context.Context, s *model.Shoe) error {
	key, err := uuid.Parse(s.ID)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, shoeUpdate, string(s.Size), s.PurchaseDate.Time, string(s.Status), key)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ShoeRepo) Delete(ctx context.Context, id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, shoeDelete, key)
	if err != nil {
		return err
	}
	return requireRow(res)
}
