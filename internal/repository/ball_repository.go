package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/bowling-center/internal/model"
)

// BallSchema creates the bowling_balls table on MySQL.
const BallSchema = `CREATE TABLE IF NOT EXISTS bowling_balls (
	id        VARCHAR(64) NOT NULL PRIMARY KEY,
	size      VARCHAR(20) NOT NULL,
	grip_type VARCHAR(100) NOT NULL,
	color     VARCHAR(100) NOT NULL,
	status    VARCHAR(20) NOT NULL
)`

const (
	ballInsert = "INSERT INTO bowling_balls (id, size, grip_type, color, status) VALUES (?, ?, ?, ?, ?)"
	ballSelect = "SELECT id, size, grip_type, color, status FROM bowling_balls WHERE id = ?"
	ballList   = "SELECT id, size, grip_type, color, status FROM bowling_balls ORDER BY id"
	ballUpdate = "UPDATE bowling_balls SET size = ?, grip_type = ?, color = ?, status = ? WHERE id = ?"
	ballDelete = "DELETE FROM bowling_balls WHERE id = ?"
)

// BallRepo provides methods to work with bowling balls in the database.
type BallRepo struct {
	db *sql.DB
}

// NewBallRepo constructs a BallRepo with the given DB handle.
func NewBallRepo(db *sql.DB) *BallRepo {
	return &BallRepo{db: db}
}

// Create inserts a ball, assigning a UUID when b.ID is empty.
func (r *BallRepo) Create(ctx context.Context, b *model.Ball) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, ballInsert, b.ID, string(b.Size), b.GripType, b.Color, string(b.Status))
	return err
}

// GetByID returns ErrNotFound when the ball does not exist.
func (r *BallRepo) GetByID(ctx context.Context, id string) (*model.Ball, error) {
	var b model.Ball
	err := r.db.QueryRowContext(ctx, ballSelect, id).Scan(&b.ID, &b.Size, &b.GripType, &b.Color, &b.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BallRepo) List(ctx context.Context) ([]*model.Ball, error) {
	rows, err := r.db.QueryContext(ctx, ballList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Ball{}
	for rows.Next() {
		b := new(model.Ball)
		if err := rows.Scan(&b.ID, &b.Size, &b.GripType, &b.Color, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BallRepo) Update(ctx context.Context, b *model.Ball) error {
	res, err := r.db.ExecContext(ctx, ballUpdate, string(b.Size), b.GripType, b.Color, string(b.Status), b.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *BallRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, ballDelete, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
