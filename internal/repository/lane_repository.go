package repository

import (
	"context"      // context carries request deadlines into every query
	"database/sql" // sql provides generic database operations
	"errors"       // errors.Is is used to detect sql.ErrNoRows

	"github.com/google/uuid" // uuid generates opaque lane ids

	"github.com/iliyamo/bowling-center/internal/model"
)

// LaneSchema creates the lanes table on MySQL.  The id column holds any
// opaque string; lane-service generates UUIDs but accepts whatever is
// already stored.
const LaneSchema = `CREATE TABLE IF NOT EXISTS lanes (
	id          VARCHAR(64) NOT NULL PRIMARY KEY,
	lane_number INT NOT NULL,
	zone        VARCHAR(100) NOT NULL,
	status      VARCHAR(20) NOT NULL
)`

const (
	laneInsert = "INSERT INTO lanes (id, lane_number, zone, status) VALUES (?, ?, ?, ?)"
	laneSelect = "SELECT id, lane_number, zone, status FROM lanes WHERE id = ?"
	laneList   = "SELECT id, lane_number, zone, status FROM lanes ORDER BY lane_number, id"
	laneUpdate = "UPDATE lanes SET lane_number = ?, zone = ?, status = ? WHERE id = ?"
	laneDelete = "DELETE FROM lanes WHERE id = ?"
)

// LaneRepo encapsulates all database queries related to lanes.
type LaneRepo struct {
	db *sql.DB // db is the underlying connection pool
}

// NewLaneRepo constructs a LaneRepo with the provided DB handle.
func NewLaneRepo(db *sql.DB) *LaneRepo {
	return &LaneRepo{db: db}
}

// Create inserts a new lane.  When l.ID is empty a fresh UUID is assigned
// before the insert so that the caller receives the stored id.
func (r *LaneRepo) Create(ctx context.Context, l *model.Lane) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, laneInsert, l.ID, l.LaneNumber, l.Zone, string(l.Status))
	return err
}

// GetByID fetches a lane by id.  It returns ErrNotFound if no row matches.
func (r *LaneRepo) GetByID(ctx context.Context, id string) (*model.Lane, error) {
	var l model.Lane
	if err := r.db.QueryRowContext(ctx, laneSelect, id).Scan(&l.ID, &l.LaneNumber, &l.Zone, &l.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns every lane ordered by lane number.
func (r *LaneRepo) List(ctx context.Context) ([]*model.Lane, error) {
	rows, err := r.db.QueryContext(ctx, laneList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Lane{}
	for rows.Next() {
		l := new(model.Lane)
		if err := rows.Scan(&l.ID, &l.LaneNumber, &l.Zone, &l.Status); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every non-id column of the lane identified by l.ID.
// It returns ErrNotFound when no row matches.
func (r *LaneRepo) Update(ctx context.Context, l *model.Lane) error {
	res, err := r.db.ExecContext(ctx, laneUpdate, l.LaneNumber, l.Zone, string(l.Status), l.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the lane by id.  It returns ErrNotFound when no row matches.
func (r *LaneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, laneDelete, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow maps a zero RowsAffected to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
