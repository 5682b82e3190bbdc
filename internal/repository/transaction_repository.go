package repository

import (
	"context"      // context carries request deadlines into every query
	"database/sql" // sql provides generic database operations
	"errors"       // errors.Is is used to detect sql.ErrNoRows

	"github.com/iliyamo/bowling-center/internal/model"
)

// TransactionSchema creates the transactions table on MySQL.  The
// auto-increment id is the storage key used by Save; transaction_id is the
// public identifier and is unique.  date_completed is kept as text so that
// the YYYY-MM-DD value round-trips unchanged.
const TransactionSchema = `CREATE TABLE IF NOT EXISTS transactions (
	id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	transaction_id  VARCHAR(64) NOT NULL,
	customer_name   VARCHAR(255) NOT NULL,
	lane_id         VARCHAR(64) NOT NULL,
	bowling_ball_id VARCHAR(64) NOT NULL,
	shoe_id         VARCHAR(64) NOT NULL,
	lane_zone       VARCHAR(100) NOT NULL,
	total_price     DECIMAL(10,2) NOT NULL,
	date_completed  CHAR(10) NOT NULL,
	status          VARCHAR(20) NOT NULL,
	UNIQUE KEY uq_transactions_transaction_id (transaction_id)
)`

const txColumns = "id, transaction_id, customer_name, lane_id, bowling_ball_id, shoe_id, lane_zone, total_price, date_completed, status"

const (
	txInsert = `INSERT INTO transactions
	            (transaction_id, customer_name, lane_id, bowling_ball_id, shoe_id, lane_zone, total_price, date_completed, status)
	            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	txSelectByTransactionID = "SELECT " + txColumns + " FROM transactions WHERE transaction_id = ?"
	txList                  = "SELECT " + txColumns + " FROM transactions ORDER BY id"
	// txUpsert writes every column keyed on the internal id; an existing
	// row is overwritten in place instead of duplicated.
	txUpsert = `INSERT INTO transactions (` + txColumns + `)
	            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	            ON DUPLICATE KEY UPDATE
	              transaction_id = VALUES(transaction_id),
	              customer_name = VALUES(customer_name),
	              lane_id = VALUES(lane_id),
	              bowling_ball_id = VALUES(bowling_ball_id),
	              shoe_id = VALUES(shoe_id),
	              lane_zone = VALUES(lane_zone),
	              total_price = VALUES(total_price),
	              date_completed = VALUES(date_completed),
	              status = VALUES(status)`
	txDelete = "DELETE FROM transactions WHERE id = ?"
	txCount  = "SELECT COUNT(*) FROM transactions"
)

// TransactionRepo persists rental transactions.  It enforces nothing about
// the lane, ball and shoe ids it stores; those belong to other services.
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo constructs a TransactionRepo with the given DB handle.
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// Create inserts t and populates t.ID with the generated storage key.
func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	res, err := r.db.ExecContext(ctx, txInsert,
		t.TransactionID, t.CustomerName, t.LaneID, t.BowlingBallID, t.ShoeID,
		t.LaneZone, t.TotalPrice, t.DateCompleted, string(t.Status))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByTransactionID looks a transaction up by its public id.  It returns
// ErrNotFound if no row matches.
func (r *TransactionRepo) GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRowContext(ctx, txSelectByTransactionID, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every transaction in insertion order.
func (r *TransactionRepo) List(ctx context.Context) ([]*model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, txList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts t by its internal id.  t.ID must be the storage key of a
// previously loaded record; last write wins.
func (r *TransactionRepo) Save(ctx context.Context, t *model.Transaction) error {
	_, err := r.db.ExecContext(ctx, txUpsert,
		t.ID, t.TransactionID, t.CustomerName, t.LaneID, t.BowlingBallID, t.ShoeID,
		t.LaneZone, t.TotalPrice, t.DateCompleted, string(t.Status))
	return err
}

// Delete removes the transaction with internal id.  It returns ErrNotFound
// when no row matches.
func (r *TransactionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, txDelete, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Count returns the number of stored transactions.
func (r *TransactionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, txCount).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s rowScanner) (*model.Transaction, error) {
	var t model.Transaction
	if err := s.Scan(&t.ID, &t.TransactionID, &t.CustomerName, &t.LaneID, &t.BowlingBallID,
		&t.ShoeID, &t.LaneZone, &t.TotalPrice, &t.DateCompleted, &t.Status); err != nil {
		return nil, err
	}
	return &t, nil
}
