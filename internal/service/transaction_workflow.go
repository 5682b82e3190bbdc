// Package service holds the transaction workflow: the only place where a
// request is checked against three other services before it is stored.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/model"
	"github.com/iliyamo/bowling-center/internal/queue"
	"github.com/iliyamo/bowling-center/internal/repository"
)

// TransactionPrice is the flat price stamped on every new transaction.
var TransactionPrice = decimal.NewFromInt(30)

// LaneFetcher resolves a lane on lane-service.
type LaneFetcher interface {
	FetchByID(ctx context.Context, id string) (*model.LaneSnapshot, error)
}

// BallFetcher resolves a bowling ball on ball-service.
type BallFetcher interface {
	FetchByID(ctx context.Context, id string) (*model.BallSnapshot, error)
}

// ShoeFetcher resolves a pair of shoes on shoe-service.
type ShoeFetcher interface {
	FetchByID(ctx context.Context, id string) (*model.ShoeSnapshot, error)
}

// TransactionStore is the persistence the workflow needs.  Lookups return
// repository.ErrNotFound for unknown ids.
type TransactionStore interface {
	Create(ctx context.Context, t *model.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	Save(ctx context.Context, t *model.Transaction) error
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int, error)
}

// EventPublisher receives an event after every successful write.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.TransactionEvent) error
}

// TransactionWorkflow validates, stamps and persists transactions.  Lane,
// ball and shoe are resolved strictly in that order so that a lane error
// always wins over a ball or shoe error.
type TransactionWorkflow struct {
	lanes  LaneFetcher
	balls  BallFetcher
	shoes  ShoeFetcher
	store  TransactionStore
	events EventPublisher // optional

	now   func() time.Time
	newID func() string
}

// Option customises a TransactionWorkflow.
type Option func(*TransactionWorkflow)

// WithClock replaces time.Now; tests use it to pin dateCompleted.
func WithClock(now func() time.Time) Option {
	return func(w *TransactionWorkflow) { w.now = now }
}

// WithIDGenerator replaces uuid.NewString for transaction ids.
func WithIDGenerator(gen func() string) Option {
	return func(w *TransactionWorkflow) { w.newID = gen }
}

// WithEvents attaches a publisher.  Without one no events are sent.
func WithEvents(p EventPublisher) Option {
	return func(w *TransactionWorkflow) { w.events = p }
}

func NewTransactionWorkflow(lanes LaneFetcher, balls BallFetcher, shoes ShoeFetcher, store TransactionStore, opts ...Option) *TransactionWorkflow {
	w := &TransactionWorkflow{
		lanes: lanes,
		balls: balls,
		shoes: shoes,
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// List returns every stored transaction.
func (w *TransactionWorkflow) List(ctx context.Context) ([]*model.Transaction, error) {
	return w.store.List(ctx)
}

// Get returns the stored transaction without re-validating its references.
func (w *TransactionWorkflow) Get(ctx context.Context, transactionID string) (*model.Transaction, error) {
	return w.find(ctx, transactionID)
}

// Create runs the full pipeline: status check, lane lookup, completion
// guard, ball and shoe lookups, then persist and re-read.
func (w *TransactionWorkflow) Create(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error) {
	if err := requireStatus(req); err != nil {
		return nil, err
	}
	lane, err := w.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	t := &model.Transaction{
		TransactionID: w.newID(),
		LaneZone:      lane.Zone,
		TotalPrice:    TransactionPrice,
		DateCompleted: w.now().Format(model.DateLayout),
	}
	applyRequest(t, req)

	if err := w.store.Create(ctx, t); err != nil {
		return nil, err
	}
	stored, err := w.find(ctx, t.TransactionID)
	if err != nil {
		return nil, err
	}
	w.publish(ctx, queue.TransactionCreated, stored)
	return stored, nil
}

// Update replaces the mutable fields of an existing transaction.  The
// transaction id, price and completion date of the stored record are kept.
func (w *TransactionWorkflow) Update(ctx context.Context, transactionID string, req model.TransactionRequest) (*model.Transaction, error) {
	if err := requireStatus(req); err != nil {
		return nil, err
	}
	existing, err := w.find(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	lane, err := w.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	updated := &model.Transaction{
		ID:            existing.ID,
		TransactionID: existing.TransactionID,
		LaneZone:      lane.Zone,
		TotalPrice:    existing.TotalPrice,
		DateCompleted: existing.DateCompleted,
	}
	applyRequest(updated, req)

	if err := w.store.Save(ctx, updated); err != nil {
		return nil, err
	}
	w.publish(ctx, queue.TransactionUpdated, updated)
	return updated, nil
}

// Delete removes an existing transaction.  Lane, ball and shoe services
// are never contacted.
func (w *TransactionWorkflow) Delete(ctx context.Context, transactionID string) error {
	existing, err := w.find(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := w.store.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(transactionID)
		}
		return err
	}
	w.publish(ctx, queue.TransactionDeleted, existing)
	return nil
}

func requireStatus(req model.TransactionRequest) error {
	if req.Status == nil || !validStatus(*req.Status) {
		return apperr.InvalidTransactionStatus("Transaction status is required and must be valid.")
	}
	return nil
}

func validStatus(s model.TransactionStatus) bool {
	for _, v := range model.TransactionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// resolve looks up lane, ball and shoe in order and applies the completion
// guard right after the lane lookup.  Ball and shoe are existence checks.
func (w *TransactionWorkflow) resolve(ctx context.Context, req model.TransactionRequest) (*model.LaneSnapshot, error) {
	lane, err := w.lanes.FetchByID(ctx, req.LaneID)
	if err != nil {
		return nil, err
	}
	if *req.Status == model.TransactionCompleted && lane.Status != model.LaneAvailable {
		return nil, apperr.InvalidInput("Cannot complete transaction: lane is not available.")
	}
	if _, err := w.balls.FetchByID(ctx, req.BowlingBallID); err != nil {
		return nil, err
	}
	if _, err := w.shoes.FetchByID(ctx, req.ShoeID); err != nil {
		return nil, err
	}
	return lane, nil
}

func (w *TransactionWorkflow) find(ctx context.Context, transactionID string) (*model.Transaction, error) {
	t, err := w.store.GetByTransactionID(ctx, transactionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(transactionID)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func notFound(transactionID string) error {
	return apperr.NotFound("Transaction with ID " + transactionID + " not found.")
}

func applyRequest(t *model.Transaction, req model.TransactionRequest) {
	t.CustomerName = req.CustomerName
	t.LaneID = req.LaneID
	t.BowlingBallID = req.BowlingBallID
	t.ShoeID = req.ShoeID
	t.Status = *req.Status
}

// publish is best effort: a broker failure is logged and the request
// still succeeds.
func (w *TransactionWorkflow) publish(ctx context.Context, typ string, t *model.Transaction) {
	if w.events == nil {
		return
	}
	ev := queue.TransactionEvent{
		Type:          typ,
		TransactionID: t.TransactionID,
		CustomerName:  t.CustomerName,
		LaneID:        t.LaneID,
		LaneZone:      t.LaneZone,
		Status:        string(t.Status),
		TotalPrice:    t.TotalPrice,
		OccurredAt:    w.now().UTC().Format(time.RFC3339),
	}
	if err := w.events.Publish(ctx, ev); err != nil {
		log.Printf("transaction-workflow: publish %s for %s failed: %v", typ, t.TransactionID, err)
	}
}
