package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/model"
	"github.com/iliyamo/bowling-center/internal/queue"
	"github.com/iliyamo/bowling-center/internal/repository"
)

type laneMock struct{ mock.Mock }

func (m *laneMock) FetchByID(ctx context.Context, id string) (*model.LaneSnapshot, error) {
	args := m.Called(ctx, id)
	lane, _ := args.Get(0).(*model.LaneSnapshot)
	return lane, args.Error(1)
}

type ballMock struct{ mock.Mock }

func (m *ballMock) FetchByID(ctx context.Context, id string) (*model.BallSnapshot, error) {
	args := m.Called(ctx, id)
	ball, _ := args.Get(0).(*model.BallSnapshot)
	return ball, args.Error(1)
}

type shoeMock struct{ mock.Mock }

func (m *shoeMock) FetchByID(ctx context.Context, id string) (*model.ShoeSnapshot, error) {
	args := m.Called(ctx, id)
	shoe, _ := args.Get(0).(*model.ShoeSnapshot)
	return shoe, args.Error(1)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, ev queue.TransactionEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// memStore is an in-memory TransactionStore keyed on the storage id.
type memStore struct {
	mu   sync.Mutex
	next uint64
	rows []model.Transaction
}

func (s *memStore) Create(_ context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	t.ID = s.next
	s.rows = append(s.rows, *t)
	return nil
}

func (s *memStore) GetByTransactionID(_ context.Context, id string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.TransactionID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) List(context.Context) ([]*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Transaction, 0, len(s.rows))
	for _, r := range s.rows {
		cp := r
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == t.ID {
			s.rows[i] = *t
			return nil
		}
	}
	s.rows = append(s.rows, *t)
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows), nil
}

var fixedNow = time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

type fixture struct {
	lanes *laneMock
	balls *ballMock
	shoes *shoeMock
	store *memStore
	wf    *TransactionWorkflow
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{lanes: new(laneMock), balls: new(ballMock), shoes: new(shoeMock), store: new(memStore)}
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "tx-1" }),
	}, opts...)
	f.wf = NewTransactionWorkflow(f.lanes, f.balls, f.shoes, f.store, opts...)
	return f
}

func status(s model.TransactionStatus) *model.TransactionStatus { return &s }

func aliceRequest(s model.TransactionStatus) model.TransactionRequest {
	return model.TransactionRequest{
		CustomerName:  "Alice",
		LaneID:        "L1",
		BowlingBallID: "B1",
		ShoeID:        "S1",
		Status:        status(s),
	}
}

func (f *fixture) laneIs(zone string, st model.LaneStatus) {
	f.lanes.On("FetchByID", mock.Anything, "L1").Return(&model.LaneSnapshot{ID: "L1", Zone: zone, Status: st}, nil)
}

func (f *fixture) ballAndShoeExist() {
	f.balls.On("FetchByID", mock.Anything, "B1").Return(&model.BallSnapshot{ID: "B1"}, nil)
	f.shoes.On("FetchByID", mock.Anything, "S1").Return(&model.ShoeSnapshot{ID: "S1"}, nil)
}

func TestCreate_StampsComputedFields(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_1", model.LaneAvailable)
	f.ballAndShoeExist()

	got, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionOpen))
	require.NoError(t, err)

	assert.Equal(t, "tx-1", got.TransactionID)
	assert.Equal(t, "ZONE_1", got.LaneZone)
	assert.True(t, decimal.NewFromInt(30).Equal(got.TotalPrice))
	assert.Equal(t, "2025-06-01", got.DateCompleted)
	assert.Equal(t, model.TransactionOpen, got.Status)
	assert.Equal(t, "Alice", got.CustomerName)
	f.lanes.AssertExpectations(t)
	f.balls.AssertExpectations(t)
	f.shoes.AssertExpectations(t)
}

func TestCreate_ThenGetRoundTrips(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_2", model.LaneInUse)
	f.ballAndShoeExist()

	created, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionOpen))
	require.NoError(t, err)

	fetched, err := f.wf.Get(context.Background(), created.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreate_CompletionGuardRejectsBusyLane(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_1", model.LaneInUse)

	_, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionCompleted))
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
	assert.Equal(t, "Cannot complete transaction: lane is not available.", err.Error())

	n, _ := f.store.Count(context.Background())
	assert.Zero(t, n)
	f.balls.AssertNotCalled(t, "FetchByID", mock.Anything, mock.Anything)
	f.shoes.AssertNotCalled(t, "FetchByID", mock.Anything, mock.Anything)
}

func TestCreate_CompletedOnAvailableLaneIsAllowed(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_3", model.LaneAvailable)
	f.ballAndShoeExist()

	got, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionCompleted))
	require.NoError(t, err)
	assert.Equal(t, model.TransactionCompleted, got.Status)
}

func TestCreate_LaneErrorWinsOverMissingBall(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_1", model.LaneMaintenance)
	f.balls.On("FetchByID", mock.Anything, "B1").Return(nil, apperr.NotFound("Bowling ball not found with ID: B1")).Maybe()

	_, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionCompleted))
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
	f.balls.AssertNotCalled(t, "FetchByID", mock.Anything, mock.Anything)
}

func TestCreate_MissingStatusMakesNoDownstreamCalls(t *testing.T) {
	f := newFixture()
	req := aliceRequest(model.TransactionOpen)
	req.Status = nil

	_, err := f.wf.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidTransactionStatus, apperr.KindOf(err))
	assert.Equal(t, "Transaction status is required and must be valid.", err.Error())

	assert.Empty(t, f.lanes.Calls)
	assert.Empty(t, f.balls.Calls)
	assert.Empty(t, f.shoes.Calls)
}

func TestCreate_PropagatesLookupErrorsAsIs(t *testing.T) {
	f := newFixture()
	laneErr := apperr.InvalidInput("Invalid Lane ID format: L1")
	f.lanes.On("FetchByID", mock.Anything, "L1").Return(nil, laneErr)

	_, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionOpen))
	assert.Same(t, laneErr, err)
}

func TestCreate_MissingShoeIsNotFound(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_1", model.LaneAvailable)
	f.balls.On("FetchByID", mock.Anything, "B1").Return(&model.BallSnapshot{ID: "B1"}, nil)
	f.shoes.On("FetchByID", mock.Anything, "S1").Return(nil, apperr.NotFound("Shoe not found with ID: S1"))

	_, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionOpen))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Shoe not found with ID: S1", err.Error())
}

func TestUpdate_KeepsPriceDateAndID(t *testing.T) {
	f := newFixture()
	original := &model.Transaction{
		TransactionID: "tx-old",
		CustomerName:  "Bob",
		LaneID:        "L0",
		BowlingBallID: "B0",
		ShoeID:        "S0",
		LaneZone:      "ZONE_9",
		TotalPrice:    decimal.RequireFromString("28.50"),
		DateCompleted: "2024-12-31",
		Status:        model.TransactionOpen,
	}
	require.NoError(t, f.store.Create(context.Background(), original))
	f.laneIs("ZONE_1", model.LaneAvailable)
	f.ballAndShoeExist()

	got, err := f.wf.Update(context.Background(), "tx-old", aliceRequest(model.TransactionCompleted))
	require.NoError(t, err)

	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, "tx-old", got.TransactionID)
	assert.True(t, original.TotalPrice.Equal(got.TotalPrice))
	assert.Equal(t, "2024-12-31", got.DateCompleted)
	assert.Equal(t, "ZONE_1", got.LaneZone)
	assert.Equal(t, "Alice", got.CustomerName)
	assert.Equal(t, model.TransactionCompleted, got.Status)

	n, _ := f.store.Count(context.Background())
	assert.Equal(t, 1, n, "update must overwrite, not duplicate")
}

func TestUpdate_UnknownIDIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.wf.Update(context.Background(), "zzz", aliceRequest(model.TransactionOpen))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), "zzz")
	assert.Empty(t, f.lanes.Calls)
}

func TestUpdate_MissingStatusIsCheckedFirst(t *testing.T) {
	f := newFixture()
	req := aliceRequest(model.TransactionOpen)
	req.Status = nil

	_, err := f.wf.Update(context.Background(), "zzz", req)
	assert.Equal(t, apperr.KindInvalidTransactionStatus, apperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	f := newFixture()
	f.laneIs("ZONE_1", model.LaneAvailable)
	f.ballAndShoeExist()
	created, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionOpen))
	require.NoError(t, err)
	f.lanes.Calls = nil

	require.NoError(t, f.wf.Delete(context.Background(), created.TransactionID))

	_, err = f.wf.Get(context.Background(), created.TransactionID)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.lanes.Calls)
}

func TestDelete_UnknownIDLeavesStoreUnchanged(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.Create(context.Background(), &model.Transaction{TransactionID: "keep"}))

	err := f.wf.Delete(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Transaction with ID nope not found.", err.Error())

	n, _ := f.store.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestList(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.Create(context.Background(), &model.Transaction{TransactionID: "a"}))
	require.NoError(t, f.store.Create(context.Background(), &model.Transaction{TransactionID: "b"}))

	all, err := f.wf.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreate_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := new(publisherMock)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev queue.TransactionEvent) bool {
		return ev.Type == queue.TransactionCreated && ev.TransactionID == "tx-1" && ev.LaneZone == "ZONE_1"
	})).Return(errors.New("broker down"))

	f := newFixture(WithEvents(pub))
	f.laneIs("ZONE_1", model.LaneAvailable)
	f.ballAndShoeExist()

	_, err := f.wf.Create(context.Background(), aliceRequest(model.TransactionOpen))
	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestSeedSampleData(t *testing.T) {
	store := new(memStore)

	n, err := SeedSampleData(context.Background(), store, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	all, _ := store.List(context.Background())
	assert.Equal(t, "Alice Smith", all[0].CustomerName)
	assert.Equal(t, "2025-05-30", all[0].DateCompleted)
	assert.Equal(t, "Jayden Patel", all[9].CustomerName)

	n, err = SeedSampleData(context.Background(), store, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, n)
}
