package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bowling-center/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestLaneRepo_CreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(laneInsert)).
		WithArgs(sqlmock.AnyArg(), 7, "ZONE_1", "AVAILABLE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := &model.Lane{LaneNumber: 7, Zone: "ZONE_1", Status: model.LaneAvailable}
	require.NoError(t, repo.Create(context.Background(), l))
	assert.NotEmpty(t, l.ID)
}

func TestLaneRepo_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(laneSelect)).
		WithArgs("L1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lane_number", "zone", "status"}).
			AddRow("L1", 1, "ZONE_1", "IN_USE"))

	l, err := repo.GetByID(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, &model.Lane{ID: "L1", LaneNumber: 1, Zone: "ZONE_1", Status: model.LaneInUse}, l)
}

func TestLaneRepo_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(laneSelect)).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLaneRepo_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(laneList)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lane_number", "zone", "status"}).
			AddRow("L1", 1, "ZONE_1", "AVAILABLE").
			AddRow("L2", 2, "ZONE_2", "MAINTENANCE"))

	lanes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lanes, 2)
	assert.Equal(t, model.LaneMaintenance, lanes[1].Status)
}

func TestLaneRepo_ListEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(laneList)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lane_number", "zone", "status"}))

	lanes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, lanes)
	assert.Empty(t, lanes)
}

func TestLaneRepo_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(laneUpdate)).
		WithArgs(3, "ZONE_3", "AVAILABLE", "L9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Lane{ID: "L9", LaneNumber: 3, Zone: "ZONE_3", Status: model.LaneAvailable})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLaneRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLaneRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(laneDelete)).WithArgs("L1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(laneDelete)).WithArgs("L1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "L1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "L1"), ErrNotFound)
}

func TestBallRepo_CreateAndGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBallRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(ballInsert)).
		WithArgs("B1", "TEN", "CONVENTIONAL", "Red", "AVAILABLE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(ballSelect)).
		WithArgs("B1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "size", "grip_type", "color", "status"}).
			AddRow("B1", "TEN", "CONVENTIONAL", "Red", "AVAILABLE"))

	b := &model.Ball{ID: "B1", Size: model.BallTen, GripType: "CONVENTIONAL", Color: "Red", Status: model.BallAvailable}
	require.NoError(t, repo.Create(context.Background(), b))

	got, err := repo.GetByID(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestBallRepo_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBallRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(ballSelect)).WithArgs("B404").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "B404")
	assert.ErrorIs(t, err, ErrNotFound)
}
