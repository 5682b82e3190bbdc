package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bowling-center/internal/model"
)

const shoeID = "3f2b6c1e-8a4d-4f7e-9b1a-2c3d4e5f6a7b"

func TestShoeRepo_CreateGeneratesUUID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShoeRepo(db)

	bought := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(shoeInsert)).
		WithArgs(sqlmock.AnyArg(), "9", bought, "AVAILABLE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &model.Shoe{ID: "ignored", Size: model.Shoe9, PurchaseDate: model.NewDate(bought), Status: model.ShoeAvailable}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.NotEqual(t, "ignored", s.ID)
	assert.Len(t, s.ID, 36)
}

func TestShoeRepo_GetByIDNormalizesDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShoeRepo(db)

	stored := time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))
	mock.ExpectQuery(regexp.QuoteMeta(shoeSelect)).
		WithArgs(shoeID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "size", "purchase_date", "status"}).
			AddRow(shoeID, "10", stored, "IN_USE"))

	s, err := repo.GetByID(context.Background(), shoeID)
	require.NoError(t, err)
	assert.Equal(t, model.Shoe10, s.Size)
	assert.Equal(t, "2024-03-01", s.PurchaseDate.String())
	assert.Equal(t, model.ShoeInUse, s.Status)
}

func TestShoeRepo_NonUUIDIsNotFound(t *testing.T) {
	db, _ := newMock(t)
	repo := NewShoeRepo(db)

	_, err := repo.GetByID(context.Background(), "S1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "S1"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(context.Background(), &model.Shoe{ID: "S1"}), ErrNotFound)
}

func TestShoeRepo_UpdateUsesPositionalArgs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShoeRepo(db)

	bought := time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(shoeUpdate)).
		WithArgs("12", bought, "AVAILABLE", shoeID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.Shoe{
		ID: shoeID, Size: model.Shoe12, PurchaseDate: model.NewDate(bought), Status: model.ShoeAvailable,
	})
	assert.NoError(t, err)
}
