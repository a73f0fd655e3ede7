package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository/postgres"
)

func TestPickupRepository_MarkPickedUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPickupRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Pending Flips", func(t *testing.T) {
		mock.ExpectExec("UPDATE pickups SET status = \\$1, actual_pickup_date = \\$2 WHERE id = \\$3 AND status = \\$4").
			WithArgs(domain.PickupStatusPickedUp, now, int32(1), domain.PickupStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkPickedUp(ctx, 1, now)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Already Picked Up", func(t *testing.T) {
		mock.ExpectExec("UPDATE pickups SET status").
			WithArgs(domain.PickupStatusPickedUp, now, int32(1), domain.PickupStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkPickedUp(ctx, 1, now)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPickupRepository_ExistsByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPickupRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByOrder(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestReturnRepository_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReturnRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Pending Completes", func(t *testing.T) {
		mock.ExpectExec("UPDATE returns SET status = \\$1, actual_return_date = \\$2, condition = \\$3").
			WithArgs(domain.ReturnStatusCompleted, now, "minor scratches", int32(500), int32(0), int32(3), domain.ReturnStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Complete(ctx, 3, now, "minor scratches", 500, 0)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Already Completed", func(t *testing.T) {
		mock.ExpectExec("UPDATE returns SET status").
			WithArgs(domain.ReturnStatusCompleted, now, "ok", int32(0), int32(0), int32(3), domain.ReturnStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Complete(ctx, 3, now, "ok", 0, 0)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestReturnRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewReturnRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "order_id", "status", "scheduled_return_date", "actual_return_date", "condition", "damage_fee_cents", "late_fee_cents", "created_on"}).
		AddRow(3, 8, "PENDING", nil, nil, "", 0, 0, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM returns WHERE id = \\$1").
		WithArgs(int32(3)).
		WillReturnRows(rows)

	ret, err := repo.GetByID(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusPending, ret.Status)
	assert.Nil(t, ret.ActualReturnDate)
}
