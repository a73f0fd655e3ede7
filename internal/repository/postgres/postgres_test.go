package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"
	"leaseo-backend/internal/repository/postgres"
)

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commits On Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rental_orders SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products SET quantity").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithinTx(ctx, func(tx repository.Repos) error {
			ok, err := tx.Orders.UpdateStatus(ctx, 1, []domain.OrderStatus{domain.OrderStatusPending}, domain.OrderStatusCancelled)
			assert.True(t, ok)
			if err != nil {
				return err
			}
			return tx.Products.IncrementQuantity(ctx, 100, 2)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls Back On Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rental_orders SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = store.WithinTx(ctx, func(tx repository.Repos) error {
			ok, err := tx.Orders.UpdateStatus(ctx, 1, []domain.OrderStatus{domain.OrderStatusPending}, domain.OrderStatusCancelled)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrStateConflict
			}
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrStateConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
