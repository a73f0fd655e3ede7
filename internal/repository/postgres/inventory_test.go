package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository/postgres"
)

func TestInventoryRepository_SetLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewInventoryRepository(db)
	ctx := context.Background()

	t.Run("With Variant Upserts Single Row", func(t *testing.T) {
		variantID := int32(42)
		mock.ExpectExec("INSERT INTO inventory_records (.+) ON CONFLICT \\(product_id, variant_id\\) DO UPDATE").
			WithArgs(int32(100), variantID, domain.LocationWithCustomer, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetLocation(ctx, 100, &variantID, domain.LocationWithCustomer)
		assert.NoError(t, err)
	})

	t.Run("Without Variant Moves All Product Rows", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory_records SET location = \\$1").
			WithArgs(domain.LocationInWarehouse, sqlmock.AnyArg(), int32(100)).
			WillReturnResult(sqlmock.NewResult(0, 3))

		err := repo.SetLocation(ctx, 100, nil, domain.LocationInWarehouse)
		assert.NoError(t, err)
	})
}
