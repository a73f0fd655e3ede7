package postgres

import (
	"context"
	"time"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"
)

type inventoryRepository struct {
	db DBTX
}

func NewInventoryRepository(db DBTX) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

// SetLocation upserts custody state. With a variant it inserts or
// updates the single (product, variant) row; without one it moves every
// record for the product. Both paths are idempotent.
func (r *inventoryRepository) SetLocation(ctx context.Context, productID int32, variantID *int32, location domain.InventoryLocation) error {
	if variantID != nil {
		query := `INSERT INTO inventory_records (product_id, variant_id, location, updated_on)
		          VALUES ($1, $2, $3, $4)
		          ON CONFLICT (product_id, variant_id) DO UPDATE SET location = $3, updated_on = $4`
		_, err := r.db.ExecContext(ctx, query, productID, *variantID, location, time.Now())
		return err
	}
	query := `UPDATE inventory_records SET location = $1, updated_on = $2 WHERE product_id = $3`
	_, err := r.db.ExecContext(ctx, query, location, time.Now(), productID)
	return err
}
