package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, vendor_id, name, sku, base_price_cents, quantity, published, created_on, updated_on FROM products WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.VendorID, &p.Name, &p.SKU, &p.BasePriceCents, &p.Quantity, &p.Published, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	p.UpdatedOn = updatedOn.Format("2006-01-02")
	return p, nil
}

func (r *productRepository) IncrementQuantity(ctx context.Context, productID int32, delta int32) error {
	query := `UPDATE products SET quantity = quantity + $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, delta, time.Now(), productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}
	return nil
}

// DecrementQuantity guards the write with the remaining stock: the row
// only updates while quantity covers qty, so concurrent checkouts
// cannot drive stock negative.
func (r *productRepository) DecrementQuantity(ctx context.Context, productID int32, qty int32) (bool, error) {
	query := `UPDATE products SET quantity = quantity - $1, updated_on = $2 WHERE id = $3 AND quantity >= $1`
	res, err := r.db.ExecContext(ctx, query, qty, time.Now(), productID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
