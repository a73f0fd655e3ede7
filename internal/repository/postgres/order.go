package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.RentalOrder) error {
	query := `INSERT INTO rental_orders (order_number, customer_id, status, subtotal_cents, tax_cents, discount_cents, total_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, o.OrderNumber, o.CustomerID, o.Status, o.SubtotalCents, o.TaxCents, o.DiscountCents, o.TotalCents, now, now).Scan(&o.ID); err != nil {
		return err
	}
	o.CreatedOn = now
	o.UpdatedOn = now
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error) {
	o := &domain.RentalOrder{}
	query := `SELECT id, order_number, customer_id, status, subtotal_cents, tax_cents, discount_cents, total_cents, created_on, updated_on
	          FROM rental_orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.SubtotalCents, &o.TaxCents, &o.DiscountCents, &o.TotalCents, &o.CreatedOn, &o.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int32) error {
	// Items cascade via FK.
	_, err := r.db.ExecContext(ctx, `DELETE FROM rental_orders WHERE id = $1`, id)
	return err
}

func (r *orderRepository) CreateItem(ctx context.Context, item *domain.RentalOrderItem) error {
	query := `INSERT INTO rental_order_items (order_id, product_id, variant_id, quantity, unit_price_cents, total_price_cents)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.OrderID, item.ProductID, item.VariantID, item.Quantity, item.UnitPriceCents, item.TotalPriceCents).Scan(&item.ID)
}

func (r *orderRepository) ListItems(ctx context.Context, orderID int32) ([]domain.RentalOrderItem, error) {
	query := `SELECT id, order_id, product_id, variant_id, quantity, unit_price_cents, total_price_cents
	          FROM rental_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalOrderItem
	for rows.Next() {
		var item domain.RentalOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.VariantID, &item.Quantity, &item.UnitPriceCents, &item.TotalPriceCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int32, from []domain.OrderStatus, to domain.OrderStatus) (bool, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}
	query := `UPDATE rental_orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = ANY($4)`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), orderID, pq.Array(states))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *orderRepository) CountItemsByVendor(ctx context.Context, orderID, vendorID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM rental_order_items i
	          JOIN products p ON p.id = i.product_id
	          WHERE i.order_id = $1 AND p.vendor_id = $2`
	err := r.db.QueryRowContext(ctx, query, orderID, vendorID).Scan(&count)
	return count, err
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM rental_orders o
	         WHERE EXISTS (
	             SELECT 1 FROM rental_order_items i
	             JOIN products p ON p.id = i.product_id
	             WHERE i.order_id = o.id AND p.vendor_id = $1)`
	args := []interface{}{vendorID}
	if status != "" {
		base += " AND o.status = $2"
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT o.id, o.order_number, o.customer_id, o.status, o.subtotal_cents, o.tax_cents, o.discount_cents, o.total_cents, o.created_on, o.updated_on ` +
		base + fmt.Sprintf(" ORDER BY o.created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.RentalOrder
	for rows.Next() {
		var o domain.RentalOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.SubtotalCents, &o.TaxCents, &o.DiscountCents, &o.TotalCents, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) VendorAnalytics(ctx context.Context, vendorID int32) (*domain.VendorAnalytics, error) {
	a := &domain.VendorAnalytics{
		StatusCounts: make(map[string]int32),
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.status, count(*)
		FROM rental_orders o
		WHERE EXISTS (
		    SELECT 1 FROM rental_order_items i
		    JOIN products p ON p.id = i.product_id
		    WHERE i.order_id = o.id AND p.vendor_id = $1)
		GROUP BY o.status`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int32
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		a.StatusCounts[status] = count
		a.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Revenue counts only the vendor's own lines, across orders that
	// reached CONFIRMED or beyond.
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(i.total_price_cents), 0)
		FROM rental_order_items i
		JOIN products p ON p.id = i.product_id
		JOIN rental_orders o ON o.id = i.order_id
		WHERE p.vendor_id = $1 AND o.status IN ('CONFIRMED', 'IN_PROGRESS', 'COMPLETED')`, vendorID).Scan(&a.TotalRevenueCents)
	if err != nil {
		return nil, err
	}

	return a, nil
}
