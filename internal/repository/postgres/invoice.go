package postgres

import (
	"context"
	"database/sql"
	"errors"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"
)

type invoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (invoice_number, order_id, customer_id, status, subtotal_cents, tax_cents, discount_cents, total_cents, due_date, generated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, inv.InvoiceNumber, inv.OrderID, inv.CustomerID, inv.Status, inv.SubtotalCents, inv.TaxCents, inv.DiscountCents, inv.TotalCents, inv.DueDate, inv.GeneratedOn).Scan(&inv.ID)
}

func (r *invoiceRepository) CreateItem(ctx context.Context, item *domain.InvoiceItem) error {
	query := `INSERT INTO invoice_items (invoice_id, description, quantity, unit_price_cents, total_price_cents)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.InvoiceID, item.Description, item.Quantity, item.UnitPriceCents, item.TotalPriceCents).Scan(&item.ID)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT id, invoice_number, order_id, customer_id, status, subtotal_cents, tax_cents, discount_cents, total_cents, due_date, generated_on
	          FROM invoices WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerID, &inv.Status, &inv.SubtotalCents, &inv.TaxCents, &inv.DiscountCents, &inv.TotalCents, &inv.DueDate, &inv.GeneratedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) GetByOrderID(ctx context.Context, orderID int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT id, invoice_number, order_id, customer_id, status, subtotal_cents, tax_cents, discount_cents, total_cents, due_date, generated_on
	          FROM invoices WHERE order_id = $1 ORDER BY generated_on DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerID, &inv.Status, &inv.SubtotalCents, &inv.TaxCents, &inv.DiscountCents, &inv.TotalCents, &inv.DueDate, &inv.GeneratedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID int32) ([]domain.InvoiceItem, error) {
	query := `SELECT id, invoice_id, description, quantity, unit_price_cents, total_price_cents FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InvoiceItem
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.UnitPriceCents, &item.TotalPriceCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
