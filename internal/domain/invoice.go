package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusSent InvoiceStatus = "SENT"
	InvoiceStatusPaid InvoiceStatus = "PAID"
)

// Invoice is a billing snapshot derived once from an order. Totals are
// copied verbatim at generation time and never resynced with later
// order edits.
type Invoice struct {
	ID            int32         `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	OrderID       int32         `json:"order_id"`
	CustomerID    int32         `json:"customer_id"`
	Status        InvoiceStatus `json:"status"`
	SubtotalCents int32         `json:"subtotal_cents"`
	TaxCents      int32         `json:"tax_cents"`
	DiscountCents int32         `json:"discount_cents"`
	TotalCents    int32         `json:"total_cents"`
	DueDate       time.Time     `json:"due_date"`
	GeneratedOn   time.Time     `json:"generated_on"`
}

type InvoiceItem struct {
	ID              int32  `json:"id"`
	InvoiceID       int32  `json:"invoice_id"`
	Description     string `json:"description"`
	Quantity        int32  `json:"quantity"`
	UnitPriceCents  int32  `json:"unit_price_cents"`
	TotalPriceCents int32  `json:"total_price_cents"`
}
