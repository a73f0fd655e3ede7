package domain

import "time"

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
)

// RentalOrder is one rental transaction. Monetary fields are a snapshot
// taken at checkout; they are copied verbatim into invoices.
type RentalOrder struct {
	ID            int32       `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerID    int32       `json:"customer_id"`
	Status        OrderStatus `json:"status"`
	SubtotalCents int32       `json:"subtotal_cents"`
	TaxCents      int32       `json:"tax_cents"`
	DiscountCents int32       `json:"discount_cents"`
	TotalCents    int32       `json:"total_cents"`
	CreatedOn     time.Time   `json:"created_on"`
	UpdatedOn     time.Time   `json:"updated_on"`
}

// RentalOrderItem is a line within an order. Immutable once created.
type RentalOrderItem struct {
	ID              int32  `json:"id"`
	OrderID         int32  `json:"order_id"`
	ProductID       int32  `json:"product_id"`
	VariantID       *int32 `json:"variant_id,omitempty"`
	Quantity        int32  `json:"quantity"`
	UnitPriceCents  int32  `json:"unit_price_cents"`
	TotalPriceCents int32  `json:"total_price_cents"`
}

// VendorAnalytics summarizes the orders a vendor fulfills items for.
type VendorAnalytics struct {
	TotalOrders       int32            `json:"total_orders"`
	TotalRevenueCents int32            `json:"total_revenue_cents"`
	StatusCounts      map[string]int32 `json:"status_counts"`
}
