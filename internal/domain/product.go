package domain

// Product is a rentable item listed by exactly one vendor.
// Quantity is the aggregate stock count; it is decremented at checkout
// and restored when an order is cancelled or deleted pre-confirmation.
type Product struct {
	ID             int32  `json:"id"`
	VendorID       int32  `json:"vendor_id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	BasePriceCents int32  `json:"base_price_cents"`
	Quantity       int32  `json:"quantity"`
	Published      bool   `json:"published"`
	CreatedOn      string `json:"created_on"`
	UpdatedOn      string `json:"updated_on"`
}
