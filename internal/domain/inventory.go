package domain

type InventoryLocation string

const (
	LocationInWarehouse  InventoryLocation = "IN_WAREHOUSE"
	LocationWithCustomer InventoryLocation = "WITH_CUSTOMER"
)

// InventoryRecord tracks physical custody for one (product, variant)
// pair. Location reflects the most recent completed pickup or return
// for that pair and is stale until that event completes.
type InventoryRecord struct {
	ID        int32             `json:"id"`
	ProductID int32             `json:"product_id"`
	VariantID *int32            `json:"variant_id,omitempty"`
	Location  InventoryLocation `json:"location"`
	UpdatedOn string            `json:"updated_on"`
}
