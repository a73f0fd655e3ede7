package repository

import (
	"context"
	"time"

	"leaseo-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int32) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	// IncrementQuantity restores aggregate stock. Applied exactly once
	// per item inside a cancellation or deletion transaction; callers
	// must not retry blindly.
	IncrementQuantity(ctx context.Context, productID int32, delta int32) error
	// DecrementQuantity takes stock at checkout. The write succeeds only
	// while quantity covers qty; returns false when stock is short, so
	// concurrent checkouts cannot oversell.
	DecrementQuantity(ctx context.Context, productID int32, qty int32) (bool, error)
}

type InventoryRepository interface {
	// SetLocation is an idempotent upsert. With a variant it targets the
	// single (product, variant) row; without one, every record for the
	// product. No version check; last write wins.
	SetLocation(ctx context.Context, productID int32, variantID *int32, location domain.InventoryLocation) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.RentalOrder) error
	GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error)
	Delete(ctx context.Context, id int32) error
	CreateItem(ctx context.Context, item *domain.RentalOrderItem) error
	ListItems(ctx context.Context, orderID int32) ([]domain.RentalOrderItem, error)
	// UpdateStatus performs a compare-and-swap: the write succeeds only
	// if the current status is one of from. Returns false when no row
	// matched, so concurrent transitions cannot be lost.
	UpdateStatus(ctx context.Context, orderID int32, from []domain.OrderStatus, to domain.OrderStatus) (bool, error)
	// CountItemsByVendor returns how many of the order's items reference
	// a product owned by the vendor. One is enough to authorize a
	// whole-order status mutation.
	CountItemsByVendor(ctx context.Context, orderID, vendorID int32) (int32, error)
	ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	VendorAnalytics(ctx context.Context, vendorID int32) (*domain.VendorAnalytics, error)
}

type PickupRepository interface {
	Create(ctx context.Context, pickup *domain.Pickup) error
	GetByID(ctx context.Context, id int32) (*domain.Pickup, error)
	ExistsByOrder(ctx context.Context, orderID int32) (bool, error)
	// MarkPickedUp sets PICKED_UP and the actual date only while the
	// pickup is still PENDING. Returns false if it already flipped.
	MarkPickedUp(ctx context.Context, id int32, pickedUpAt time.Time) (bool, error)
}

type ReturnRepository interface {
	Create(ctx context.Context, ret *domain.Return) error
	GetByID(ctx context.Context, id int32) (*domain.Return, error)
	ExistsByOrder(ctx context.Context, orderID int32) (bool, error)
	// Complete sets COMPLETED with condition and fees only while the
	// return is still PENDING. Returns false if it already flipped.
	Complete(ctx context.Context, id int32, returnedAt time.Time, condition string, damageFeeCents, lateFeeCents int32) (bool, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	CreateItem(ctx context.Context, item *domain.InvoiceItem) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	GetByOrderID(ctx context.Context, orderID int32) (*domain.Invoice, error)
	ListItems(ctx context.Context, invoiceID int32) ([]domain.InvoiceItem, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// Repos bundles every repository bound to one database handle, which is
// either the shared pool or a single open transaction.
type Repos struct {
	Users         UserRepository
	Products      ProductRepository
	Inventory     InventoryRepository
	Orders        OrderRepository
	Pickups       PickupRepository
	Returns       ReturnRepository
	Invoices      InvoiceRepository
	Notifications NotificationRepository
}

// Atomic is the unit-of-work boundary. Every multi-step mutation that
// touches an aggregate's status together with derived records (order +
// stock, pickup/return + inventory, invoice + items) runs inside one
// WithinTx call so the group commits or rolls back together.
type Atomic interface {
	WithinTx(ctx context.Context, fn func(tx Repos) error) error
}
