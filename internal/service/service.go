package service

import (
	"context"
	"time"

	"leaseo-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
}

// NewOrderItem is one requested line at checkout; prices come from the
// catalog, never from the caller.
type NewOrderItem struct {
	ProductID int32
	VariantID *int32
	Quantity  int32
}

type OrderService interface {
	CreateOrder(ctx context.Context, p domain.Principal, lines []NewOrderItem) (*domain.RentalOrder, []domain.RentalOrderItem, error)
	ConfirmOrder(ctx context.Context, p domain.Principal, orderID int32) (*domain.RentalOrder, error)
	CancelOrder(ctx context.Context, p domain.Principal, orderID int32) (*domain.RentalOrder, error)
	DeleteOrder(ctx context.Context, p domain.Principal, orderID int32) error
	GetOrder(ctx context.Context, p domain.Principal, orderID int32) (*domain.RentalOrder, []domain.RentalOrderItem, error)
	ListVendorOrders(ctx context.Context, p domain.Principal, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error)
	GetVendorAnalytics(ctx context.Context, p domain.Principal) (*domain.VendorAnalytics, error)
}

type FulfillmentService interface {
	ConfirmPickup(ctx context.Context, p domain.Principal, pickupID int32) (*domain.Pickup, error)
	ProcessReturn(ctx context.Context, p domain.Principal, returnID int32, condition string, damageFeeCents, lateFeeCents int32) (*domain.Return, error)
}

type InvoiceService interface {
	GenerateInvoice(ctx context.Context, p domain.Principal, orderID int32) (*domain.Invoice, []domain.InvoiceItem, error)
	GetInvoice(ctx context.Context, p domain.Principal, invoiceID int32) (*domain.Invoice, []domain.InvoiceItem, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendVerificationEmail(ctx context.Context, email, name, token string) error

	// Order lifecycle notifications
	SendOrderStatusNotification(ctx context.Context, email, orderNumber string, status domain.OrderStatus) error

	// Invoice notifications
	SendInvoiceNotification(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error
	SendInvoiceDueReminder(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error

	// Fulfillment notifications
	SendReturnOverdueReminder(ctx context.Context, email, orderNumber string, scheduledDate time.Time) error
}
