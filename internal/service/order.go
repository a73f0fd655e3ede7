package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/logger"
	"leaseo-backend/internal/repository"
)

type orderService struct {
	repos    repository.Repos
	atomic   repository.Atomic
	emailSvc EmailService
}

func NewOrderService(repos repository.Repos, atomic repository.Atomic, emailSvc EmailService) OrderService {
	return &orderService{
		repos:    repos,
		atomic:   atomic,
		emailSvc: emailSvc,
	}
}

// vendorOwnsOrder enforces the single-item-ownership-authorizes-order
// policy: an authenticated vendor owning at least one line item may
// mutate the whole order's status.
func vendorOwnsOrder(ctx context.Context, orders repository.OrderRepository, p domain.Principal, orderID int32) error {
	if p.Role != domain.RoleVendor {
		return fmt.Errorf("%w: vendor role required", domain.ErrUnauthorized)
	}
	count, err := orders.CountItemsByVendor(ctx, orderID, p.UserID)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: vendor %d owns no items in order %d", domain.ErrUnauthorized, p.UserID, orderID)
	}
	return nil
}

// newOrderNumber mirrors the invoice number shape: second-resolution
// timestamp plus a random suffix, unique by construction.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// CreateOrder is checkout: it snapshots prices from the catalog,
// takes stock for every line, and writes the order with its items in
// one transaction. The order starts at PENDING awaiting vendor
// confirmation.
func (s *orderService) CreateOrder(ctx context.Context, p domain.Principal, lines []NewOrderItem) (*domain.RentalOrder, []domain.RentalOrderItem, error) {
	if p.Role != domain.RoleCustomer {
		return nil, nil, fmt.Errorf("%w: customer role required", domain.ErrUnauthorized)
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: order needs at least one item", domain.ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: item quantity must be positive", domain.ErrValidation)
		}
	}

	now := time.Now()
	ord := &domain.RentalOrder{
		OrderNumber: newOrderNumber(now),
		CustomerID:  p.UserID,
		Status:      domain.OrderStatusPending,
	}
	var items []domain.RentalOrderItem

	err := s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		items = items[:0]
		ord.SubtotalCents = 0
		for _, line := range lines {
			product, err := tx.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.Published {
				return fmt.Errorf("%w: product %s is not available", domain.ErrValidation, product.SKU)
			}
			ok, err := tx.Products.DecrementQuantity(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: insufficient stock for product %s", domain.ErrStateConflict, product.SKU)
			}
			items = append(items, domain.RentalOrderItem{
				ProductID:       line.ProductID,
				VariantID:       line.VariantID,
				Quantity:        line.Quantity,
				UnitPriceCents:  product.BasePriceCents,
				TotalPriceCents: product.BasePriceCents * line.Quantity,
			})
			ord.SubtotalCents += product.BasePriceCents * line.Quantity
		}
		ord.TotalCents = ord.SubtotalCents + ord.TaxCents - ord.DiscountCents

		if err := tx.Orders.Create(ctx, ord); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = ord.ID
			if err := tx.Orders.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifyCustomer(ctx, ord, "Order Placed",
		fmt.Sprintf("Your order %s has been placed", ord.OrderNumber))
	return ord, items, nil
}

func (s *orderService) ConfirmOrder(ctx context.Context, p domain.Principal, orderID int32) (*domain.RentalOrder, error) {
	ord, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := vendorOwnsOrder(ctx, s.repos.Orders, p, orderID); err != nil {
		return nil, err
	}

	// Confirmation also creates the PENDING pickup record the
	// fulfillment workflow later flips to PICKED_UP.
	err = s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		ok, err := tx.Orders.UpdateStatus(ctx, orderID, []domain.OrderStatus{domain.OrderStatusDraft, domain.OrderStatusPending}, domain.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s cannot be confirmed from status %s", domain.ErrStateConflict, ord.OrderNumber, ord.Status)
		}
		return tx.Pickups.Create(ctx, &domain.Pickup{
			OrderID: orderID,
			Status:  domain.PickupStatusPending,
		})
	})
	if err != nil {
		return nil, err
	}
	ord.Status = domain.OrderStatusConfirmed

	s.notifyCustomer(ctx, ord, "Order Confirmed",
		fmt.Sprintf("Your order %s has been confirmed", ord.OrderNumber))
	return ord, nil
}

func (s *orderService) CancelOrder(ctx context.Context, p domain.Principal, orderID int32) (*domain.RentalOrder, error) {
	ord, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := vendorOwnsOrder(ctx, s.repos.Orders, p, orderID); err != nil {
		return nil, err
	}

	// Status write and per-item stock restoration commit together;
	// a partial restore is never observable.
	err = s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		ok, err := tx.Orders.UpdateStatus(ctx, orderID, []domain.OrderStatus{domain.OrderStatusDraft, domain.OrderStatusPending}, domain.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s cannot be cancelled from status %s", domain.ErrStateConflict, ord.OrderNumber, ord.Status)
		}
		items, err := tx.Orders.ListItems(ctx, orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Products.IncrementQuantity(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ord.Status = domain.OrderStatusCancelled

	s.notifyCustomer(ctx, ord, "Order Cancelled",
		fmt.Sprintf("Your order %s has been cancelled", ord.OrderNumber))
	return ord, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, p domain.Principal, orderID int32) error {
	ord, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if p.Role != domain.RoleCustomer || ord.CustomerID != p.UserID {
		return fmt.Errorf("%w: only the owning customer may delete an order", domain.ErrUnauthorized)
	}

	return s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		// Custody checks run inside the transaction so a pickup created
		// concurrently with the delete is never orphaned.
		hasPickup, err := tx.Pickups.ExistsByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		hasReturn, err := tx.Returns.ExistsByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if hasPickup || hasReturn {
			return fmt.Errorf("%w: order %s has pickup or return records", domain.ErrStateConflict, ord.OrderNumber)
		}

		// Cancelled orders already restored stock; only pre-confirmation
		// deletes restore here.
		if ord.Status == domain.OrderStatusDraft || ord.Status == domain.OrderStatusPending {
			items, err := tx.Orders.ListItems(ctx, orderID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := tx.Products.IncrementQuantity(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return tx.Orders.Delete(ctx, orderID)
	})
}

func (s *orderService) GetOrder(ctx context.Context, p domain.Principal, orderID int32) (*domain.RentalOrder, []domain.RentalOrderItem, error) {
	ord, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if ord.CustomerID != p.UserID {
			return nil, nil, domain.ErrUnauthorized
		}
	case domain.RoleVendor:
		if err := vendorOwnsOrder(ctx, s.repos.Orders, p, orderID); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, domain.ErrUnauthorized
	}
	items, err := s.repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return ord, items, nil
}

func (s *orderService) ListVendorOrders(ctx context.Context, p domain.Principal, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	if p.Role != domain.RoleVendor {
		return nil, 0, fmt.Errorf("%w: vendor role required", domain.ErrUnauthorized)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repos.Orders.ListByVendor(ctx, p.UserID, status, page, pageSize)
}

func (s *orderService) GetVendorAnalytics(ctx context.Context, p domain.Principal) (*domain.VendorAnalytics, error) {
	if p.Role != domain.RoleVendor {
		return nil, fmt.Errorf("%w: vendor role required", domain.ErrUnauthorized)
	}
	return s.repos.Orders.VendorAnalytics(ctx, p.UserID)
}

// notifyCustomer emails and records an in-app notification. Failures
// are logged and never fail the mutation that triggered them.
func (s *orderService) notifyCustomer(ctx context.Context, ord *domain.RentalOrder, title, message string) {
	customer, err := s.repos.Users.GetByID(ctx, ord.CustomerID)
	if err != nil {
		logger.Warn("customer lookup for notification failed", "order_id", ord.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendOrderStatusNotification(ctx, customer.Email, ord.OrderNumber, ord.Status); err != nil {
		logger.Error("order status email failed", "order_id", ord.ID, "error", err)
	}
	note := &domain.Notification{
		UserID:  customer.ID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":     "ORDER_STATUS",
			"order_id": fmt.Sprintf("%d", ord.ID),
			"status":   string(ord.Status),
		},
	}
	if err := s.repos.Notifications.Create(ctx, note); err != nil {
		logger.Error("notification create failed", "order_id", ord.ID, "error", err)
	}
}
