package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/logger"
	"leaseo-backend/internal/repository"
)

const invoiceDueDays = 7

type invoiceService struct {
	repos    repository.Repos
	atomic   repository.Atomic
	emailSvc EmailService
}

func NewInvoiceService(repos repository.Repos, atomic repository.Atomic, emailSvc EmailService) InvoiceService {
	return &invoiceService{
		repos:    repos,
		atomic:   atomic,
		emailSvc: emailSvc,
	}
}

// newInvoiceNumber is unique by construction: second-resolution
// timestamp plus a random suffix. The contract is uniqueness, not
// format.
func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// GenerateInvoice derives a one-way billing snapshot from an order.
// It has no effect on order status or inventory, and the snapshot
// never resyncs with later order edits.
func (s *invoiceService) GenerateInvoice(ctx context.Context, p domain.Principal, orderID int32) (*domain.Invoice, []domain.InvoiceItem, error) {
	ord, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if err := vendorOwnsOrder(ctx, s.repos.Orders, p, orderID); err != nil {
		return nil, nil, err
	}
	switch ord.Status {
	case domain.OrderStatusConfirmed, domain.OrderStatusInProgress, domain.OrderStatusCompleted:
	default:
		return nil, nil, fmt.Errorf("%w: order %s must be confirmed before invoicing", domain.ErrValidation, ord.OrderNumber)
	}

	// One invoice per order.
	if existing, err := s.repos.Invoices.GetByOrderID(ctx, orderID); err == nil {
		return nil, nil, fmt.Errorf("%w: order %s already has invoice %s", domain.ErrStateConflict, ord.OrderNumber, existing.InvoiceNumber)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}

	orderItems, err := s.repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	inv := &domain.Invoice{
		InvoiceNumber: newInvoiceNumber(now),
		OrderID:       ord.ID,
		CustomerID:    ord.CustomerID,
		Status:        domain.InvoiceStatusSent,
		SubtotalCents: ord.SubtotalCents,
		TaxCents:      ord.TaxCents,
		DiscountCents: ord.DiscountCents,
		TotalCents:    ord.TotalCents,
		DueDate:       now.AddDate(0, 0, invoiceDueDays),
		GeneratedOn:   now,
	}

	items := make([]domain.InvoiceItem, 0, len(orderItems))
	for _, oi := range orderItems {
		desc := fmt.Sprintf("Rental item %d", oi.ProductID)
		if product, err := s.repos.Products.GetByID(ctx, oi.ProductID); err == nil {
			desc = fmt.Sprintf("Rental of %s (SKU %s)", product.Name, product.SKU)
		}
		items = append(items, domain.InvoiceItem{
			Description:     desc,
			Quantity:        oi.Quantity,
			UnitPriceCents:  oi.UnitPriceCents,
			TotalPriceCents: oi.TotalPriceCents,
		})
	}

	// Invoice header and lines commit together.
	err = s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		if err := tx.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
			if err := tx.Invoices.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if customer, err := s.repos.Users.GetByID(ctx, ord.CustomerID); err == nil {
		if err := s.emailSvc.SendInvoiceNotification(ctx, customer.Email, inv.InvoiceNumber, inv.TotalCents, inv.DueDate); err != nil {
			logger.Error("invoice email failed", "invoice_number", inv.InvoiceNumber, "error", err)
		}
	}

	return inv, items, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, p domain.Principal, invoiceID int32) (*domain.Invoice, []domain.InvoiceItem, error) {
	inv, err := s.repos.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if inv.CustomerID != p.UserID {
			return nil, nil, domain.ErrUnauthorized
		}
	case domain.RoleVendor:
		if err := vendorOwnsOrder(ctx, s.repos.Orders, p, inv.OrderID); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, domain.ErrUnauthorized
	}
	items, err := s.repos.Invoices.ListItems(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}
