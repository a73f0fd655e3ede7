package service

import (
	"context"
	"fmt"
	"time"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/logger"
	"leaseo-backend/internal/repository"
)

// FeeValidator checks caller-supplied return fees before they are
// stored. The default enforces range limits only; deployments can
// plug in an approval step without touching the workflow.
type FeeValidator func(damageFeeCents, lateFeeCents int32) error

type fulfillmentService struct {
	repos            repository.Repos
	atomic           repository.Atomic
	emailSvc         EmailService
	rentalPeriodDays int32
	validateFees     FeeValidator
}

func NewFulfillmentService(repos repository.Repos, atomic repository.Atomic, emailSvc EmailService, maxFeeCents, rentalPeriodDays int32) FulfillmentService {
	return &fulfillmentService{
		repos:            repos,
		atomic:           atomic,
		emailSvc:         emailSvc,
		rentalPeriodDays: rentalPeriodDays,
		validateFees: func(damageFeeCents, lateFeeCents int32) error {
			if damageFeeCents < 0 || lateFeeCents < 0 {
				return fmt.Errorf("%w: fees must not be negative", domain.ErrValidation)
			}
			if damageFeeCents > maxFeeCents || lateFeeCents > maxFeeCents {
				return fmt.Errorf("%w: fee exceeds limit of %d cents", domain.ErrValidation, maxFeeCents)
			}
			return nil
		},
	}
}

func (s *fulfillmentService) ConfirmPickup(ctx context.Context, p domain.Principal, pickupID int32) (*domain.Pickup, error) {
	pu, err := s.repos.Pickups.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	ord, err := s.repos.Orders.GetByID(ctx, pu.OrderID)
	if err != nil {
		return nil, err
	}
	if err := vendorOwnsOrder(ctx, s.repos.Orders, p, pu.OrderID); err != nil {
		return nil, err
	}
	if pu.Status == domain.PickupStatusPickedUp {
		return nil, fmt.Errorf("%w: pickup %d already confirmed", domain.ErrStateConflict, pickupID)
	}

	items, err := s.repos.Orders.ListItems(ctx, pu.OrderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// Pickup status, order transition, inventory relocation and the
	// pending return record all commit together: a crash mid-fan-out
	// cannot leave inventory disagreeing with pickup status.
	err = s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		ok, err := tx.Pickups.MarkPickedUp(ctx, pickupID, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: pickup %d already confirmed", domain.ErrStateConflict, pickupID)
		}
		ok, err = tx.Orders.UpdateStatus(ctx, pu.OrderID, []domain.OrderStatus{domain.OrderStatusConfirmed}, domain.OrderStatusInProgress)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s is not confirmed", domain.ErrStateConflict, ord.OrderNumber)
		}
		for _, item := range items {
			if err := tx.Inventory.SetLocation(ctx, item.ProductID, item.VariantID, domain.LocationWithCustomer); err != nil {
				return err
			}
		}
		// The rental term starts at pickup; the overdue job keys off
		// the scheduled date recorded here.
		due := now.AddDate(0, 0, int(s.rentalPeriodDays))
		return tx.Returns.Create(ctx, &domain.Return{
			OrderID:             pu.OrderID,
			Status:              domain.ReturnStatusPending,
			ScheduledReturnDate: &due,
		})
	})
	if err != nil {
		return nil, err
	}

	pu.Status = domain.PickupStatusPickedUp
	pu.ActualPickupDate = &now

	ord.Status = domain.OrderStatusInProgress
	s.notifyCustomer(ctx, ord, "Pickup Confirmed",
		fmt.Sprintf("Your rental order %s has been picked up", ord.OrderNumber))
	return pu, nil
}

func (s *fulfillmentService) ProcessReturn(ctx context.Context, p domain.Principal, returnID int32, condition string, damageFeeCents, lateFeeCents int32) (*domain.Return, error) {
	ret, err := s.repos.Returns.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	ord, err := s.repos.Orders.GetByID(ctx, ret.OrderID)
	if err != nil {
		return nil, err
	}
	if err := vendorOwnsOrder(ctx, s.repos.Orders, p, ret.OrderID); err != nil {
		return nil, err
	}
	if ret.Status == domain.ReturnStatusCompleted {
		return nil, fmt.Errorf("%w: return %d already completed", domain.ErrStateConflict, returnID)
	}
	if err := s.validateFees(damageFeeCents, lateFeeCents); err != nil {
		return nil, err
	}

	items, err := s.repos.Orders.ListItems(ctx, ret.OrderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.atomic.WithinTx(ctx, func(tx repository.Repos) error {
		ok, err := tx.Returns.Complete(ctx, returnID, now, condition, damageFeeCents, lateFeeCents)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: return %d already completed", domain.ErrStateConflict, returnID)
		}
		ok, err = tx.Orders.UpdateStatus(ctx, ret.OrderID, []domain.OrderStatus{domain.OrderStatusInProgress}, domain.OrderStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: order %s is not in progress", domain.ErrStateConflict, ord.OrderNumber)
		}
		for _, item := range items {
			if err := tx.Inventory.SetLocation(ctx, item.ProductID, item.VariantID, domain.LocationInWarehouse); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ret.Status = domain.ReturnStatusCompleted
	ret.ActualReturnDate = &now
	ret.Condition = condition
	ret.DamageFeeCents = damageFeeCents
	ret.LateFeeCents = lateFeeCents

	ord.Status = domain.OrderStatusCompleted
	s.notifyCustomer(ctx, ord, "Return Completed",
		fmt.Sprintf("Your rental order %s has been returned", ord.OrderNumber))
	return ret, nil
}

func (s *fulfillmentService) notifyCustomer(ctx context.Context, ord *domain.RentalOrder, title, message string) {
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
			"type":     "FULFILLMENT",
			"order_id": fmt.Sprintf("%d", ord.ID),
			"status":   string(ord.Status),
		},
	}
	if err := s.repos.Notifications.Create(ctx, note); err != nil {
		logger.Error("notification create failed", "order_id", ord.ID, "error", err)
	}
}
