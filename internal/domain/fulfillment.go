package domain

import "time"

type PickupStatus string

const (
	PickupStatusPending  PickupStatus = "PENDING"
	PickupStatusPickedUp PickupStatus = "PICKED_UP"
)

type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "PENDING"
	ReturnStatusCompleted ReturnStatus = "COMPLETED"
)

// Pickup is the physical collection event tied 1:1 to an order.
// Created when the order is confirmed, mutated once to PICKED_UP.
type Pickup struct {
	ID               int32        `json:"id"`
	OrderID          int32        `json:"order_id"`
	Status           PickupStatus `json:"status"`
	ActualPickupDate *time.Time   `json:"actual_pickup_date,omitempty"`
	CreatedOn        time.Time    `json:"created_on"`
}

// Return is the physical return event tied 1:1 to an order.
// Created at pickup confirmation, mutated once to COMPLETED.
// Fees are caller-supplied and validated only against range limits.
type Return struct {
	ID                  int32        `json:"id"`
	OrderID             int32        `json:"order_id"`
	Status              ReturnStatus `json:"status"`
	ScheduledReturnDate *time.Time   `json:"scheduled_return_date,omitempty"`
	ActualReturnDate    *time.Time   `json:"actual_return_date,omitempty"`
	Condition           string       `json:"condition"`
	DamageFeeCents      int32        `json:"damage_fee_cents"`
	LateFeeCents        int32        `json:"late_fee_cents"`
	CreatedOn           time.Time    `json:"created_on"`
}
