package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"
)

type pickupRepository struct {
	db DBTX
}

func NewPickupRepository(db DBTX) repository.PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) Create(ctx context.Context, p *domain.Pickup) error {
	query := `INSERT INTO pickups (order_id, status, created_on) VALUES ($1, $2, $3) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, p.OrderID, p.Status, now).Scan(&p.ID); err != nil {
		return err
	}
	p.CreatedOn = now
	return nil
}

func (r *pickupRepository) GetByID(ctx context.Context, id int32) (*domain.Pickup, error) {
	p := &domain.Pickup{}
	query := `SELECT id, order_id, status, actual_pickup_date, created_on FROM pickups WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.OrderID, &p.Status, &p.ActualPickupDate, &p.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pickupRepository) ExistsByOrder(ctx context.Context, orderID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pickups WHERE order_id = $1)`, orderID).Scan(&exists)
	return exists, err
}

func (r *pickupRepository) MarkPickedUp(ctx context.Context, id int32, pickedUpAt time.Time) (bool, error) {
	query := `UPDATE pickups SET status = $1, actual_pickup_date = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, domain.PickupStatusPickedUp, pickedUpAt, id, domain.PickupStatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

type returnRepository struct {
	db DBTX
}

func NewReturnRepository(db DBTX) repository.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *domain.Return) error {
	query := `INSERT INTO returns (order_id, status, scheduled_return_date, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, ret.OrderID, ret.Status, ret.ScheduledReturnDate, now).Scan(&ret.ID); err != nil {
		return err
	}
	ret.CreatedOn = now
	return nil
}

func (r *returnRepository) GetByID(ctx context.Context, id int32) (*domain.Return, error) {
	ret := &domain.Return{}
	query := `SELECT id, order_id, status, scheduled_return_date, actual_return_date, COALESCE(condition, ''), damage_fee_cents, late_fee_cents, created_on
	          FROM returns WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ret.ID, &ret.OrderID, &ret.Status, &ret.ScheduledReturnDate, &ret.ActualReturnDate, &ret.Condition, &ret.DamageFeeCents, &ret.LateFeeCents, &ret.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *returnRepository) ExistsByOrder(ctx context.Context, orderID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM returns WHERE order_id = $1)`, orderID).Scan(&exists)
	return exists, err
}

func (r *returnRepository) Complete(ctx context.Context, id int32, returnedAt time.Time, condition string, damageFeeCents, lateFeeCents int32) (bool, error) {
	query := `UPDATE returns SET status = $1, actual_return_date = $2, condition = $3, damage_fee_cents = $4, late_fee_cents = $5
	          WHERE id = $6 AND status = $7`
	res, err := r.db.ExecContext(ctx, query, domain.ReturnStatusCompleted, returnedAt, condition, damageFeeCents, lateFeeCents, id, domain.ReturnStatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
