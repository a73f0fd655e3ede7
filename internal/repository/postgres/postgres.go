package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository
// can run against the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repos
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		Repos: newRepos(db),
	}
}

func newRepos(db DBTX) repository.Repos {
	return repository.Repos{
		Users:         NewUserRepository(db),
		Products:      NewProductRepository(db),
		Inventory:     NewInventoryRepository(db),
		Orders:        NewOrderRepository(db),
		Pickups:       NewPickupRepository(db),
		Returns:       NewReturnRepository(db),
		Invoices:      NewInvoiceRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// WithinTx runs fn with repositories bound to a single transaction.
// Any error (or panic) rolls the whole group back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", domain.ErrPersistence, err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(newRepos(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx: %v", domain.ErrPersistence, err)
	}
	return nil
}
