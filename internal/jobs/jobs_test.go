package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leaseo-backend/internal/config"
	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/jobs"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	args := m.Called(ctx, email, name, token)
	return args.Error(0)
}
func (m *mockEmailService) SendOrderStatusNotification(ctx context.Context, email, orderNumber string, status domain.OrderStatus) error {
	args := m.Called(ctx, email, orderNumber, status)
	return args.Error(0)
}
func (m *mockEmailService) SendInvoiceNotification(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	args := m.Called(ctx, email, invoiceNumber, totalCents, dueDate)
	return args.Error(0)
}
func (m *mockEmailService) SendInvoiceDueReminder(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	args := m.Called(ctx, email, invoiceNumber, totalCents, dueDate)
	return args.Error(0)
}
func (m *mockEmailService) SendReturnOverdueReminder(ctx context.Context, email, orderNumber string, scheduledDate time.Time) error {
	args := m.Called(ctx, email, orderNumber, scheduledDate)
	return args.Error(0)
}

func TestJobRunner_MarkOverdueReturns(t *testing.T) {
	t.Run("Overdue Return Triggers Reminder", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		scheduled := time.Now().UTC().AddDate(0, 0, -2)
		rows := sqlmock.NewRows([]string{"id", "order_number", "scheduled_return_date", "email"}).
			AddRow(int32(3), "ORD-3003", scheduled, "customer@test.com")
		dbMock.ExpectQuery("SELECT r\\.id, o\\.order_number, r\\.scheduled_return_date, u\\.email").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		emailSvc := new(mockEmailService)
		emailSvc.On("SendReturnOverdueReminder", mock.Anything, "customer@test.com", "ORD-3003", scheduled).Return(nil)

		runner := jobs.NewJobRunner(db, emailSvc, &config.Config{})
		runner.MarkOverdueReturns()

		emailSvc.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("No Overdue Returns Sends Nothing", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		dbMock.ExpectQuery("SELECT r\\.id, o\\.order_number").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "scheduled_return_date", "email"}))

		emailSvc := new(mockEmailService)
		runner := jobs.NewJobRunner(db, emailSvc, &config.Config{})
		runner.MarkOverdueReturns()

		emailSvc.AssertNotCalled(t, "SendReturnOverdueReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestJobRunner_SendInvoiceDueReminders(t *testing.T) {
	t.Run("Past Due Invoice Triggers Reminder", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		dueDate := time.Now().UTC().AddDate(0, 0, -1)
		rows := sqlmock.NewRows([]string{"id", "invoice_number", "total_cents", "due_date", "email"}).
			AddRow(int32(9), "INV-20260101000000-ABCD1234", int32(45000), dueDate, "customer@test.com")
		dbMock.ExpectQuery("SELECT i\\.id, i\\.invoice_number, i\\.total_cents, i\\.due_date, u\\.email").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		emailSvc := new(mockEmailService)
		emailSvc.On("SendInvoiceDueReminder", mock.Anything, "customer@test.com", "INV-20260101000000-ABCD1234", int32(45000), dueDate).Return(nil)

		runner := jobs.NewJobRunner(db, emailSvc, &config.Config{})
		runner.SendInvoiceDueReminders()

		emailSvc.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("Email Failure Does Not Stop The Batch", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		dueDate := time.Now().UTC().AddDate(0, 0, -1)
		rows := sqlmock.NewRows([]string{"id", "invoice_number", "total_cents", "due_date", "email"}).
			AddRow(int32(1), "INV-A", int32(100), dueDate, "first@test.com").
			AddRow(int32(2), "INV-B", int32(200), dueDate, "second@test.com")
		dbMock.ExpectQuery("SELECT i\\.id, i\\.invoice_number").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		emailSvc := new(mockEmailService)
		emailSvc.On("SendInvoiceDueReminder", mock.Anything, "first@test.com", "INV-A", int32(100), dueDate).Return(assert.AnError)
		emailSvc.On("SendInvoiceDueReminder", mock.Anything, "second@test.com", "INV-B", int32(200), dueDate).Return(nil)

		runner := jobs.NewJobRunner(db, emailSvc, &config.Config{})
		runner.SendInvoiceDueReminders()

		emailSvc.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
