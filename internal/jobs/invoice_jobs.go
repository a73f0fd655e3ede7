package jobs

import (
	"context"
	"time"

	"leaseo-backend/internal/logger"
)

// SendInvoiceDueReminders emails customers whose invoices are past due and
// still unpaid.
func (jr *JobRunner) SendInvoiceDueReminders() {
	jr.runWithRecovery("SendInvoiceDueReminders", func() {
		ctx := context.Background()

		query := `
			SELECT i.id, i.invoice_number, i.total_cents, i.due_date, u.email
			FROM invoices i
			JOIN users u ON u.id = i.customer_id
			WHERE i.status = 'SENT'
			  AND i.due_date < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to query overdue invoices", "error", err)
			return
		}
		defer rows.Close()

		type dueInvoice struct {
			ID            int32
			InvoiceNumber string
			TotalCents    int32
			DueDate       time.Time
			Email         string
		}

		var due []dueInvoice
		for rows.Next() {
			var inv dueInvoice
			if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.TotalCents, &inv.DueDate, &inv.Email); err != nil {
				logger.Error("Failed to scan overdue invoice", "error", err)
				continue
			}
			due = append(due, inv)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue invoices", "error", err)
			return
		}

		sent := 0
		for _, inv := range due {
			if err := jr.emailSvc.SendInvoiceDueReminder(ctx, inv.Email, inv.InvoiceNumber, inv.TotalCents, inv.DueDate); err != nil {
				logger.Error("Failed to send invoice due reminder",
					"invoice_id", inv.ID,
					"invoice_number", inv.InvoiceNumber,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Processed overdue invoices", "found", len(due), "reminders_sent", sent)
	})
}
