package jobs

import (
	"context"
	"time"

	"leaseo-backend/internal/logger"
)

// MarkOverdueReturns finds pending returns whose scheduled date has passed and
// emails the customer a reminder for each.
func (jr *JobRunner) MarkOverdueReturns() {
	jr.runWithRecovery("MarkOverdueReturns", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, o.order_number, r.scheduled_return_date, u.email
			FROM returns r
			JOIN rental_orders o ON o.id = r.order_id
			JOIN users u ON u.id = o.customer_id
			WHERE r.status = 'PENDING'
			  AND r.scheduled_return_date < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to query overdue returns", "error", err)
			return
		}
		defer rows.Close()

		type overdueReturn struct {
			ID            int32
			OrderNumber   string
			ScheduledDate time.Time
			Email         string
		}

		var overdue []overdueReturn
		for rows.Next() {
			var r overdueReturn
			if err := rows.Scan(&r.ID, &r.OrderNumber, &r.ScheduledDate, &r.Email); err != nil {
				logger.Error("Failed to scan overdue return", "error", err)
				continue
			}
			overdue = append(overdue, r)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue returns", "error", err)
			return
		}

		sent := 0
		for _, r := range overdue {
			if err := jr.emailSvc.SendReturnOverdueReminder(ctx, r.Email, r.OrderNumber, r.ScheduledDate); err != nil {
				logger.Error("Failed to send overdue return reminder",
					"return_id", r.ID,
					"order_number", r.OrderNumber,
					"error", err)
				continue
			}
			sent++
			logger.Debug("Sent overdue return reminder",
				"return_id", r.ID,
				"order_number", r.OrderNumber,
				"scheduled_return_date", r.ScheduledDate)
		}

		logger.Info("Processed overdue returns", "found", len(overdue), "reminders_sent", sent)
	})
}
