package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"leaseo-backend/internal/domain"
)

// sendgridEmailService is the SaaS alternative to the SMTP relay,
// selected with email.provider = "sendgrid" in config.
type sendgridEmailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendgridEmailService(apiKey, from, fromName string) EmailService {
	return &sendgridEmailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *sendgridEmailService) send(to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)
	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid send: %v", domain.ErrExternalService, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid rejected message: status %d", domain.ErrExternalService, resp.StatusCode)
	}
	return nil
}

func (s *sendgridEmailService) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	body := fmt.Sprintf("Hello %s,\n\nWelcome to Leaseo. Please verify your account using the following token:\n\n%s\n\nBest regards,\nThe Leaseo Team", name, token)
	return s.send(email, "Verify your Leaseo account", body)
}

func (s *sendgridEmailService) SendOrderStatusNotification(ctx context.Context, email, orderNumber string, status domain.OrderStatus) error {
	body := fmt.Sprintf("Hello,\n\nYour rental order %s is now %s.\n\nBest regards,\nThe Leaseo Team", orderNumber, status)
	return s.send(email, fmt.Sprintf("Order %s update", orderNumber), body)
}

func (s *sendgridEmailService) SendInvoiceNotification(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nInvoice %s for $%.2f has been issued. Payment is due by %s.\n\nBest regards,\nThe Leaseo Team",
		invoiceNumber, float64(totalCents)/100, dueDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Invoice %s", invoiceNumber), body)
}

func (s *sendgridEmailService) SendInvoiceDueReminder(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nInvoice %s for $%.2f was due on %s and is still unpaid.\n\nBest regards,\nThe Leaseo Team",
		invoiceNumber, float64(totalCents)/100, dueDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Invoice %s is overdue", invoiceNumber), body)
}

func (s *sendgridEmailService) SendReturnOverdueReminder(ctx context.Context, email, orderNumber string, scheduledDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nThe rental items on order %s were due back on %s. Please arrange the return as soon as possible.\n\nBest regards,\nThe Leaseo Team",
		orderNumber, scheduledDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Return overdue for order %s", orderNumber), body)
}
