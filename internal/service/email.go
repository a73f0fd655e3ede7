package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"leaseo-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailService returns the SMTP-relay email sender.
func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: smtp send: %v", domain.ErrExternalService, err)
	}
	return nil
}

func (s *emailService) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	body := fmt.Sprintf("Hello %s,\n\nWelcome to Leaseo. Please verify your account using the following token:\n\n%s\n\nBest regards,\nThe Leaseo Team", name, token)
	return s.send(email, "Verify your Leaseo account", body)
}

func (s *emailService) SendOrderStatusNotification(ctx context.Context, email, orderNumber string, status domain.OrderStatus) error {
	body := fmt.Sprintf("Hello,\n\nYour rental order %s is now %s.\n\nBest regards,\nThe Leaseo Team", orderNumber, status)
	return s.send(email, fmt.Sprintf("Order %s update", orderNumber), body)
}

func (s *emailService) SendInvoiceNotification(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nInvoice %s for $%.2f has been issued. Payment is due by %s.\n\nBest regards,\nThe Leaseo Team",
		invoiceNumber, float64(totalCents)/100, dueDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Invoice %s", invoiceNumber), body)
}

func (s *emailService) SendInvoiceDueReminder(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nInvoice %s for $%.2f was due on %s and is still unpaid.\n\nBest regards,\nThe Leaseo Team",
		invoiceNumber, float64(totalCents)/100, dueDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Invoice %s is overdue", invoiceNumber), body)
}

func (s *emailService) SendReturnOverdueReminder(ctx context.Context, email, orderNumber string, scheduledDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nThe rental items on order %s were due back on %s. Please arrange the return as soon as possible.\n\nBest regards,\nThe Leaseo Team",
		orderNumber, scheduledDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Return overdue for order %s", orderNumber), body)
}
