package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewSMTPMailer(host string, port int, username, password, from, fromName string) Mailer {
	return &smtpMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

func (s *smtpMailer) Send(ctx context.Context, to, toName, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	logger.ExternalServiceCall(ctx, "smtp", "send", "to", to)
	err := d.DialAndSend(m)
	logger.ExternalServiceResult(ctx, "smtp", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type sendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridMailer(apiKey, from, fromName string) Mailer {
	return &sendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (s *sendGridMailer) Send(ctx context.Context, to, toName, subject, body string) error {
	message := mail.NewSingleEmail(mail.NewEmail(s.fromName, s.from), subject, mail.NewEmail(toName, to), body, "")

	logger.ExternalServiceCall(ctx, "sendgrid", "send", "to", to)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}

type logMailer struct{}

// NewLogMailer writes messages to the log instead of sending them.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(ctx context.Context, to, toName, subject, body string) error {
	logger.InfoContext(ctx, "Email not sent (log provider)", "to", to, "subject", subject, "body", body)
	return nil
}

// NewMailer picks the mail transport named by the email config.
func NewMailer(cfg config.EmailConfig) (Mailer, error) {
	switch cfg.Provider {
	case config.EmailProviderSMTP:
		return NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.From, cfg.FromName), nil
	case config.EmailProviderSendGrid:
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.From, cfg.FromName), nil
	case config.EmailProviderLog:
		return NewLogMailer(), nil
	}
	return nil, fmt.Errorf("unsupported email provider %q", cfg.Provider)
}

type emailService struct {
	mailer       Mailer
	settingsRepo repository.SettingsRepository
}

func NewEmailService(mailer Mailer, settingsRepo repository.SettingsRepository) EmailService {
	return &emailService{
		mailer:       mailer,
		settingsRepo: settingsRepo,
	}
}

func (s *emailService) companyName(ctx context.Context) string {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.WarnContext(ctx, "Failed to load company settings for email", "error", err)
		}
		return "Rental Desk"
	}
	if settings.CompanyName == "" {
		return "Rental Desk"
	}
	return settings.CompanyName
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, order *domain.Order, summary pricing.Summary) error {
	client := order.Snapshot.Client
	if client.Email == "" {
		return nil
	}
	company := s.companyName(ctx)
	form := order.Snapshot.Form

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", client.Name)
	fmt.Fprintf(&b, "Thank you for your order #%d for %s.\n", order.ID, form.Event.ShowName)
	if form.Event.Facility != "" {
		fmt.Fprintf(&b, "Venue: %s %s\n", form.Event.Facility, form.Event.Room)
	}
	fmt.Fprintf(&b, "Rental days: %d\n\n", order.Snapshot.RentalDays)
	for _, line := range summary.Lines {
		fmt.Fprintf(&b, "%-28s %12s\n", line.Label, line.Display)
	}
	fmt.Fprintf(&b, "%-28s %12s\n", summary.Subtotal.Label, summary.Subtotal.Display)
	for _, line := range summary.Taxes {
		fmt.Fprintf(&b, "%-28s %12s\n", line.Label, line.Display)
	}
	fmt.Fprintf(&b, "%-28s %12s\n\n", summary.Total.Label, summary.Total.Display)
	if order.Status == domain.OrderStatusPending {
		b.WriteString("Payment for this order is still pending.\n\n")
	}
	fmt.Fprintf(&b, "Best regards,\nThe %s Team", company)

	subject := fmt.Sprintf("Order #%d confirmation - %s", order.ID, company)
	return s.mailer.Send(ctx, client.Email, client.Name, subject, b.String())
}

func (s *emailService) SendRefundNotice(ctx context.Context, order *domain.Order, amount decimal.Decimal) error {
	client := order.Snapshot.Client
	if client.Email == "" {
		return nil
	}
	company := s.companyName(ctx)

	body := fmt.Sprintf("Hello %s,\n\nA refund of %s has been issued for order #%d.", client.Name, pricing.FormatMoney(amount), order.ID)
	if order.RefundReason != "" {
		body += fmt.Sprintf("\n\nReason: %s", order.RefundReason)
	}
	body += fmt.Sprintf("\n\nTotal refunded to date: %s", pricing.FormatMoney(order.RefundAmount))
	body += fmt.Sprintf("\n\nBest regards,\nThe %s Team", company)

	subject := fmt.Sprintf("Refund for order #%d - %s", order.ID, company)
	return s.mailer.Send(ctx, client.Email, client.Name, subject, body)
}

func (s *emailService) SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error {
	return s.mailer.Send(ctx, adminEmail, "", subject, message)
}
