package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers lead notices over SMTP. It implements queue.Notifier.
type EmailSender struct {
	From   string
	Dialer Dialer
	Logger *zap.Logger
}

func NewEmailSender(host string, port int, user, password, from string, logger *zap.Logger) *EmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailSender{
		From:   from,
		Dialer: gomail.NewDialer(host, port, user, password),
		Logger: logger,
	}
}

func (s *EmailSender) NotifyConversion(ctx context.Context, event queue.ConversionEvent) error {
	if event.OwnerEmail == "" {
		s.Logger.Info("conversion without owner email, nothing to send", zap.String("lead_id", event.LeadID))
		return nil
	}
	data := ConversionEmailData{
		LeadName:  event.LeadName,
		Company:   event.Company,
		Outcome:   event.Outcome,
		ContactID: event.ContactID,
		AccountID: event.AccountID,
		DealID:    event.DealID,
		Partial:   event.Outcome == "partial_success",
	}
	subject := fmt.Sprintf("Lead converted: %s", event.LeadName)
	return s.send(event.OwnerEmail, subject, "conversion.html", data)
}

func (s *EmailSender) NotifyReminderDue(ctx context.Context, event queue.ReminderDueEvent) error {
	data := ReminderEmailData{
		Title:    event.Title,
		Due:      event.Due,
		Module:   event.Module,
		RecordID: event.RecordID,
	}
	return s.send(event.AssigneeEmail, "Reminder: "+event.Title, "reminder.html", data)
}

func (s *EmailSender) send(to, subject, tmpl string, data any) error {
	body, err := render(tmpl, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %s email: %w", tmpl, err)
	}
	s.Logger.Info("📧 email sent", zap.String("template", tmpl), zap.String("to", to))
	return nil
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
