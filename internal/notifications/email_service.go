package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"ticketly/internal/shared/config"
	"ticketly/pkg/logger"
)

// EmailService renders and sends the user-facing message for a consumed
// notification.
type EmailService interface {
	SendNotification(ctx context.Context, notification *Notification) error
}

type smtpEmailService struct {
	config    config.EmailConfig
	templates map[Kind]*template.Template
}

func NewSMTPEmailService(cfg config.EmailConfig) (EmailService, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	service := &smtpEmailService{
		config:    cfg,
		templates: make(map[Kind]*template.Template),
	}
	if err := service.loadTemplates(); err != nil {
		return nil, err
	}
	return service, nil
}

const baseTemplate = `<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>{{.Title}}</h2>
	<p>Hi {{.RecipientName}},</p>
	<p>{{.Message}}</p>
	{{if .Link}}<p><a href="{{.Link}}">View details</a></p>{{end}}
	{{if .Footer}}<p style="color: #666; font-size: 13px;">{{.Footer}}</p>{{end}}
</body>
</html>`

// kindFooters carry the messaging each outcome needs beyond the orchestrator's
// summary. Pending bookings must set expectations about manual verification.
var kindFooters = map[Kind]string{
	KindBookingPending:    "Your payment receipt is being verified. Confirmation may take up to 24 hours.",
	KindBookingWaitlisted: "We will email you if a spot opens up.",
}

func (s *smtpEmailService) loadTemplates() error {
	tmpl, err := template.New("notification").Parse(baseTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}
	for _, kind := range []Kind{KindBookingConfirmed, KindBookingPending, KindBookingWaitlisted, KindOrganizerBookingReceived} {
		s.templates[kind] = tmpl
	}
	return nil
}

func (s *smtpEmailService) SendNotification(ctx context.Context, notification *Notification) error {
	tmpl, ok := s.templates[notification.Kind]
	if !ok {
		return fmt.Errorf("no template for notification kind %s", notification.Kind)
	}

	var body bytes.Buffer
	err := tmpl.Execute(&body, map[string]interface{}{
		"Title":         notification.Title,
		"RecipientName": notification.RecipientName,
		"Message":       notification.Message,
		"Link":          notification.Link,
		"Footer":        kindFooters[notification.Kind],
	})
	if err != nil {
		return fmt.Errorf("failed to render notification email: %w", err)
	}

	if err := s.send(ctx, notification.RecipientEmail, notification.Title, body.String()); err != nil {
		return err
	}

	logger.GetDefault().Info("notification email sent",
		"kind", notification.Kind,
		"recipient", notification.RecipientEmail,
	)
	return nil
}

func (s *smtpEmailService) send(ctx context.Context, to, subject, htmlBody string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// logEmailService logs instead of sending. Used in development when no
// SMTP server is configured.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendNotification(_ context.Context, notification *Notification) error {
	logger.GetDefault().Info("email delivery skipped, no smtp configured",
		"kind", notification.Kind,
		"recipient", notification.RecipientEmail,
		"title", notification.Title,
	)
	return nil
}
