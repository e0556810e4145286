package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// EmailMessage is a plain-text notification.
type EmailMessage struct {
	To       string
	ReplyTo  string
	FromName string
	Subject  string
	Body     string
}

// Mailer delivers one notification.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailService sends over SMTP, or logs when SMTP is not configured.
type EmailService struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	devMode bool
}

func NewEmailService(host, port, user, pass, from string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		slog.Warn("email service running in dev mode, messages are logged instead of sent")
	}
	return &EmailService{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		devMode: devMode,
	}
}

func (s *EmailService) Send(ctx context.Context, msg EmailMessage) error {
	if s.devMode {
		slog.Info("dev_email", "to", msg.To, "reply_to", msg.ReplyTo, "subject", msg.Subject, "body", msg.Body)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	message := buildPlainMessage(s.from, msg)

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{msg.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	slog.Info("email_sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func buildPlainMessage(from string, msg EmailMessage) string {
	sender := from
	if msg.FromName != "" {
		sender = fmt.Sprintf("%s <%s>", sanitizeHeader(msg.FromName), from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", sender),
		fmt.Sprintf("To: %s", sanitizeHeader(msg.To)),
		fmt.Sprintf("Subject: %s", sanitizeHeader(msg.Subject)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	if msg.ReplyTo != "" {
		headers = append(headers, fmt.Sprintf("Reply-To: %s", sanitizeHeader(msg.ReplyTo)))
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.Body
}

// sanitizeHeader strips CR and LF so form input cannot inject headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
