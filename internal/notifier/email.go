// Package notifier provides the delivery transports behind notification
// rules. Each notifier covers one rule kind and reports readiness so the
// dispatcher can fail soft when a transport is unconfigured.
package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/SergioM098/Monitoring-proyect/internal/config"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
)

// EmailNotifier sends alerts over SMTP
type EmailNotifier struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewEmailNotifier creates an SMTP-backed notifier. It is inert until host,
// user and from address are configured.
func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg}
	if n.IsReady() {
		n.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return n
}

func (n *EmailNotifier) Kind() string { return notification.KindEmail }

func (n *EmailNotifier) IsReady() bool {
	return n.cfg.Host != "" && n.cfg.From != ""
}

func (n *EmailNotifier) Send(ctx context.Context, destination, subject, body string) error {
	if n.dialer == nil {
		return fmt.Errorf("smtp is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", destination)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", renderHTML(subject, body))

	done := make(chan error, 1)
	go func() { done <- n.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", destination, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func renderHTML(subject, body string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif">`)
	b.WriteString("<h2>" + html.EscapeString(subject) + "</h2>")
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		b.WriteString("<p>" + html.EscapeString(line) + "</p>")
	}
	b.WriteString("</div>")
	return b.String()
}
