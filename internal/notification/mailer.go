package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Message is a single outbound email. The sender address belongs to the
// mailer, not the message.
type Message struct {
	To      []string
	CC      []string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail over SMTP. With a password it authenticates via
// PLAIN (Gmail-style relay); without one it stays unauthenticated, which is
// what a local Mailpit expects.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host, port, from, password string) *SMTPMailer {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@zaffira.local"
	}
	var auth smtp.Auth
	if password != "" {
		auth = smtp.PlainAuth("", from, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
		auth: auth,
	}
}

// Send delivers the message through the configured relay. net/smtp carries
// no context support, so ctx does not bound the SMTP dialog; a hung relay
// blocks until the OS-level TCP timeout.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	recipients := make([]string, 0, len(msg.To)+len(msg.CC))
	recipients = append(recipients, msg.To...)
	recipients = append(recipients, msg.CC...)
	if len(recipients) == 0 {
		return fmt.Errorf("message has no recipients")
	}
	body := buildMessage(m.from, msg)
	return smtp.SendMail(m.addr, m.auth, m.from, recipients, []byte(body))
}

func buildMessage(from string, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if len(msg.CC) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(msg.CC, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")
	return b.String()
}
