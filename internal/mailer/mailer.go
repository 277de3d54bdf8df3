// Package mailer sends contact-form notifications over SMTP.
package mailer

import "gopkg.in/gomail.v2"

// Sender is the outbound mail contract consumed by the handlers. Tests
// substitute a recording fake.
type Sender interface {
	Send(to, subject, textBody, htmlBody string) error
}

// Mailer delivers through a single SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message with plain-text and HTML alternatives. Each call
// dials a fresh SMTP session; contact-form volume does not justify a kept
// connection.
func (m *Mailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	return m.dialer.DialAndSend(msg)
}
