package mail

import (
	"context"
	"fmt"

	"github.com/pipewatch/pipewatch/internal/env"
	gomail "github.com/wneessen/go-mail"
)

// Mailer sends plain-text mail to a list of recipients.
type Mailer interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// New builds a Mailer from the configured mailer type. With no mailer
// configured a noop implementation is returned so that email delivery
// degrades to a logged warning instead of a startup failure.
func New(config env.MailerConfig) (Mailer, error) {
	switch config.Type {
	case env.MailerTypeSMTP:
		return newSMTPMailer(config)
	case env.MailerTypeUnspecified:
		return &noopMailer{}, nil
	default:
		return nil, fmt.Errorf("unsupported mailer type: %v", config.Type)
	}
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

func newSMTPMailer(config env.MailerConfig) (*smtpMailer, error) {
	options := []gomail.Option{
		gomail.WithPort(config.SmtpConfig.Port),
	}
	if config.SmtpConfig.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(config.SmtpConfig.Username),
			gomail.WithPassword(config.SmtpConfig.Password),
		)
	}
	if config.SmtpConfig.ImplicitTLS {
		options = append(options, gomail.WithSSL())
	}
	client, err := gomail.NewClient(config.SmtpConfig.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &smtpMailer{client: client, from: config.FromAddress}, nil
}

func (m *smtpMailer) Send(ctx context.Context, recipients []string, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(recipients...); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return m.client.DialAndSendWithContext(ctx, msg)
}

type noopMailer struct{}

func (m *noopMailer) Send(ctx context.Context, recipients []string, subject, body string) error {
	return fmt.Errorf("no mailer configured, dropping mail to %d recipients", len(recipients))
}
