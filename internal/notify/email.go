package notify

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/mail"
	"github.com/pipewatch/pipewatch/internal/types"
)

// EmailSink delivers dispatches through the configured Mailer.
type EmailSink struct {
	mailer mail.Mailer
}

var _ Sink = (*EmailSink)(nil)

func NewEmailSink(mailer mail.Mailer) *EmailSink {
	return &EmailSink{mailer: mailer}
}

func (s *EmailSink) Deliver(ctx context.Context, dispatch types.NotificationDispatch) error {
	recipients := dispatch.Recipients
	if len(recipients) == 0 {
		recipients = []string{dispatch.Address}
	}
	return s.mailer.Send(ctx, recipients, dispatch.Title, dispatch.Message)
}
