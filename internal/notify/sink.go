package notify

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/types"
)

// Sink delivers a fully formed dispatch over one channel. A returned error is
// informational: the corresponding inbox item is never rolled back, and retry
// policy belongs to the sink itself.
type Sink interface {
	Deliver(ctx context.Context, dispatch types.NotificationDispatch) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, dispatch types.NotificationDispatch) error

func (f SinkFunc) Deliver(ctx context.Context, dispatch types.NotificationDispatch) error {
	return f(ctx, dispatch)
}
