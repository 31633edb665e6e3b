package notify

import (
	"context"
	"time"

	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Dispatcher routes dispatches to the sink registered for their channel.
// Delivery is at-most-once per dispatch: there is no internal retry, and a
// delivery error never affects the inbox item that was already created.
type Dispatcher struct {
	sinks   map[types.NotificationChannel]Sink
	timeout time.Duration
	logger  *zap.Logger
}

func NewDispatcher(sinks map[types.NotificationChannel]Sink, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{sinks: sinks, timeout: timeout, logger: logger}
}

// DeliverAll sends each dispatch to its channel sink, collecting delivery
// errors. Errors are reported for observability only; the caller must not
// roll anything back.
func (d *Dispatcher) DeliverAll(ctx context.Context, dispatches []types.NotificationDispatch) error {
	var combined error
	for _, dispatch := range dispatches {
		if err := d.deliver(ctx, dispatch); err != nil {
			d.logger.Warn("notification delivery failed",
				zap.String("channel", string(dispatch.Channel)),
				zap.String("sourceEventId", dispatch.SourceEventID),
				zap.Error(err))
			combined = multierr.Append(combined, err)
		}
	}
	return combined
}

func (d *Dispatcher) deliver(ctx context.Context, dispatch types.NotificationDispatch) error {
	sink, ok := d.sinks[dispatch.Channel]
	if !ok {
		d.logger.Warn("no sink registered for channel, dropping dispatch",
			zap.String("channel", string(dispatch.Channel)))
		return nil
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return sink.Deliver(ctx, dispatch)
}
