package notify

import (
	"context"
	"errors"

	"github.com/pipewatch/pipewatch/internal/apierrors"
	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/inbox"
	"github.com/pipewatch/pipewatch/internal/normalize"
	"github.com/pipewatch/pipewatch/internal/settings"
	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/zap"
)

// Processor is the ingestion pipeline: it normalizes raw provider payloads,
// appends them to the store and fans accepted events out to every owner's
// rules, inbox and delivery sinks.
type Processor struct {
	store      eventstore.Store
	settings   *settings.Store
	inboxes    *inbox.Manager
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewProcessor(
	store eventstore.Store,
	settingsStore *settings.Store,
	inboxes *inbox.Manager,
	dispatcher *Dispatcher,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		store:      store,
		settings:   settingsStore,
		inboxes:    inboxes,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// SubmitRawEvent is the only entry point that can grow the event store.
// It returns the normalized event on success. A duplicate submission returns
// the error wrapping apierrors.ErrAlreadyExists with no side effects; callers
// of an at-least-once source treat that as success.
func (p *Processor) SubmitRawEvent(ctx context.Context, providerID string, payload []byte) (*types.DeploymentEvent, error) {
	event, err := normalize.Normalize(providerID, payload)
	if err != nil {
		return nil, err
	}
	if err := p.store.Append(ctx, *event); err != nil {
		return nil, err
	}

	p.fanOut(ctx, *event)
	return event, nil
}

// fanOut evaluates the stored event against every owner's settings. Inbox
// items are created synchronously; delivery runs in the background and never
// blocks ingestion.
func (p *Processor) fanOut(ctx context.Context, event types.DeploymentEvent) {
	owners, err := p.settings.Owners(ctx)
	if err != nil {
		p.logger.Error("failed to list notification owners", zap.Error(err))
		return
	}

	for _, ownerID := range owners {
		ownerSettings, err := p.settings.Get(ctx, ownerID)
		if err != nil {
			if !errors.Is(err, apierrors.ErrNotFound) {
				p.logger.Error("failed to get notification settings",
					zap.String("ownerId", ownerID.String()), zap.Error(err))
			}
			continue
		}

		dispatches := Evaluate(event, ownerSettings, p.logger)
		if len(dispatches) == 0 {
			continue
		}

		ownerInbox := p.inboxes.ForOwner(ownerID)
		for _, dispatch := range dispatches {
			if _, err := ownerInbox.Accept(ctx, dispatch); err != nil {
				p.logger.Error("failed to accept notification",
					zap.String("ownerId", ownerID.String()), zap.Error(err))
			}
		}

		// fire and forget: the delivery outcome is logged by the dispatcher
		// and never rolls back the inbox items created above
		go func(dispatches []types.NotificationDispatch) {
			_ = p.dispatcher.DeliverAll(context.WithoutCancel(ctx), dispatches)
		}(dispatches)
	}
}
