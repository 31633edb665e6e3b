package context

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/inbox"
	"github.com/pipewatch/pipewatch/internal/settings"
	"go.uber.org/zap"
)

func GetLogger(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok {
		return logger
	}
	panic("no logger found in context")
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

func GetEventStore(ctx context.Context) eventstore.Store {
	if store, ok := ctx.Value(ctxKeyEventStore).(eventstore.Store); ok {
		if store != nil {
			return store
		}
	}
	panic("no event store found in context")
}

func WithEventStore(ctx context.Context, store eventstore.Store) context.Context {
	return context.WithValue(ctx, ctxKeyEventStore, store)
}

func GetInboxManager(ctx context.Context) *inbox.Manager {
	if mgr, ok := ctx.Value(ctxKeyInboxManager).(*inbox.Manager); ok {
		if mgr != nil {
			return mgr
		}
	}
	panic("no inbox manager found in context")
}

func WithInboxManager(ctx context.Context, mgr *inbox.Manager) context.Context {
	return context.WithValue(ctx, ctxKeyInboxManager, mgr)
}

func GetSettingsStore(ctx context.Context) *settings.Store {
	if store, ok := ctx.Value(ctxKeySettingsStore).(*settings.Store); ok {
		if store != nil {
			return store
		}
	}
	panic("no settings store found in context")
}

func WithSettingsStore(ctx context.Context, store *settings.Store) context.Context {
	return context.WithValue(ctx, ctxKeySettingsStore, store)
}
