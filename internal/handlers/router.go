package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/inbox"
	"github.com/pipewatch/pipewatch/internal/middleware"
	"github.com/pipewatch/pipewatch/internal/notify"
	"github.com/pipewatch/pipewatch/internal/settings"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger                      *zap.Logger
	EventStore                  eventstore.Store
	SettingsStore               *settings.Store
	Inboxes                     *inbox.Manager
	Processor                   *notify.Processor
	IngestionRateLimitPerMinute int
}

// NewRouter builds the engine's HTTP surface: ingestion, event queries,
// per-owner settings and inbox operations.
func NewRouter(config RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimiddleware.RequestID,
		chimiddleware.Recoverer,
		middleware.Sentry(),
		middleware.ContextWithLogger(config.Logger),
		middleware.RequestLogging(config.Logger),
		middleware.ContextWithServices(config.EventStore, config.SettingsStore, config.Inboxes),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			if config.IngestionRateLimitPerMinute > 0 {
				r.Use(httprate.LimitByIP(config.IngestionRateLimitPerMinute, time.Minute))
			}
			EventsRouter(config.Processor)(r)
		})
		r.Route("/owners/{ownerId}", func(r chi.Router) {
			r.Route("/notifications", NotificationsRouter)
			r.Route("/settings", SettingsRouter)
		})
	})

	return r
}
