package middleware

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5/middleware"
	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/inbox"
	"github.com/pipewatch/pipewatch/internal/settings"
	"go.uber.org/zap"
)

// ContextWithLogger attaches a request-scoped logger retrievable via
// internalctx.GetLogger.
func ContextWithLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := logger.With(zap.String("requestId", middleware.GetReqID(r.Context())))
			next.ServeHTTP(w, r.WithContext(internalctx.WithLogger(r.Context(), requestLogger)))
		})
	}
}

// ContextWithServices makes the engine's shared services available to
// handlers via internalctx accessors.
func ContextWithServices(
	store eventstore.Store,
	settingsStore *settings.Store,
	inboxes *inbox.Manager,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = internalctx.WithEventStore(ctx, store)
			ctx = internalctx.WithSettingsStore(ctx, settingsStore)
			ctx = internalctx.WithInboxManager(ctx, inboxes)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Sentry attaches a sentry hub to the request context so handlers can capture
// exceptions with sentry.GetHubFromContext.
func Sentry() func(http.Handler) http.Handler {
	handler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return handler.Handle
}

// RequestLogging logs each request on completion.
func RequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
