package handlers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/pipewatch/pipewatch/api"
	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"github.com/pipewatch/pipewatch/internal/mapping"
	"github.com/pipewatch/pipewatch/internal/validation"
	"go.uber.org/zap"
)

func SettingsRouter(r chi.Router) {
	r.Get("/", getSettingsHandler())
	r.Put("/", updateSettingsHandler())
}

func getSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)
		ownerID, ok := ownerIDFromRequest(w, r)
		if !ok {
			return
		}

		current, err := internalctx.GetSettingsStore(ctx).Get(ctx, ownerID)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not get settings", zap.Error(err))
			return
		}

		RespondJSON(w, mapping.NotificationSettingsToAPI(current))
	}
}

func updateSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)
		ownerID, ok := ownerIDFromRequest(w, r)
		if !ok {
			return
		}

		request, err := JsonBody[api.NotificationSettings](w, r)
		if err != nil {
			return
		}
		if err := request.Validate(); validation.IsValidationFailed(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not validate settings", zap.Error(err))
			return
		}

		next := mapping.NotificationSettingsFromAPI(request)
		if err := internalctx.GetSettingsStore(ctx).Update(ctx, ownerID, next); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not update settings", zap.Error(err))
			return
		}

		RespondJSON(w, request)
	}
}
