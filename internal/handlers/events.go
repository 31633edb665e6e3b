package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/pipewatch/pipewatch/api"
	"github.com/pipewatch/pipewatch/internal/apierrors"
	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"github.com/pipewatch/pipewatch/internal/mapping"
	"github.com/pipewatch/pipewatch/internal/normalize"
	"github.com/pipewatch/pipewatch/internal/notify"
	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/zap"
)

func EventsRouter(processor *notify.Processor) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listEventsHandler())
		r.Get("/filter-options", getEventFilterOptionsHandler())
		r.Post("/{providerId}", submitEventHandler(processor))
	}
}

// allIsUnset treats the literal "all" a dashboard dropdown sends for an
// unconstrained field the same as an absent parameter.
func allIsUnset[T any](parseFunc func(string) (T, error)) func(string) (T, error) {
	return func(value string) (T, error) {
		if value == "all" {
			var zero T
			return zero, ErrParamNotDefined
		}
		return parseFunc(value)
	}
}

func parseEventFilter(r *http.Request) (types.EventFilter, error) {
	var filter types.EventFilter

	if service, err := QueryParam(r, "service", allIsUnset(types.ParseProvider)); errors.Is(err, ErrParamNotDefined) {
		// unconstrained
	} else if err != nil {
		return filter, fmt.Errorf("service must be one of github, vercel, aws, azure")
	} else {
		filter.Service = &service
	}

	if status, err := QueryParam(r, "status", allIsUnset(types.ParseDeploymentStatus)); errors.Is(err, ErrParamNotDefined) {
		// unconstrained
	} else if err != nil {
		return filter, fmt.Errorf("status must be one of success, failure, in_progress")
	} else {
		filter.Status = &status
	}

	if from, err := QueryParam(r, "from", ParseTimeFunc(time.RFC3339Nano)); errors.Is(err, ErrParamNotDefined) {
		// unconstrained
	} else if err != nil {
		return filter, fmt.Errorf("from must be a valid date")
	} else {
		filter.DateFrom = &from
	}

	if to, err := QueryParam(r, "to", ParseTimeFunc(time.RFC3339Nano)); errors.Is(err, ErrParamNotDefined) {
		// unconstrained
	} else if err != nil {
		return filter, fmt.Errorf("to must be a valid date")
	} else {
		filter.DateTo = &to
	}

	if search, err := QueryParam(r, "q", parseString); errors.Is(err, ErrParamNotDefined) {
		// unconstrained
	} else if err != nil {
		return filter, err
	} else {
		filter.SearchText = &search
	}

	return filter, nil
}

func listEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)

		filter, err := parseEventFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		events, err := internalctx.GetEventStore(ctx).Query(ctx, filter)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not query events", zap.Error(err))
			return
		}

		RespondJSON(w, mapping.List(events, mapping.DeploymentEventToAPI))
	}
}

func getEventFilterOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)

		options, err := internalctx.GetEventStore(ctx).FilterOptions(ctx)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not get filter options", zap.Error(err))
			return
		}

		RespondJSON(w, mapping.EventFilterOptionsToAPI(options))
	}
}

func submitEventHandler(processor *notify.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)
		providerID := chi.URLParam(r, "providerId")

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		event, err := processor.SubmitRawEvent(ctx, providerID, payload)
		if err != nil {
			normErr := new(normalize.Error)
			switch {
			case errors.Is(err, apierrors.ErrAlreadyExists):
				// re-delivery from an at-least-once source is not a failure
				RespondJSON(w, api.SubmitEventResponse{Duplicate: true})
			case errors.As(err, &normErr):
				log.Info("event rejected",
					zap.String("provider", providerID),
					zap.String("reason", string(normErr.Reason)))
				http.Error(w, normErr.Error(), normalizationStatusCode(normErr.Reason))
			default:
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				sentry.GetHubFromContext(ctx).CaptureException(err)
				log.Warn("could not submit event", zap.Error(err))
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		RespondJSON(w, api.SubmitEventResponse{ID: event.ID})
	}
}

func normalizationStatusCode(reason normalize.ErrorReason) int {
	switch reason {
	case normalize.ReasonUnknownProvider, normalize.ReasonMalformedPayload:
		return http.StatusBadRequest
	case normalize.ReasonUnknownStatus, normalize.ReasonBadTimestamp:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
