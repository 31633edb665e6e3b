package handlers

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pipewatch/pipewatch/api"
	"github.com/pipewatch/pipewatch/internal/apierrors"
	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"github.com/pipewatch/pipewatch/internal/mapping"
	"go.uber.org/zap"
)

func NotificationsRouter(r chi.Router) {
	r.Get("/", listNotificationsHandler())
	r.Put("/{notificationId}/read", markNotificationReadHandler())
	r.Delete("/", clearNotificationsHandler())
}

func ownerIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "ownerId"))
	if err != nil {
		http.Error(w, "ownerId must be a valid UUID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return ownerID, true
}

func listNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)
		ownerID, ok := ownerIDFromRequest(w, r)
		if !ok {
			return
		}

		ownerInbox := internalctx.GetInboxManager(ctx).ForOwner(ownerID)
		items, err := ownerInbox.List(ctx)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not list notifications", zap.Error(err))
			return
		}
		unread, err := ownerInbox.UnreadCount(ctx)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not count unread notifications", zap.Error(err))
			return
		}

		RespondJSON(w, api.NotificationListResponse{
			Items:       mapping.List(items, mapping.NotificationItemToAPI),
			UnreadCount: unread,
		})
	}
}

func markNotificationReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)
		ownerID, ok := ownerIDFromRequest(w, r)
		if !ok {
			return
		}
		notificationID, err := uuid.Parse(chi.URLParam(r, "notificationId"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		err = internalctx.GetInboxManager(ctx).ForOwner(ownerID).MarkAsRead(ctx, notificationID)
		if errors.Is(err, apierrors.ErrNotFound) {
			http.NotFound(w, r)
		} else if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not mark notification as read", zap.Error(err))
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

func clearNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)
		ownerID, ok := ownerIDFromRequest(w, r)
		if !ok {
			return
		}

		removed, err := internalctx.GetInboxManager(ctx).ForOwner(ownerID).ClearAll(ctx)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Warn("could not clear notifications", zap.Error(err))
			return
		}

		RespondJSON(w, api.ClearNotificationsResponse{Removed: removed})
	}
}
