package api

import (
	"time"

	"github.com/google/uuid"
)

type NotificationItem struct {
	ID            uuid.UUID `json:"id"`
	SourceEventID string    `json:"sourceEventId"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
	Severity      string    `json:"severity"`
	Read          bool      `json:"read"`
}

type NotificationListResponse struct {
	Items       []NotificationItem `json:"items"`
	UnreadCount int                `json:"unreadCount"`
}

type ClearNotificationsResponse struct {
	Removed int `json:"removed"`
}
