package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

type NotificationChannel string

const (
	NotificationChannelSlack NotificationChannel = "slack"
	NotificationChannelEmail NotificationChannel = "email"
)

func ParseNotificationChannel(value string) (NotificationChannel, error) {
	switch value {
	case string(NotificationChannelSlack):
		return NotificationChannelSlack, nil
	case string(NotificationChannelEmail):
		return NotificationChannelEmail, nil
	default:
		return "", errors.New("invalid notification channel")
	}
}

// NotificationSettings is the single current per-owner notification
// configuration. Updates are full replacements.
type NotificationSettings struct {
	OwnerID            uuid.UUID `json:"ownerId"`
	SlackEnabled       bool      `json:"slackEnabled"`
	SlackChannel       string    `json:"slackChannel"`
	EmailEnabled       bool      `json:"emailEnabled"`
	EmailRecipients    []string  `json:"emailRecipients"`
	NotifyOnFailure    bool      `json:"notifyOnFailure"`
	NotifyOnSuccess    bool      `json:"notifyOnSuccess"`
	NotifyOnInProgress bool      `json:"notifyOnInProgress"`
}

// TriggerEnabled maps an event status to the corresponding trigger toggle.
func (s *NotificationSettings) TriggerEnabled(status DeploymentStatus) bool {
	switch status {
	case DeploymentStatusFailure:
		return s.NotifyOnFailure
	case DeploymentStatusSuccess:
		return s.NotifyOnSuccess
	case DeploymentStatusInProgress:
		return s.NotifyOnInProgress
	default:
		return false
	}
}

// DefaultNotificationSettings are used for owners that never saved their
// settings: failures and in-progress alerts on, channels off.
func DefaultNotificationSettings(ownerID uuid.UUID) NotificationSettings {
	return NotificationSettings{
		OwnerID:            ownerID,
		NotifyOnFailure:    true,
		NotifyOnInProgress: true,
	}
}

// NotificationDispatch is a decided, not-yet-delivered notification directed
// at exactly one channel.
type NotificationDispatch struct {
	OwnerID       uuid.UUID           `json:"ownerId"`
	SourceEventID string              `json:"sourceEventId"`
	Channel       NotificationChannel `json:"channel"`
	Address       string              `json:"address"`
	Recipients    []string            `json:"recipients,omitempty"`
	Title         string              `json:"title"`
	Message       string              `json:"message"`
	Severity      Severity            `json:"severity"`
	Timestamp     time.Time           `json:"timestamp"`
}

// NotificationItem is an inbox entry. Content is immutable after creation;
// only the read flag changes, one-way false→true.
type NotificationItem struct {
	ID            uuid.UUID `json:"id"`
	SourceEventID string    `json:"sourceEventId"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
	Severity      Severity  `json:"severity"`
	Read          bool      `json:"read"`
}
