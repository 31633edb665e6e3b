package mapping

import (
	"github.com/pipewatch/pipewatch/api"
	"github.com/pipewatch/pipewatch/internal/types"
)

func NotificationItemToAPI(item types.NotificationItem) api.NotificationItem {
	return api.NotificationItem{
		ID:            item.ID,
		SourceEventID: item.SourceEventID,
		Title:         item.Title,
		Message:       item.Message,
		Timestamp:     item.Timestamp,
		Severity:      string(item.Severity),
		Read:          item.Read,
	}
}

func NotificationSettingsToAPI(settings types.NotificationSettings) api.NotificationSettings {
	return api.NotificationSettings{
		SlackEnabled:       settings.SlackEnabled,
		SlackChannel:       settings.SlackChannel,
		EmailEnabled:       settings.EmailEnabled,
		EmailRecipients:    settings.EmailRecipients,
		NotifyOnFailure:    settings.NotifyOnFailure,
		NotifyOnSuccess:    settings.NotifyOnSuccess,
		NotifyOnInProgress: settings.NotifyOnInProgress,
	}
}

func NotificationSettingsFromAPI(settings api.NotificationSettings) types.NotificationSettings {
	return types.NotificationSettings{
		SlackEnabled:       settings.SlackEnabled,
		SlackChannel:       settings.SlackChannel,
		EmailEnabled:       settings.EmailEnabled,
		EmailRecipients:    settings.EmailRecipients,
		NotifyOnFailure:    settings.NotifyOnFailure,
		NotifyOnSuccess:    settings.NotifyOnSuccess,
		NotifyOnInProgress: settings.NotifyOnInProgress,
	}
}
