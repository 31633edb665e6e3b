// Package notify decides whether and how a deployment event is surfaced to a
// user: rule evaluation, inbox fan-out and delivery to the configured sinks.
package notify

import (
	"fmt"

	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/zap"
)

// Evaluate applies an owner's notification settings to an event and returns
// the resulting dispatches, at most one per enabled channel. A disabled
// trigger produces no dispatches; that is deliberate suppression, not an
// error. A channel that is enabled but has no address configured is skipped
// with a configuration warning. Evaluation is deterministic and performs no
// delivery; the caller hands the dispatches to a Dispatcher.
func Evaluate(
	event types.DeploymentEvent,
	settings types.NotificationSettings,
	logger *zap.Logger,
) []types.NotificationDispatch {
	if !settings.TriggerEnabled(event.Status) {
		return nil
	}

	title, message := composeMessage(event)
	severity := deriveSeverity(event.Status)

	var dispatches []types.NotificationDispatch
	if settings.SlackEnabled {
		if settings.SlackChannel == "" {
			logger.Warn("slack notifications enabled without a channel, skipping",
				zap.String("ownerId", settings.OwnerID.String()))
		} else {
			dispatches = append(dispatches, types.NotificationDispatch{
				OwnerID:       settings.OwnerID,
				SourceEventID: event.ID,
				Channel:       types.NotificationChannelSlack,
				Address:       settings.SlackChannel,
				Title:         title,
				Message:       message,
				Severity:      severity,
				Timestamp:     event.Timestamp,
			})
		}
	}
	if settings.EmailEnabled {
		if len(settings.EmailRecipients) == 0 {
			logger.Warn("email notifications enabled without recipients, skipping",
				zap.String("ownerId", settings.OwnerID.String()))
		} else {
			dispatches = append(dispatches, types.NotificationDispatch{
				OwnerID:       settings.OwnerID,
				SourceEventID: event.ID,
				Channel:       types.NotificationChannelEmail,
				Address:       settings.EmailRecipients[0],
				Recipients:    settings.EmailRecipients,
				Title:         title,
				Message:       message,
				Severity:      severity,
				Timestamp:     event.Timestamp,
			})
		}
	}
	return dispatches
}

func deriveSeverity(status types.DeploymentStatus) types.Severity {
	if status == types.DeploymentStatusFailure {
		return types.SeverityCritical
	}
	return types.SeverityInfo
}

func composeMessage(event types.DeploymentEvent) (title string, message string) {
	switch event.Status {
	case types.DeploymentStatusFailure:
		title = "Deployment Failed"
		message = fmt.Sprintf("%v deployment to %v failed", event.Service, event.Environment)
	case types.DeploymentStatusSuccess:
		title = "Deployment Successful"
		message = fmt.Sprintf("%v deployment to %v succeeded", event.Service, event.Environment)
	case types.DeploymentStatusInProgress:
		title = "Deployment In Progress"
		message = fmt.Sprintf("%v deployment to %v started", event.Service, event.Environment)
	}
	if event.CommitMessage != "" {
		message = fmt.Sprintf("%v: %v", message, event.CommitMessage)
	}
	return title, message
}
