package api

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/pipewatch/pipewatch/internal/validation"
)

type NotificationSettings struct {
	SlackEnabled       bool     `json:"slackEnabled"`
	SlackChannel       string   `json:"slackChannel"`
	EmailEnabled       bool     `json:"emailEnabled"`
	EmailRecipients    []string `json:"emailRecipients"`
	NotifyOnFailure    bool     `json:"notifyOnFailure"`
	NotifyOnSuccess    bool     `json:"notifyOnSuccess"`
	NotifyOnInProgress bool     `json:"notifyOnInProgress"`
}

// Validate checks channel addresses. A disabled channel may carry a stale
// address, so only enabled channels are checked.
func (s *NotificationSettings) Validate() error {
	if s.SlackEnabled && s.SlackChannel != "" && !strings.HasPrefix(s.SlackChannel, "#") {
		return validation.NewValidationFailedError("slack channel must start with \"#\"")
	}
	if s.EmailEnabled {
		for _, recipient := range s.EmailRecipients {
			if _, err := mail.ParseAddress(recipient); err != nil {
				return validation.NewValidationFailedError(fmt.Sprintf("invalid email recipient %q", recipient))
			}
		}
	}
	return nil
}
