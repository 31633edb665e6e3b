// Package normalize converts provider-specific deployment payloads into the
// canonical event shape. Normalization is pure: it never touches the store,
// and it fails closed on anything it does not recognize so that schema drift
// in a provider surfaces as an ingestion error instead of a silently
// misclassified event.
package normalize

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pipewatch/pipewatch/internal/types"
)

type ErrorReason string

const (
	ReasonUnknownProvider  ErrorReason = "UNKNOWN_PROVIDER"
	ReasonUnknownStatus    ErrorReason = "UNKNOWN_STATUS"
	ReasonBadTimestamp     ErrorReason = "BAD_TIMESTAMP"
	ReasonMalformedPayload ErrorReason = "MALFORMED_PAYLOAD"
)

type Error struct {
	Reason  ErrorReason
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("normalization failed (%v): %v", e.Reason, e.Message)
}

func newError(reason ErrorReason, format string, args ...any) *Error {
	return &Error{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// rawEvent is the canonical shape every event source must produce. Provider
// API wire formats are out of scope; polling adapters and webhook receivers
// translate into this shape before calling Normalize.
type rawEvent struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	CommitMessage string `json:"commitMessage"`
	Deployer      string `json:"deployer"`
	Environment   string `json:"environment"`
	Branch        string `json:"branch"`
}

// Normalize converts a raw provider payload into a canonical DeploymentEvent.
// The resulting event ID is prefixed with the provider so that IDs scoped to
// one provider are globally unique after normalization.
func Normalize(providerID string, payload []byte) (*types.DeploymentEvent, error) {
	provider, err := types.ParseProvider(providerID)
	if err != nil {
		return nil, newError(ReasonUnknownProvider, "provider %q", providerID)
	}

	var raw rawEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, newError(ReasonMalformedPayload, "%v", err)
	}
	if raw.ID == "" {
		return nil, newError(ReasonMalformedPayload, "payload has no id")
	}

	status, err := mapStatus(provider, raw.Status)
	if err != nil {
		return nil, err
	}

	timestamp, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return nil, err
	}

	return &types.DeploymentEvent{
		ID:            fmt.Sprintf("%v/%v", provider, raw.ID),
		Timestamp:     timestamp,
		Service:       provider,
		Status:        status,
		CommitMessage: raw.CommitMessage,
		Deployer:      raw.Deployer,
		Environment:   raw.Environment,
		Branch:        raw.Branch,
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, newError(ReasonBadTimestamp, "payload has no timestamp")
	}
	timestamp, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, newError(ReasonBadTimestamp, "%v", err)
	}
	return timestamp.UTC(), nil
}
