package types

import (
	"errors"
	"time"
)

type Provider string

const (
	ProviderGithub Provider = "github"
	ProviderVercel Provider = "vercel"
	ProviderAWS    Provider = "aws"
	ProviderAzure  Provider = "azure"
)

func ParseProvider(value string) (Provider, error) {
	switch value {
	case string(ProviderGithub):
		return ProviderGithub, nil
	case string(ProviderVercel):
		return ProviderVercel, nil
	case string(ProviderAWS):
		return ProviderAWS, nil
	case string(ProviderAzure):
		return ProviderAzure, nil
	default:
		return "", errors.New("invalid provider")
	}
}

type DeploymentStatus string

const (
	DeploymentStatusSuccess    DeploymentStatus = "success"
	DeploymentStatusFailure    DeploymentStatus = "failure"
	DeploymentStatusInProgress DeploymentStatus = "in_progress"
)

func ParseDeploymentStatus(value string) (DeploymentStatus, error) {
	switch value {
	case string(DeploymentStatusSuccess):
		return DeploymentStatusSuccess, nil
	case string(DeploymentStatusFailure):
		return DeploymentStatusFailure, nil
	case string(DeploymentStatusInProgress):
		return DeploymentStatusInProgress, nil
	default:
		return "", errors.New("invalid deployment status")
	}
}

// DeploymentEvent is the canonical form every provider payload is normalized
// into. Events are immutable once stored and never deleted, only superseded by
// newer events with new IDs.
type DeploymentEvent struct {
	// ID is globally unique after normalization (provider-prefixed).
	ID            string           `json:"id"`
	Timestamp     time.Time        `json:"timestamp"`
	Service       Provider         `json:"service"`
	Status        DeploymentStatus `json:"status"`
	CommitMessage string           `json:"commitMessage"`
	Deployer      string           `json:"deployer"`
	Environment   string           `json:"environment"`
	Branch        string           `json:"branch"`
}

const deploymentStaleDuration = 30 * time.Minute

// IsStale reports whether an in-progress deployment has been running long
// enough that it should be considered stuck.
func (e *DeploymentEvent) IsStale(threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = deploymentStaleDuration
	}
	return e != nil && e.Status == DeploymentStatusInProgress && time.Since(e.Timestamp) > threshold
}

// EventFilter restricts an event store query. Nil fields are unconstrained.
type EventFilter struct {
	Service    *Provider
	Status     *DeploymentStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchText *string
}

// EventFilterOptions holds the distinct values available for filtering,
// e.g. to populate dropdowns of a timeline view.
type EventFilterOptions struct {
	Services     []Provider
	Environments []string
}
