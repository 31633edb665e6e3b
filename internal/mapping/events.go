package mapping

import (
	"github.com/pipewatch/pipewatch/api"
	"github.com/pipewatch/pipewatch/internal/types"
)

func DeploymentEventToAPI(event types.DeploymentEvent) api.DeploymentEvent {
	return api.DeploymentEvent{
		ID:            event.ID,
		Timestamp:     event.Timestamp,
		Service:       string(event.Service),
		Status:        string(event.Status),
		CommitMessage: event.CommitMessage,
		Deployer:      event.Deployer,
		Environment:   event.Environment,
		Branch:        event.Branch,
	}
}

func EventFilterOptionsToAPI(options types.EventFilterOptions) api.EventFilterOptions {
	return api.EventFilterOptions{
		Services:     List(options.Services, func(p types.Provider) string { return string(p) }),
		Environments: options.Environments,
	}
}
