package normalize

import "github.com/pipewatch/pipewatch/internal/types"

// Per-provider status vocabularies. Every known provider state maps to exactly
// one canonical status; a state missing from its table fails the whole payload
// with ReasonUnknownStatus. There is deliberately no fallback entry: a new
// provider state must be classified here before it is accepted.
var providerStatusTables = map[types.Provider]map[string]types.DeploymentStatus{
	types.ProviderGithub: {
		"queued":          types.DeploymentStatusInProgress,
		"waiting":         types.DeploymentStatusInProgress,
		"requested":       types.DeploymentStatusInProgress,
		"pending":         types.DeploymentStatusInProgress,
		"in_progress":     types.DeploymentStatusInProgress,
		"action_required": types.DeploymentStatusInProgress,
		"success":         types.DeploymentStatusSuccess,
		"failure":         types.DeploymentStatusFailure,
		"cancelled":       types.DeploymentStatusFailure,
		"timed_out":       types.DeploymentStatusFailure,
		"startup_failure": types.DeploymentStatusFailure,
	},
	types.ProviderVercel: {
		"QUEUED":       types.DeploymentStatusInProgress,
		"INITIALIZING": types.DeploymentStatusInProgress,
		"BUILDING":     types.DeploymentStatusInProgress,
		"DEPLOYING":    types.DeploymentStatusInProgress,
		"READY":        types.DeploymentStatusSuccess,
		"ERROR":        types.DeploymentStatusFailure,
		"CANCELED":     types.DeploymentStatusFailure,
	},
	types.ProviderAWS: {
		"Created":    types.DeploymentStatusInProgress,
		"Queued":     types.DeploymentStatusInProgress,
		"InProgress": types.DeploymentStatusInProgress,
		"Ready":      types.DeploymentStatusInProgress,
		"Succeeded":  types.DeploymentStatusSuccess,
		"Failed":     types.DeploymentStatusFailure,
		"Stopped":    types.DeploymentStatusFailure,
	},
	types.ProviderAzure: {
		"notStarted": types.DeploymentStatusInProgress,
		"inProgress": types.DeploymentStatusInProgress,
		"cancelling": types.DeploymentStatusInProgress,
		// "with issues" is still running from the dashboard's point of view,
		// there is no fourth canonical status
		"succeededWithIssues": types.DeploymentStatusInProgress,
		"succeeded":           types.DeploymentStatusSuccess,
		"failed":              types.DeploymentStatusFailure,
		"canceled":            types.DeploymentStatusFailure,
	},
}

func mapStatus(provider types.Provider, status string) (types.DeploymentStatus, error) {
	table, ok := providerStatusTables[provider]
	if !ok {
		return "", newError(ReasonUnknownProvider, "provider %q has no status table", provider)
	}
	if canonical, ok := table[status]; ok {
		return canonical, nil
	}
	return "", newError(ReasonUnknownStatus, "provider %q reported unknown status %q", provider, status)
}
