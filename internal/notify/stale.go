package notify

import (
	"context"
	"fmt"

	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"github.com/pipewatch/pipewatch/internal/env"
	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/zap"
)

const staleDeploymentTitle = "Deployment Stalled"

// RunStaleDeploymentCheck looks for deployments whose most recent event is
// still in progress past the configured threshold and raises a warning inbox
// item for every owner that wants in-progress alerts. A stalled deployment
// warns at most once per event: the inbox's source event history is consulted
// before accepting.
func RunStaleDeploymentCheck(ctx context.Context) error {
	log := internalctx.GetLogger(ctx)
	store := internalctx.GetEventStore(ctx)
	settingsStore := internalctx.GetSettingsStore(ctx)
	inboxes := internalctx.GetInboxManager(ctx)

	events, err := store.Query(ctx, types.EventFilter{})
	if err != nil {
		return fmt.Errorf("failed to query events for stale check: %w", err)
	}

	// events are ordered newest-first, so the first event per pipeline is its
	// current state
	type pipelineKey struct {
		service     types.Provider
		environment string
		branch      string
	}
	seen := make(map[pipelineKey]struct{})
	var stale []types.DeploymentEvent
	for _, event := range events {
		key := pipelineKey{event.Service, event.Environment, event.Branch}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if event.IsStale(env.StaleDeploymentThreshold()) {
			stale = append(stale, event)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	owners, err := settingsStore.Owners(ctx)
	if err != nil {
		return fmt.Errorf("failed to list owners for stale check: %w", err)
	}

	for _, ownerID := range owners {
		ownerSettings, err := settingsStore.Get(ctx, ownerID)
		if err != nil {
			log.Error("failed to get settings for stale check",
				zap.String("ownerId", ownerID.String()), zap.Error(err))
			continue
		}
		if !ownerSettings.NotifyOnInProgress {
			continue
		}

		ownerInbox := inboxes.ForOwner(ownerID)
		for _, event := range stale {
			if exists, err := ownerInbox.HasItemForEvent(ctx, event.ID, staleDeploymentTitle); err != nil {
				return err
			} else if exists {
				continue
			}
			dispatch := types.NotificationDispatch{
				OwnerID:       ownerID,
				SourceEventID: event.ID,
				Title:         staleDeploymentTitle,
				Message: fmt.Sprintf("%v deployment to %v has been in progress since %v",
					event.Service, event.Environment, event.Timestamp.Format("Jan 2 15:04 MST")),
				Severity:  types.SeverityWarning,
				Timestamp: event.Timestamp,
			}
			if _, err := ownerInbox.Accept(ctx, dispatch); err != nil {
				log.Error("failed to accept stale deployment warning",
					zap.String("ownerId", ownerID.String()), zap.Error(err))
			}
		}
	}
	return nil
}
