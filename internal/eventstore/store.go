// Package eventstore holds the append-only log of normalized deployment
// events. The store is the only shared mutable resource of the engine: at most
// one append commits at a time while queries run concurrently against an
// immutable snapshot.
package eventstore

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/types"
)

// Store is the append-only deployment event log. Implementations must reject
// duplicate IDs with apierrors.ErrAlreadyExists and serve snapshot-consistent
// queries: an event present at call start is never omitted and a query never
// observes a half-written event.
type Store interface {
	// Append stores a new event. Re-appending an already stored ID returns an
	// error wrapping apierrors.ErrAlreadyExists so that at-least-once sources
	// can safely retry.
	Append(ctx context.Context, event types.DeploymentEvent) error

	// Query returns all events matching the filter, ordered by timestamp
	// descending. Events with equal timestamps are ordered
	// most-recently-appended-first so that pagination is deterministic.
	Query(ctx context.Context, filter types.EventFilter) ([]types.DeploymentEvent, error)

	// Get returns the stored event with the given ID, or
	// apierrors.ErrNotFound.
	Get(ctx context.Context, id string) (*types.DeploymentEvent, error)

	// FilterOptions returns the distinct services and environments currently
	// present in the store.
	FilterOptions(ctx context.Context) (types.EventFilterOptions, error)
}
