// Package filter evaluates compound event filters. Predicates are pure and
// total: an empty or contradictory filter yields an empty match, never an
// error.
package filter

import (
	"sort"
	"strings"

	"github.com/pipewatch/pipewatch/internal/types"
)

// Predicate reports whether a single event passes one filter criterion.
type Predicate func(types.DeploymentEvent) bool

// And combines predicates conjunctively.
func And(predicates ...Predicate) Predicate {
	return func(event types.DeploymentEvent) bool {
		for _, p := range predicates {
			if !p(event) {
				return false
			}
		}
		return true
	}
}

// Matches builds the combined predicate for a filter. Unset fields are
// unconstrained. A date range with DateFrom after DateTo matches nothing.
func Matches(f types.EventFilter) Predicate {
	predicates := make([]Predicate, 0, 4)
	if f.Service != nil {
		predicates = append(predicates, serviceIs(*f.Service))
	}
	if f.Status != nil {
		predicates = append(predicates, statusIs(*f.Status))
	}
	if f.DateFrom != nil || f.DateTo != nil {
		predicates = append(predicates, inDateRange(f))
	}
	if f.SearchText != nil && *f.SearchText != "" {
		predicates = append(predicates, containsText(*f.SearchText))
	}
	return And(predicates...)
}

// Apply returns the events matching the filter, ordered by timestamp
// descending. The input order is used as tie-break: among equal timestamps,
// earlier input positions sort first.
func Apply(events []types.DeploymentEvent, f types.EventFilter) []types.DeploymentEvent {
	matches := Matches(f)
	result := make([]types.DeploymentEvent, 0, len(events))
	for _, event := range events {
		if matches(event) {
			result = append(result, event)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

func serviceIs(service types.Provider) Predicate {
	return func(event types.DeploymentEvent) bool {
		return event.Service == service
	}
}

func statusIs(status types.DeploymentStatus) Predicate {
	return func(event types.DeploymentEvent) bool {
		return event.Status == status
	}
}

func inDateRange(f types.EventFilter) Predicate {
	return func(event types.DeploymentEvent) bool {
		if f.DateFrom != nil && event.Timestamp.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && event.Timestamp.After(*f.DateTo) {
			return false
		}
		return true
	}
}

// containsText matches the search text case-insensitively against commit
// message, deployer and service.
func containsText(text string) Predicate {
	needle := strings.ToLower(text)
	return func(event types.DeploymentEvent) bool {
		return strings.Contains(strings.ToLower(event.CommitMessage), needle) ||
			strings.Contains(strings.ToLower(event.Deployer), needle) ||
			strings.Contains(strings.ToLower(string(event.Service)), needle)
	}
}
