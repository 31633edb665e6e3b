package eventstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pipewatch/pipewatch/internal/apierrors"
	"github.com/pipewatch/pipewatch/internal/filter"
	"github.com/pipewatch/pipewatch/internal/types"
)

// Memory is the in-memory Store implementation. Appends serialize on a mutex
// and publish a fresh immutable snapshot through an atomic pointer, so queries
// never block on writers and always observe a consistent view.
type Memory struct {
	mu       sync.Mutex
	ids      map[string]struct{}
	snapshot atomic.Pointer[[]types.DeploymentEvent]
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	store := Memory{ids: make(map[string]struct{})}
	store.snapshot.Store(&[]types.DeploymentEvent{})
	return &store
}

func (s *Memory) Append(ctx context.Context, event types.DeploymentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[event.ID]; exists {
		return fmt.Errorf("%w: event %v", apierrors.ErrAlreadyExists, event.ID)
	}

	current := *s.snapshot.Load()
	next := make([]types.DeploymentEvent, len(current), len(current)+1)
	copy(next, current)
	next = append(next, event)

	s.ids[event.ID] = struct{}{}
	s.snapshot.Store(&next)
	return nil
}

func (s *Memory) Query(ctx context.Context, f types.EventFilter) ([]types.DeploymentEvent, error) {
	// reverse the append order so that filter.Apply's stable sort breaks
	// timestamp ties most-recently-appended-first
	events := *s.snapshot.Load()
	reversed := make([]types.DeploymentEvent, len(events))
	for i, event := range events {
		reversed[len(events)-1-i] = event
	}
	return filter.Apply(reversed, f), nil
}

func (s *Memory) Get(ctx context.Context, id string) (*types.DeploymentEvent, error) {
	for _, event := range *s.snapshot.Load() {
		if event.ID == id {
			return &event, nil
		}
	}
	return nil, fmt.Errorf("%w: event %v", apierrors.ErrNotFound, id)
}

func (s *Memory) FilterOptions(ctx context.Context) (types.EventFilterOptions, error) {
	services := make(map[types.Provider]struct{})
	environments := make(map[string]struct{})
	for _, event := range *s.snapshot.Load() {
		services[event.Service] = struct{}{}
		if event.Environment != "" {
			environments[event.Environment] = struct{}{}
		}
	}

	options := types.EventFilterOptions{
		Services:     make([]types.Provider, 0, len(services)),
		Environments: make([]string, 0, len(environments)),
	}
	for service := range services {
		options.Services = append(options.Services, service)
	}
	for environment := range environments {
		options.Environments = append(options.Environments, environment)
	}
	sort.Slice(options.Services, func(i, j int) bool { return options.Services[i] < options.Services[j] })
	sort.Strings(options.Environments)
	return options, nil
}
