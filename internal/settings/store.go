// Package settings keeps the per-owner notification configuration. Owners
// that never saved anything get defaults; updates replace the whole record
// rather than patching it.
package settings

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pipewatch/pipewatch/internal/types"
)

type Store struct {
	mu      sync.RWMutex
	byOwner map[uuid.UUID]types.NotificationSettings
}

func NewStore() *Store {
	return &Store{byOwner: make(map[uuid.UUID]types.NotificationSettings)}
}

// Get returns the owner's current settings, falling back to defaults for
// unknown owners.
func (s *Store) Get(ctx context.Context, ownerID uuid.UUID) (types.NotificationSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if current, ok := s.byOwner[ownerID]; ok {
		return current, nil
	}
	return types.DefaultNotificationSettings(ownerID), nil
}

// Update replaces the owner's settings entirely.
func (s *Store) Update(ctx context.Context, ownerID uuid.UUID, next types.NotificationSettings) error {
	next.OwnerID = ownerID
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byOwner[ownerID] = next
	return nil
}

// Owners returns the IDs of all owners with stored settings. New events are
// evaluated against each of them.
func (s *Store) Owners(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owners := make([]uuid.UUID, 0, len(s.byOwner))
	for ownerID := range s.byOwner {
		owners = append(owners, ownerID)
	}
	return owners, nil
}
