// Package inbox tracks per-owner notification items and their read state.
// Different owners' inboxes are fully independent: each inbox serializes its
// own writers and never blocks another owner's reads.
package inbox

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pipewatch/pipewatch/internal/apierrors"
	"github.com/pipewatch/pipewatch/internal/types"
)

// Manager hands out one Inbox per owner, creating it on first use.
type Manager struct {
	mu      sync.Mutex
	byOwner map[uuid.UUID]*Inbox
}

func NewManager() *Manager {
	return &Manager{byOwner: make(map[uuid.UUID]*Inbox)}
}

func (m *Manager) ForOwner(ownerID uuid.UUID) *Inbox {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byOwner[ownerID]; ok {
		return existing
	}
	created := &Inbox{}
	m.byOwner[ownerID] = created
	return created
}

type Inbox struct {
	mu    sync.RWMutex
	items []types.NotificationItem
}

// Accept creates a new item from a dispatch. Repeated identical alerts are
// accepted as separate items; rate limiting is left to the caller, which can
// consult HasItemForEvent first.
func (i *Inbox) Accept(ctx context.Context, dispatch types.NotificationDispatch) (types.NotificationItem, error) {
	item := types.NotificationItem{
		ID:            uuid.New(),
		SourceEventID: dispatch.SourceEventID,
		Title:         dispatch.Title,
		Message:       dispatch.Message,
		Timestamp:     dispatch.Timestamp,
		Severity:      dispatch.Severity,
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, item)
	return item, nil
}

// MarkAsRead flips an item to read. Marking an already-read item is a no-op
// success; an unknown ID returns apierrors.ErrNotFound.
func (i *Inbox) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx := range i.items {
		if i.items[idx].ID == id {
			i.items[idx].Read = true
			return nil
		}
	}
	return fmt.Errorf("%w: notification %v", apierrors.ErrNotFound, id)
}

// ClearAll removes every item and returns how many were removed.
func (i *Inbox) ClearAll(ctx context.Context) (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	count := len(i.items)
	i.items = nil
	return count, nil
}

// List returns all items ordered by timestamp descending, unread before read
// among equal timestamps.
func (i *Inbox) List(ctx context.Context) ([]types.NotificationItem, error) {
	i.mu.RLock()
	result := make([]types.NotificationItem, len(i.items))
	copy(result, i.items)
	i.mu.RUnlock()

	sort.SliceStable(result, func(a, b int) bool {
		if !result[a].Timestamp.Equal(result[b].Timestamp) {
			return result[a].Timestamp.After(result[b].Timestamp)
		}
		return !result[a].Read && result[b].Read
	})
	return result, nil
}

// UnreadCount returns the number of unread items.
func (i *Inbox) UnreadCount(ctx context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	count := 0
	for _, item := range i.items {
		if !item.Read {
			count++
		}
	}
	return count, nil
}

// HasItemForEvent reports whether an item referencing the given source event
// with the given title already exists. Used to dedupe recurring alerts like
// stall warnings.
func (i *Inbox) HasItemForEvent(ctx context.Context, sourceEventID, title string) (bool, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, item := range i.items {
		if item.SourceEventID == sourceEventID && item.Title == title {
			return true, nil
		}
	}
	return false, nil
}
