package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/inbox"
	"github.com/pipewatch/pipewatch/internal/notify"
	"github.com/pipewatch/pipewatch/internal/settings"
	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/zap"
)

type staleFixture struct {
	ctx           context.Context
	store         *eventstore.Memory
	settingsStore *settings.Store
	inboxes       *inbox.Manager
}

func newStaleFixture(t *testing.T) *staleFixture {
	t.Helper()
	f := &staleFixture{
		store:         eventstore.NewMemory(),
		settingsStore: settings.NewStore(),
		inboxes:       inbox.NewManager(),
	}
	ctx := internalctx.WithLogger(context.Background(), zap.NewNop())
	ctx = internalctx.WithEventStore(ctx, f.store)
	ctx = internalctx.WithSettingsStore(ctx, f.settingsStore)
	ctx = internalctx.WithInboxManager(ctx, f.inboxes)
	f.ctx = ctx
	return f
}

func (f *staleFixture) addEvent(t *testing.T, event types.DeploymentEvent) {
	t.Helper()
	NewWithT(t).Expect(f.store.Append(f.ctx, event)).To(Succeed())
}

func (f *staleFixture) addOwner(t *testing.T, s types.NotificationSettings) uuid.UUID {
	t.Helper()
	ownerID := uuid.New()
	NewWithT(t).Expect(f.settingsStore.Update(f.ctx, ownerID, s)).To(Succeed())
	return ownerID
}

func TestStaleDeploymentCheck_WarnsOnStuckDeployment(t *testing.T) {
	g := NewWithT(t)
	f := newStaleFixture(t)
	ownerID := f.addOwner(t, types.NotificationSettings{NotifyOnInProgress: true})
	f.addEvent(t, types.DeploymentEvent{
		ID:          "github/run-1",
		Timestamp:   time.Now().Add(-2 * time.Hour),
		Service:     types.ProviderGithub,
		Status:      types.DeploymentStatusInProgress,
		Environment: "production",
		Branch:      "main",
	})

	g.Expect(notify.RunStaleDeploymentCheck(f.ctx)).To(Succeed())

	items, err := f.inboxes.ForOwner(ownerID).List(f.ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(items).To(HaveLen(1))
	g.Expect(items[0].Title).To(Equal("Deployment Stalled"))
	g.Expect(items[0].Severity).To(Equal(types.SeverityWarning))
	g.Expect(items[0].SourceEventID).To(Equal("github/run-1"))
}

func TestStaleDeploymentCheck_WarnsOncePerEvent(t *testing.T) {
	g := NewWithT(t)
	f := newStaleFixture(t)
	ownerID := f.addOwner(t, types.NotificationSettings{NotifyOnInProgress: true})
	f.addEvent(t, types.DeploymentEvent{
		ID:          "github/run-1",
		Timestamp:   time.Now().Add(-2 * time.Hour),
		Service:     types.ProviderGithub,
		Status:      types.DeploymentStatusInProgress,
		Environment: "production",
		Branch:      "main",
	})

	g.Expect(notify.RunStaleDeploymentCheck(f.ctx)).To(Succeed())
	g.Expect(notify.RunStaleDeploymentCheck(f.ctx)).To(Succeed())

	items, err := f.inboxes.ForOwner(ownerID).List(f.ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(items).To(HaveLen(1))
}

func TestStaleDeploymentCheck_SupersededDeploymentIsNotStale(t *testing.T) {
	g := NewWithT(t)
	f := newStaleFixture(t)
	ownerID := f.addOwner(t, types.NotificationSettings{NotifyOnInProgress: true})
	f.addEvent(t, types.DeploymentEvent{
		ID:          "github/run-1",
		Timestamp:   time.Now().Add(-2 * time.Hour),
		Service:     types.ProviderGithub,
		Status:      types.DeploymentStatusInProgress,
		Environment: "production",
		Branch:      "main",
	})
	// a newer event for the same pipeline resolves the earlier one
	f.addEvent(t, types.DeploymentEvent{
		ID:          "github/run-2",
		Timestamp:   time.Now().Add(-1 * time.Hour),
		Service:     types.ProviderGithub,
		Status:      types.DeploymentStatusSuccess,
		Environment: "production",
		Branch:      "main",
	})

	g.Expect(notify.RunStaleDeploymentCheck(f.ctx)).To(Succeed())

	items, err := f.inboxes.ForOwner(ownerID).List(f.ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(items).To(BeEmpty())
}

func TestStaleDeploymentCheck_RespectsOwnerSettings(t *testing.T) {
	g := NewWithT(t)
	f := newStaleFixture(t)
	mutedOwner := f.addOwner(t, types.NotificationSettings{NotifyOnFailure: true})
	f.addEvent(t, types.DeploymentEvent{
		ID:          "aws/deploy-1",
		Timestamp:   time.Now().Add(-3 * time.Hour),
		Service:     types.ProviderAWS,
		Status:      types.DeploymentStatusInProgress,
		Environment: "staging",
		Branch:      "main",
	})

	g.Expect(notify.RunStaleDeploymentCheck(f.ctx)).To(Succeed())

	items, err := f.inboxes.ForOwner(mutedOwner).List(f.ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(items).To(BeEmpty())
}

func TestStaleDeploymentCheck_FreshInProgressIsNotStale(t *testing.T) {
	g := NewWithT(t)
	f := newStaleFixture(t)
	ownerID := f.addOwner(t, types.NotificationSettings{NotifyOnInProgress: true})
	f.addEvent(t, types.DeploymentEvent{
		ID:          "vercel/dpl-1",
		Timestamp:   time.Now().Add(-5 * time.Minute),
		Service:     types.ProviderVercel,
		Status:      types.DeploymentStatusInProgress,
		Environment: "preview",
		Branch:      "feature/checkout",
	})

	g.Expect(notify.RunStaleDeploymentCheck(f.ctx)).To(Succeed())

	items, err := f.inboxes.ForOwner(ownerID).List(f.ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(items).To(BeEmpty())
}
