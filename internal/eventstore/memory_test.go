package eventstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/pipewatch/pipewatch/internal/apierrors"
	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/types"
	"github.com/pipewatch/pipewatch/internal/util"
)

func newEvent(id string, timestamp time.Time) types.DeploymentEvent {
	return types.DeploymentEvent{
		ID:            id,
		Timestamp:     timestamp,
		Service:       types.ProviderGithub,
		Status:        types.DeploymentStatusSuccess,
		CommitMessage: "commit for " + id,
		Deployer:      "Sarah Chen",
		Environment:   "production",
		Branch:        "main",
	}
}

func TestMemory_AppendAndQueryRoundTrip(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	event := newEvent("github/run-1", time.Now().UTC().Truncate(time.Second))
	g.Expect(store.Append(ctx, event)).To(Succeed())

	result, err := store.Query(ctx, types.EventFilter{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(HaveExactElements(event))
}

func TestMemory_AppendRejectsDuplicateID(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	event := newEvent("github/run-1", time.Now())
	g.Expect(store.Append(ctx, event)).To(Succeed())

	err := store.Append(ctx, event)
	g.Expect(err).To(MatchError(apierrors.ErrAlreadyExists))

	result, err := store.Query(ctx, types.EventFilter{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(HaveLen(1))
}

func TestMemory_QueryOrdersByTimestampDescending(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	now := time.Now()
	g.Expect(store.Append(ctx, newEvent("e1", now.Add(-8*time.Hour)))).To(Succeed())
	g.Expect(store.Append(ctx, newEvent("e2", now.Add(-2*time.Hour)))).To(Succeed())
	g.Expect(store.Append(ctx, newEvent("e3", now.Add(-5*time.Hour)))).To(Succeed())

	result, err := store.Query(ctx, types.EventFilter{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(HaveLen(3))
	g.Expect(result[0].ID).To(Equal("e2"))
	g.Expect(result[1].ID).To(Equal("e3"))
	g.Expect(result[2].ID).To(Equal("e1"))
}

func TestMemory_EqualTimestampsOrderedByInsertion(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	timestamp := time.Now()
	g.Expect(store.Append(ctx, newEvent("first", timestamp))).To(Succeed())
	g.Expect(store.Append(ctx, newEvent("second", timestamp))).To(Succeed())
	g.Expect(store.Append(ctx, newEvent("third", timestamp))).To(Succeed())

	result, err := store.Query(ctx, types.EventFilter{})
	g.Expect(err).NotTo(HaveOccurred())
	// most recently appended first among ties
	g.Expect(result[0].ID).To(Equal("third"))
	g.Expect(result[1].ID).To(Equal("second"))
	g.Expect(result[2].ID).To(Equal("first"))
}

func TestMemory_StatusFilterScenario(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	now := time.Now()
	events := []types.DeploymentEvent{
		{ID: "e1", Timestamp: now.Add(-2 * time.Hour), Service: types.ProviderGithub, Status: types.DeploymentStatusSuccess},
		{ID: "e2", Timestamp: now.Add(-5 * time.Hour), Service: types.ProviderVercel, Status: types.DeploymentStatusInProgress},
		{ID: "e3", Timestamp: now.Add(-8 * time.Hour), Service: types.ProviderAWS, Status: types.DeploymentStatusFailure},
		{ID: "e4", Timestamp: now.Add(-24 * time.Hour), Service: types.ProviderAzure, Status: types.DeploymentStatusSuccess},
	}
	for _, event := range events {
		g.Expect(store.Append(ctx, event)).To(Succeed())
	}

	result, err := store.Query(ctx, types.EventFilter{Status: util.PtrTo(types.DeploymentStatusFailure)})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(HaveLen(1))
	g.Expect(result[0].ID).To(Equal("e3"))
}

func TestMemory_SnapshotConsistencyUnderConcurrentAppends(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	const preloaded = 100
	for i := range preloaded {
		g.Expect(store.Append(ctx, newEvent(fmt.Sprintf("pre-%d", i), time.Now()))).To(Succeed())
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			_ = store.Append(ctx, newEvent(fmt.Sprintf("concurrent-%d", i), time.Now()))
		}
	}()

	// an event present at call start must never be omitted
	for range 200 {
		result, err := store.Query(ctx, types.EventFilter{})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(len(result)).To(BeNumerically(">=", preloaded))
	}

	close(stop)
	wg.Wait()
}

func TestMemory_Get(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	event := newEvent("github/run-1", time.Now())
	g.Expect(store.Append(ctx, event)).To(Succeed())

	found, err := store.Get(ctx, "github/run-1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(found.ID).To(Equal(event.ID))

	_, err = store.Get(ctx, "github/run-2")
	g.Expect(err).To(MatchError(apierrors.ErrNotFound))
}

func TestMemory_FilterOptions(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := eventstore.NewMemory()

	now := time.Now()
	g.Expect(store.Append(ctx, types.DeploymentEvent{
		ID: "e1", Timestamp: now, Service: types.ProviderVercel, Environment: "staging",
	})).To(Succeed())
	g.Expect(store.Append(ctx, types.DeploymentEvent{
		ID: "e2", Timestamp: now, Service: types.ProviderGithub, Environment: "production",
	})).To(Succeed())
	g.Expect(store.Append(ctx, types.DeploymentEvent{
		ID: "e3", Timestamp: now, Service: types.ProviderGithub, Environment: "production",
	})).To(Succeed())

	options, err := store.FilterOptions(ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(options.Services).To(Equal([]types.Provider{types.ProviderGithub, types.ProviderVercel}))
	g.Expect(options.Environments).To(Equal([]string{"production", "staging"}))
}
