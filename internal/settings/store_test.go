package settings_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/pipewatch/pipewatch/internal/settings"
	"github.com/pipewatch/pipewatch/internal/types"
)

func TestStore_UnknownOwnerGetsDefaults(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := settings.NewStore()
	ownerID := uuid.New()

	current, err := store.Get(ctx, ownerID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(current).To(Equal(types.DefaultNotificationSettings(ownerID)))
	g.Expect(current.NotifyOnFailure).To(BeTrue())
	g.Expect(current.SlackEnabled).To(BeFalse())

	// reading defaults does not register the owner
	owners, err := store.Owners(ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(owners).To(BeEmpty())
}

func TestStore_UpdateReplacesEntirely(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := settings.NewStore()
	ownerID := uuid.New()

	g.Expect(store.Update(ctx, ownerID, types.NotificationSettings{
		NotifyOnFailure: true,
		NotifyOnSuccess: true,
		SlackEnabled:    true,
		SlackChannel:    "#ops",
		EmailEnabled:    true,
		EmailRecipients: []string{"ops@example.com"},
	})).To(Succeed())

	// a partial-looking update still replaces the whole record
	g.Expect(store.Update(ctx, ownerID, types.NotificationSettings{
		NotifyOnFailure: true,
	})).To(Succeed())

	current, err := store.Get(ctx, ownerID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(current.OwnerID).To(Equal(ownerID))
	g.Expect(current.NotifyOnFailure).To(BeTrue())
	g.Expect(current.NotifyOnSuccess).To(BeFalse())
	g.Expect(current.SlackEnabled).To(BeFalse())
	g.Expect(current.SlackChannel).To(BeEmpty())
	g.Expect(current.EmailRecipients).To(BeEmpty())
}

func TestStore_Owners(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	store := settings.NewStore()

	ownerA := uuid.New()
	ownerB := uuid.New()
	g.Expect(store.Update(ctx, ownerA, types.NotificationSettings{NotifyOnFailure: true})).To(Succeed())
	g.Expect(store.Update(ctx, ownerB, types.NotificationSettings{NotifyOnSuccess: true})).To(Succeed())

	owners, err := store.Owners(ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(owners).To(ConsistOf(ownerA, ownerB))
}
