package notify_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/pipewatch/pipewatch/internal/notify"
	"github.com/pipewatch/pipewatch/internal/types"
	"go.uber.org/zap"
)

func sampleEvent(status types.DeploymentStatus) types.DeploymentEvent {
	return types.DeploymentEvent{
		ID:            "aws/deploy-42",
		Timestamp:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Service:       types.ProviderAWS,
		Status:        status,
		CommitMessage: "fix rounding in refunds",
		Deployer:      "mona",
		Environment:   "production",
		Branch:        "main",
	}
}

func TestEvaluate_DisabledTriggerSuppresses(t *testing.T) {
	g := NewWithT(t)
	settings := types.DefaultNotificationSettings(uuid.New())
	settings.NotifyOnSuccess = false
	settings.SlackEnabled = true
	settings.SlackChannel = "#ops"

	dispatches := notify.Evaluate(sampleEvent(types.DeploymentStatusSuccess), settings, zap.NewNop())
	g.Expect(dispatches).To(BeEmpty())
}

func TestEvaluate_FailureToSlack(t *testing.T) {
	g := NewWithT(t)
	ownerID := uuid.New()
	settings := types.NotificationSettings{
		OwnerID:         ownerID,
		NotifyOnFailure: true,
		SlackEnabled:    true,
		SlackChannel:    "#ops",
	}

	dispatches := notify.Evaluate(sampleEvent(types.DeploymentStatusFailure), settings, zap.NewNop())
	g.Expect(dispatches).To(HaveLen(1))
	g.Expect(dispatches[0].OwnerID).To(Equal(ownerID))
	g.Expect(dispatches[0].SourceEventID).To(Equal("aws/deploy-42"))
	g.Expect(dispatches[0].Channel).To(Equal(types.NotificationChannelSlack))
	g.Expect(dispatches[0].Address).To(Equal("#ops"))
	g.Expect(dispatches[0].Severity).To(Equal(types.SeverityCritical))
	g.Expect(dispatches[0].Title).To(Equal("Deployment Failed"))
	g.Expect(dispatches[0].Message).To(
		Equal("aws deployment to production failed: fix rounding in refunds"))
}

func TestEvaluate_BothChannels(t *testing.T) {
	g := NewWithT(t)
	settings := types.NotificationSettings{
		OwnerID:         uuid.New(),
		NotifyOnSuccess: true,
		SlackEnabled:    true,
		SlackChannel:    "#deployments",
		EmailEnabled:    true,
		EmailRecipients: []string{"ops@example.com", "dev@example.com"},
	}

	dispatches := notify.Evaluate(sampleEvent(types.DeploymentStatusSuccess), settings, zap.NewNop())
	g.Expect(dispatches).To(HaveLen(2))
	g.Expect(dispatches[0].Channel).To(Equal(types.NotificationChannelSlack))
	g.Expect(dispatches[0].Severity).To(Equal(types.SeverityInfo))
	g.Expect(dispatches[1].Channel).To(Equal(types.NotificationChannelEmail))
	g.Expect(dispatches[1].Recipients).To(Equal([]string{"ops@example.com", "dev@example.com"}))
	g.Expect(dispatches[1].Title).To(Equal("Deployment Successful"))
}

func TestEvaluate_EnabledChannelWithoutAddress(t *testing.T) {
	g := NewWithT(t)
	settings := types.NotificationSettings{
		OwnerID:            uuid.New(),
		NotifyOnInProgress: true,
		SlackEnabled:       true,
		EmailEnabled:       true,
	}

	dispatches := notify.Evaluate(sampleEvent(types.DeploymentStatusInProgress), settings, zap.NewNop())
	g.Expect(dispatches).To(BeEmpty())
}

func TestEvaluate_SeverityByStatus(t *testing.T) {
	tests := []struct {
		status   types.DeploymentStatus
		severity types.Severity
	}{
		{types.DeploymentStatusFailure, types.SeverityCritical},
		{types.DeploymentStatusSuccess, types.SeverityInfo},
		{types.DeploymentStatusInProgress, types.SeverityInfo},
	}
	settings := types.NotificationSettings{
		OwnerID:            uuid.New(),
		NotifyOnSuccess:    true,
		NotifyOnFailure:    true,
		NotifyOnInProgress: true,
		SlackEnabled:       true,
		SlackChannel:       "#ops",
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			g := NewWithT(t)
			dispatches := notify.Evaluate(sampleEvent(tc.status), settings, zap.NewNop())
			g.Expect(dispatches).To(HaveLen(1))
			g.Expect(dispatches[0].Severity).To(Equal(tc.severity))
		})
	}
}
