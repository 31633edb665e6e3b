package svc

import (
	"github.com/pipewatch/pipewatch/internal/env"
	"github.com/pipewatch/pipewatch/internal/eventstore"
	"github.com/pipewatch/pipewatch/internal/inbox"
	"github.com/pipewatch/pipewatch/internal/jobs"
	"github.com/pipewatch/pipewatch/internal/mail"
	"github.com/pipewatch/pipewatch/internal/notify"
	"github.com/pipewatch/pipewatch/internal/settings"
	"github.com/pipewatch/pipewatch/internal/types"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry wires the engine's services together. Everything is created
// eagerly at startup so that misconfiguration fails fast.
type Registry struct {
	logger        *zap.Logger
	eventStore    eventstore.Store
	settingsStore *settings.Store
	inboxes       *inbox.Manager
	mailer        mail.Mailer
	dispatcher    *notify.Dispatcher
	processor     *notify.Processor
	jobsScheduler *jobs.Scheduler
}

func NewDefault(logger *zap.Logger) (*Registry, error) {
	r := Registry{
		logger:        logger,
		eventStore:    eventstore.NewMemory(),
		settingsStore: settings.NewStore(),
		inboxes:       inbox.NewManager(),
	}

	mailer, err := mail.New(env.GetMailerConfig())
	if err != nil {
		return nil, err
	}
	r.mailer = mailer

	sinks := map[types.NotificationChannel]notify.Sink{
		types.NotificationChannelEmail: notify.NewEmailSink(r.mailer),
	}
	if url := env.SlackWebhookURL(); url != nil {
		sinks[types.NotificationChannelSlack] = notify.NewSlackSink(*url)
	}
	r.dispatcher = notify.NewDispatcher(sinks, env.DeliveryTimeout(), logger)
	r.processor = notify.NewProcessor(r.eventStore, r.settingsStore, r.inboxes, r.dispatcher, logger)

	if scheduler, err := r.createJobsScheduler(); err != nil {
		return nil, err
	} else {
		r.jobsScheduler = scheduler
	}

	return &r, nil
}

func (r *Registry) GetLogger() *zap.Logger {
	return r.logger
}

func (r *Registry) GetEventStore() eventstore.Store {
	return r.eventStore
}

func (r *Registry) GetSettingsStore() *settings.Store {
	return r.settingsStore
}

func (r *Registry) GetInboxManager() *inbox.Manager {
	return r.inboxes
}

func (r *Registry) GetMailer() mail.Mailer {
	return r.mailer
}

func (r *Registry) GetDispatcher() *notify.Dispatcher {
	return r.dispatcher
}

func (r *Registry) GetProcessor() *notify.Processor {
	return r.processor
}

func (r *Registry) GetTracerProvider() trace.TracerProvider {
	// tracing export is not wired up yet, jobs run with a noop provider
	return noop.NewTracerProvider()
}

func (r *Registry) Shutdown() error {
	var combined error
	if r.jobsScheduler != nil {
		combined = multierr.Append(combined, r.jobsScheduler.Shutdown())
	}
	return combined
}
