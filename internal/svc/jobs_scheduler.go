package svc

import (
	"github.com/pipewatch/pipewatch/internal/env"
	"github.com/pipewatch/pipewatch/internal/jobs"
	"github.com/pipewatch/pipewatch/internal/notify"
)

func (r *Registry) GetJobsScheduler() *jobs.Scheduler {
	return r.jobsScheduler
}

func (r *Registry) createJobsScheduler() (*jobs.Scheduler, error) {
	scheduler, err := jobs.NewScheduler(
		r.GetLogger(), r.GetEventStore(), r.GetSettingsStore(), r.GetInboxManager(), r.GetTracerProvider(),
	)
	if err != nil {
		return nil, err
	}

	if cron := env.StaleDeploymentCheckCron(); cron != nil {
		err = scheduler.RegisterCronJob(
			*cron,
			jobs.NewJob(
				"StaleDeploymentCheck",
				notify.RunStaleDeploymentCheck,
				env.StaleDeploymentCheckTimeout(),
			),
		)
		if err != nil {
			return nil, err
		}
	}

	return scheduler, nil
}
