package jobs

import (
	"context"
	"time"
)

type Job struct {
	name    string
	run     func(ctx context.Context) error
	timeout time.Duration
}

func NewJob(name string, run func(ctx context.Context) error, timeout time.Duration) Job {
	return Job{name: name, run: run, timeout: timeout}
}

func (j *Job) Run(ctx context.Context) error {
	return j.run(ctx)
}
