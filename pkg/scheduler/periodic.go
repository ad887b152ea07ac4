package scheduler

import (
	"context"
	"time"
)

// MinInterval is the shortest supported period between two runs.
const MinInterval = 15 * time.Minute

// Job is one unit of scheduled work.
type Job func(ctx context.Context)

type Option func(*Periodic)

// WithMinInterval lowers the interval floor (tests, local development).
func WithMinInterval(d time.Duration) Option {
	return func(p *Periodic) { p.minInterval = d }
}

// WithRunOnStart makes Run execute the job immediately instead of waiting a
// full interval first.
func WithRunOnStart() Option {
	return func(p *Periodic) { p.runOnStart = true }
}

// Periodic runs a job on a fixed interval. At most one run is outstanding at
// any time: a Trigger while a run is in flight is coalesced into a single
// follow-up run, never stacked.
type Periodic struct {
	interval    time.Duration
	minInterval time.Duration
	runOnStart  bool
	job         Job
	trigger     chan struct{}
}

func NewPeriodic(interval time.Duration, job Job, opts ...Option) *Periodic {
	p := &Periodic{
		interval:    interval,
		minInterval: MinInterval,
		job:         job,
		trigger:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.interval < p.minInterval {
		p.interval = p.minInterval
	}
	return p
}

// Interval is the effective period after clamping.
func (p *Periodic) Interval() time.Duration {
	return p.interval
}

// Trigger requests a one-shot run. It never blocks.
func (p *Periodic) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled.
func (p *Periodic) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if p.runOnStart {
		p.job(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.trigger:
		}
		if ctx.Err() != nil {
			return
		}
		p.job(ctx)
	}
}
