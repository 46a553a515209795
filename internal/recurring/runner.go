package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Schedule is the cron spec driving the processor while the process is
// alive. The scheduler is not durable: occurrences elapsing while the
// process is down are only recovered on the next tick, one per rule.
const Schedule = "@hourly"

// Runner drives a Processor once at startup and then on a fixed wall-clock
// interval for the lifetime of the process.
type Runner struct {
	cron *cron.Cron
	proc *Processor
	log  zerolog.Logger
	now  func() time.Time
}

// NewRunner creates a runner ticking the processor per Schedule.
func NewRunner(proc *Processor, log zerolog.Logger) (*Runner, error) {
	r := &Runner{
		cron: cron.New(),
		proc: proc,
		log:  log,
		now:  time.Now,
	}
	if _, err := r.cron.AddFunc(Schedule, r.tick); err != nil {
		return nil, fmt.Errorf("NewRunner: registering schedule: %w", err)
	}
	return r, nil
}

// Start runs one immediate pass, then starts the cron loop.
func (r *Runner) Start() {
	r.tick()
	r.cron.Start()
	r.log.Info().Str("schedule", Schedule).Msg("Recurring scheduler started")
}

// Stop stops the cron loop and waits for a running tick to finish.
func (r *Runner) Stop() context.Context {
	return r.cron.Stop()
}

func (r *Runner) tick() {
	now := r.now()
	if n := r.proc.ProcessDue(now); n > 0 {
		r.log.Info().Int("materialized", n).Time("now", now).Msg("Recurring pass complete")
	}
}
