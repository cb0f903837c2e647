package pomodoro

import (
	"context"
	"time"
)

// Runner drives a Timer from the wall clock, one Tick per interval.
type Runner struct {
	timer    *Timer
	interval time.Duration
	onTick   func(State)
}

func NewRunner(timer *Timer, onTick func(State)) *Runner {
	return &Runner{timer: timer, interval: time.Second, onTick: onTick}
}

// Run ticks until ctx is done. The timer is started if it is paused.
func (r *Runner) Run(ctx context.Context) error {
	if !r.timer.Running() {
		r.timer.Toggle()
	}
	if r.onTick != nil {
		r.onTick(r.timer.State())
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.timer.Tick()
			if r.onTick != nil {
				r.onTick(r.timer.State())
			}
		}
	}
}
