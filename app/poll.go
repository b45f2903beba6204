package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval matches the refresh cadence of the conversation view.
const DefaultPollInterval = 3 * time.Second

// Poller runs a tick function on a fixed interval until its context is
// cancelled. No backoff, no jitter: a failed tick is logged and the next
// tick proceeds on schedule.
type Poller struct {
	interval time.Duration
	tick     func(ctx context.Context) error
	log      *logrus.Logger
}

// NewPoller creates a poller. A non-positive interval falls back to the
// default.
func NewPoller(interval time.Duration, tick func(ctx context.Context) error, log *logrus.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval, tick: tick, log: log}
}

// Start blocks, ticking until ctx is cancelled. The ticker is always
// released on return, so a torn-down view leaves no orphaned timer.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.tick(ctx); err != nil && ctx.Err() == nil {
				p.log.WithError(err).Warn("poll tick failed")
			}
		}
	}
}

// Run starts the poller in the background and returns its cancel func.
func (p *Poller) Run(ctx context.Context) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go p.Start(ctx)
	return cancel
}
