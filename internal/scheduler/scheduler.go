// Package scheduler
package scheduler

import (
	"context"
	"time"

	"hoststatus/internal/logger"
	"hoststatus/internal/status"
)

type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) status.Snapshot
	sink     func(status.Snapshot)
}

func New(interval time.Duration, log logger.Logger, sample func(context.Context) status.Snapshot, sink func(status.Snapshot)) *Scheduler {
	return &Scheduler{
		interval: interval,
		log:      log,
		sample:   sample,
		sink:     sink,
	}
}

// Start samples once immediately, then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	snap := s.sample(timeoutCtx)
	if errs := snap.Errors(); len(errs) > 0 {
		s.log.Warn("snapshot incomplete", "id", snap.ID, "failed", len(errs))
	} else {
		s.log.Debug("snapshot collected", "id", snap.ID)
	}

	s.sink(snap)
}
