package service

import (
	"context"
	"log/slog"
	"time"
)

// DefaultJanitorInterval is how often expired revocation records are
// purged when config does not say otherwise.
const DefaultJanitorInterval = 24 * time.Hour

// Janitor periodically deletes revocation records whose tokens have
// expired on their own. Losing a sweep is harmless; the next one picks
// up the same rows, and concurrent instances merely race on deletes.
type Janitor struct {
	revocations *RevocationService
	interval    time.Duration
	log         *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewJanitor(revocations *RevocationService, interval time.Duration, log *slog.Logger) *Janitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &Janitor{revocations: revocations, interval: interval, log: log}
}

// Start launches the background sweep loop. One sweep runs immediately
// so a long-stopped instance catches up without waiting a full interval.
func (j *Janitor) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)

		j.sweep(ctx)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.sweep(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (j *Janitor) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
}

func (j *Janitor) sweep(ctx context.Context) {
	deleted, err := j.revocations.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		j.log.Error("revocation sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		j.log.Info("purged expired revocations", "deleted", deleted)
	}
}
