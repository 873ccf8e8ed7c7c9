package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type sweepFunc func(ctx context.Context) (int, error)

// Sweeper runs the overdue sweep once on start and then on every tick.
type Sweeper struct {
	sweep    sweepFunc
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(svc *Service, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		sweep:    svc.SweepOverdue,
		interval: interval,
		log:      log.Named("sweeper"),
	}
}

// Run blocks until ctx is done. A non-positive interval sweeps only once.
func (sw *Sweeper) Run(ctx context.Context) error {
	sw.runOnce(ctx)
	if sw.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sw.runOnce(ctx)
		}
	}
}

func (sw *Sweeper) runOnce(ctx context.Context) {
	n, err := sw.sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			sw.log.Error("sweep", zap.Error(err))
		}
		return
	}
	sw.log.Debug("sweep", zap.Int("marked", n))
}
