package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/domain/service"
)

// NapWatchdog periodically flags naps that have been open for suspiciously
// long, which usually means the caregiver forgot to end one. It only logs;
// it never mutates tracker state.
type NapWatchdog struct {
	tracker     service.Tracker
	cron        *cron.Cron
	interval    time.Duration
	maxDuration time.Duration
	logger      *zap.Logger
}

// NewNapWatchdog creates a new nap watchdog
func NewNapWatchdog(tracker service.Tracker, checkInterval, maxDuration time.Duration, logger *zap.Logger) *NapWatchdog {
	return &NapWatchdog{
		tracker:     tracker,
		cron:        cron.New(),
		interval:    checkInterval,
		maxDuration: maxDuration,
		logger:      logger,
	}
}

// Start starts the watchdog
func (w *NapWatchdog) Start() error {
	cronExpr := fmt.Sprintf("@every %s", w.interval.String())

	w.logger.Info("starting nap watchdog",
		zap.Duration("interval", w.interval),
		zap.Duration("max_duration", w.maxDuration))

	_, err := w.cron.AddFunc(cronExpr, func() {
		w.checkNaps()
	})

	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.cron.Start()
	return nil
}

// Stop stops the watchdog
func (w *NapWatchdog) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("nap watchdog stopped")
}

// checkNaps logs every active nap open longer than the configured maximum
func (w *NapWatchdog) checkNaps() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	naps, err := w.tracker.ActiveNaps(ctx)
	if err != nil {
		w.logger.Warn("nap watchdog could not read active naps", zap.Error(err))
		return
	}

	for _, nap := range naps {
		elapsed := time.Since(nap.StartTime)
		if elapsed > w.maxDuration {
			w.logger.Warn("nap has been open for a long time",
				zap.String("nap_id", nap.ID.String()),
				zap.String("baby_id", nap.BabyID.String()),
				zap.Duration("elapsed", elapsed))
		}
	}
}
