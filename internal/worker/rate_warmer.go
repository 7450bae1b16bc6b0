// Package worker holds background loops started next to the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/contextx"
	"rate_audit/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultRequestInterval = 500 * time.Millisecond

type RateRefresher interface {
	SeriesCategories() []value.Category
	Refresh(ctx context.Context, category value.Category) (entity.ReferenceRate, error)
}

// RateWarmer periodically re-fetches every series-backed reference rate so
// the cache never serves a value older than one interval and evaluations
// rarely wait on the SGS API.
type RateWarmer struct {
	rates    RateRefresher
	interval time.Duration

	requestInterval time.Duration
	lastRequest     time.Time
}

func NewRateWarmer(rates RateRefresher, interval time.Duration) *RateWarmer {
	return &RateWarmer{
		rates:           rates,
		interval:        interval,
		requestInterval: defaultRequestInterval,
	}
}

// WithRequestInterval sets the minimum pause between two upstream calls.
func (w *RateWarmer) WithRequestInterval(d time.Duration) *RateWarmer {
	w.requestInterval = d
	return w
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (w *RateWarmer) Run(ctx context.Context) error {
	logger(ctx).Info("rate warmer started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.refreshAll(ctx)

		select {
		case <-ctx.Done():
			logger(ctx).Info("rate warmer stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (w *RateWarmer) refreshAll(ctx context.Context) {
	var refreshed int

	for _, category := range w.rates.SeriesCategories() {
		if err := w.waitForNextSlot(ctx); err != nil {
			return
		}

		if _, err := w.rates.Refresh(ctx, category); err != nil {
			logger(ctx).Warn("rate refresh failed",
				slog.String(logx.FieldCategory, category.String()),
				logx.Error(err),
			)

			continue
		}

		refreshed++
	}

	logger(ctx).Debug("rate refresh cycle completed", slog.Int("refreshed", refreshed))
}

func (w *RateWarmer) waitForNextSlot(ctx context.Context) error {
	if w.lastRequest.IsZero() {
		w.lastRequest = time.Now()
		return nil
	}

	elapsed := time.Since(w.lastRequest)
	if elapsed >= w.requestInterval {
		w.lastRequest = time.Now()
		return nil
	}

	select {
	case <-time.After(w.requestInterval - elapsed):
		w.lastRequest = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
