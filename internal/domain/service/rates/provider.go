// Package rates resolves the market reference rate of a loan category.
package rates

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"rate_audit/internal/domain"
	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/finance"
	"rate_audit/internal/domain/value"
	"rate_audit/internal/infrastructure/bcb"
	"rate_audit/pkg/contextx"
	"rate_audit/pkg/errcodes"
	"rate_audit/pkg/logx"
	"rate_audit/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type SeriesClient interface {
	LatestValue(ctx context.Context, seriesID int) (bcb.Observation, error)
}

type Cache interface {
	Get(ctx context.Context, category value.Category) (entity.ReferenceRate, bool, error)
	Set(ctx context.Context, rate entity.ReferenceRate) error
}

type Provider struct {
	sources Sources
	series  SeriesClient
	cache   Cache
}

func NewProvider(sources Sources, series SeriesClient) *Provider {
	return &Provider{
		sources: sources,
		series:  series,
	}
}

// WithCache puts cache in front of series lookups. Fixed rates are never
// cached.
func (p *Provider) WithCache(cache Cache) *Provider {
	p.cache = cache
	return p
}

// Source reports how category is resolved.
func (p *Provider) Source(category value.Category) (entity.RateSource, bool) {
	source, ok := p.sources[category]
	return source, ok
}

// GetReferenceRate returns the monthly reference rate of category. Any
// failure comes back as an AppError with code ReferenceRateUnavailable.
func (p *Provider) GetReferenceRate(ctx context.Context, category value.Category) (entity.ReferenceRate, error) {
	source, ok := p.sources[category]
	if !ok {
		metrics.ObserveReferenceRateLookup(category.String(), metrics.OutcomeUnmapped)

		return entity.ReferenceRate{}, domain.NewError(
			errcodes.ReferenceRateUnavailable,
			fmt.Sprintf("no reference rate source for category %q", category),
		)
	}

	switch source.Kind {
	case entity.SourceFixed:
		metrics.ObserveReferenceRateLookup(category.String(), metrics.OutcomeFixed)

		return entity.ReferenceRate{
			Category:    category,
			Source:      source,
			MonthlyRate: source.MonthlyRate,
		}, nil
	case entity.SourceSeries:
		return p.fromSeries(ctx, category, source)
	default:
		return entity.ReferenceRate{}, domain.NewError(
			errcodes.ReferenceRateUnavailable,
			fmt.Sprintf("unsupported rate source %q", source.Kind),
		)
	}
}

func (p *Provider) fromSeries(ctx context.Context, category value.Category, source entity.RateSource) (entity.ReferenceRate, error) {
	log := logger(ctx).With(
		slog.String(logx.FieldCategory, category.String()),
		slog.Int(logx.FieldSeriesID, source.SeriesID),
	)

	if p.cache != nil {
		cached, found, err := p.cache.Get(ctx, category)
		if err != nil {
			log.Warn("rate cache get failed", logx.Error(err))
		}

		if found && cached.Source == source {
			metrics.ObserveReferenceRateLookup(category.String(), metrics.OutcomeCached)
			return cached, nil
		}
	}

	return p.fetchSeries(ctx, category, source)
}

// Refresh fetches category from its series bypassing the cache and stores
// the fresh value.
func (p *Provider) Refresh(ctx context.Context, category value.Category) (entity.ReferenceRate, error) {
	source, ok := p.sources[category]
	if !ok || source.Kind != entity.SourceSeries {
		return entity.ReferenceRate{}, domain.NewError(
			errcodes.ReferenceRateUnavailable,
			fmt.Sprintf("category %q is not backed by a series", category),
		)
	}

	return p.fetchSeries(ctx, category, source)
}

func (p *Provider) fetchSeries(ctx context.Context, category value.Category, source entity.RateSource) (entity.ReferenceRate, error) {
	log := logger(ctx).With(
		slog.String(logx.FieldCategory, category.String()),
		slog.Int(logx.FieldSeriesID, source.SeriesID),
	)

	start := time.Now()
	obs, err := p.series.LatestValue(ctx, source.SeriesID)
	metrics.ObserveUpstreamLatency(strconv.Itoa(source.SeriesID), time.Since(start))

	if err != nil {
		metrics.ObserveReferenceRateLookup(category.String(), metrics.OutcomeError)
		log.Error("series lookup failed", logx.Error(err))

		return entity.ReferenceRate{}, domain.WrapError(
			err,
			errcodes.ReferenceRateUnavailable,
			fmt.Sprintf("reference rate unavailable for category %q", category),
		)
	}

	annual := obs.Value.InexactFloat64() / 100

	rate := entity.ReferenceRate{
		Category:    category,
		Source:      source,
		MonthlyRate: finance.AnnualToMonthly(annual),
		AnnualRate:  annual,
		ObservedAt:  obs.Date,
	}

	metrics.ObserveReferenceRateLookup(category.String(), metrics.OutcomeOK)
	log.Info("reference rate resolved", slog.Float64(logx.FieldRate, rate.MonthlyRate))

	if p.cache != nil {
		if err := p.cache.Set(ctx, rate); err != nil {
			log.Warn("rate cache set failed", logx.Error(err))
		}
	}

	return rate, nil
}

// SeriesCategories lists the categories backed by an SGS series.
func (p *Provider) SeriesCategories() []value.Category {
	var result []value.Category

	for _, category := range value.Categories() {
		if source, ok := p.sources[category]; ok && source.Kind == entity.SourceSeries {
			result = append(result, category)
		}
	}

	return result
}
