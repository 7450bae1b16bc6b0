package rates_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"rate_audit/internal/domain"
	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/finance"
	"rate_audit/internal/domain/service/rates"
	"rate_audit/internal/domain/value"
	"rate_audit/internal/infrastructure/bcb"
	"rate_audit/internal/infrastructure/ratecache"
	"rate_audit/pkg/errcodes"
)

type seriesClientStub struct {
	calls  map[int]int
	values map[int]string
	err    error
}

func newSeriesClientStub(values map[int]string) *seriesClientStub {
	return &seriesClientStub{calls: map[int]int{}, values: values}
}

func (s *seriesClientStub) LatestValue(_ context.Context, seriesID int) (bcb.Observation, error) {
	s.calls[seriesID]++

	if s.err != nil {
		return bcb.Observation{}, s.err
	}

	raw, ok := s.values[seriesID]
	if !ok {
		return bcb.Observation{}, bcb.ErrNoObservations
	}

	return bcb.Observation{
		Date:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		Value: decimal.RequireFromString(raw),
	}, nil
}

func TestProviderGetReferenceRate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	series := newSeriesClientStub(map[int]string{
		rates.SeriesPersonal: "52.31",
		rates.SeriesVehicle:  "24.9",
	})

	provider := rates.NewProvider(rates.DefaultSources(0.018, 0.028), series)

	personal, err := provider.GetReferenceRate(ctx, value.CategoryPersonal)
	rq.NoError(err)
	rq.Equal(value.CategoryPersonal, personal.Category)
	rq.Equal(entity.SeriesSource(rates.SeriesPersonal), personal.Source)
	rq.InDelta(0.5231, personal.AnnualRate, 1e-12)
	rq.InDelta(finance.AnnualToMonthly(0.5231), personal.MonthlyRate, 1e-12)
	rq.InDelta(0.035684, personal.MonthlyRate, 1e-6)
	rq.Equal(2025, personal.ObservedAt.Year())

	payroll, err := provider.GetReferenceRate(ctx, value.CategoryPayrollDeduction)
	rq.NoError(err)
	rq.InDelta(0.018, payroll.MonthlyRate, 0)
	rq.Zero(payroll.AnnualRate)
	rq.Equal(entity.SourceFixed, payroll.Source.Kind)

	private, err := provider.GetReferenceRate(ctx, value.CategoryPrivatePayrollDeduction)
	rq.NoError(err)
	rq.InDelta(0.028, private.MonthlyRate, 0)

	// mortgage series returns no observations
	_, err = provider.GetReferenceRate(ctx, value.CategoryMortgage)
	rq.True(domain.HasCode(err, errcodes.ReferenceRateUnavailable))
	rq.ErrorIs(err, bcb.ErrNoObservations)
}

func TestProviderUnavailable(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	series := newSeriesClientStub(nil)
	series.err = errors.New("connection reset")

	provider := rates.NewProvider(rates.Sources{
		value.CategoryVehicle: entity.SeriesSource(rates.SeriesVehicle),
	}, series)

	_, err := provider.GetReferenceRate(ctx, value.CategoryVehicle)
	rq.True(domain.HasCode(err, errcodes.ReferenceRateUnavailable))
	rq.ErrorContains(err, "connection reset")

	_, err = provider.GetReferenceRate(ctx, value.CategoryPersonal)
	rq.True(domain.HasCode(err, errcodes.ReferenceRateUnavailable))
	rq.Equal(0, series.calls[rates.SeriesPersonal])
}

func TestProviderCache(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	series := newSeriesClientStub(map[int]string{rates.SeriesVehicle: "24.9"})

	provider := rates.NewProvider(rates.DefaultSources(0.018, 0.028), series).
		WithCache(ratecache.NewMemory(time.Minute))

	first, err := provider.GetReferenceRate(ctx, value.CategoryVehicle)
	rq.NoError(err)

	second, err := provider.GetReferenceRate(ctx, value.CategoryVehicle)
	rq.NoError(err)

	rq.Equal(first, second)
	rq.Equal(1, series.calls[rates.SeriesVehicle])

	// failures are not cached
	_, err = provider.GetReferenceRate(ctx, value.CategoryMortgage)
	rq.Error(err)
	_, err = provider.GetReferenceRate(ctx, value.CategoryMortgage)
	rq.Error(err)
	rq.Equal(2, series.calls[rates.SeriesMortgage])
}

func TestProviderRefresh(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	series := newSeriesClientStub(map[int]string{rates.SeriesVehicle: "24.9"})

	provider := rates.NewProvider(rates.DefaultSources(0.018, 0.028), series).
		WithCache(ratecache.NewMemory(time.Hour))

	_, err := provider.GetReferenceRate(ctx, value.CategoryVehicle)
	rq.NoError(err)

	series.values[rates.SeriesVehicle] = "30"

	refreshed, err := provider.Refresh(ctx, value.CategoryVehicle)
	rq.NoError(err)
	rq.InDelta(0.30, refreshed.AnnualRate, 1e-12)

	cached, err := provider.GetReferenceRate(ctx, value.CategoryVehicle)
	rq.NoError(err)
	rq.Equal(refreshed, cached)
	rq.Equal(2, series.calls[rates.SeriesVehicle])

	_, err = provider.Refresh(ctx, value.CategoryPayrollDeduction)
	rq.True(domain.HasCode(err, errcodes.ReferenceRateUnavailable))
}

func TestProviderSeriesCategories(t *testing.T) {
	rq := require.New(t)

	provider := rates.NewProvider(rates.DefaultSources(0.018, 0.028), newSeriesClientStub(nil))

	rq.Equal([]value.Category{
		value.CategoryPersonal,
		value.CategoryVehicle,
		value.CategoryMortgage,
		value.CategoryHomeImprovement,
	}, provider.SeriesCategories())

	source, ok := provider.Source(value.CategoryPayrollDeduction)
	rq.True(ok)
	rq.Equal(entity.FixedSource(0.018), source)
}

func TestLoadSources(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		content string
		check   func(rates.Sources)
		err     bool
	}{
		{
			name: "Overrides and aliases",
			content: `categories:
  consignado: {fixed: 0.0172}
  personal: {series: 20749}
`,
			check: func(s rates.Sources) {
				rq.Equal(entity.FixedSource(0.0172), s[value.CategoryPayrollDeduction])
				rq.Equal(entity.SeriesSource(20749), s[value.CategoryPersonal])
				rq.Equal(entity.SeriesSource(rates.SeriesVehicle), s[value.CategoryVehicle])
			},
		},
		{name: "Unknown category", content: "categories:\n  boat: {series: 1}\n", err: true},
		{name: "Both kinds", content: "categories:\n  vehicle: {series: 1, fixed: 0.01}\n", err: true},
		{name: "Neither kind", content: "categories:\n  vehicle: {}\n", err: true},
		{name: "Bad series", content: "categories:\n  vehicle: {series: 0}\n", err: true},
		{name: "Not YAML", content: "categories: [", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yaml")
			rq.NoError(os.WriteFile(path, []byte(tc.content), 0o600))

			sources, err := rates.LoadSources(path, rates.DefaultSources(0.018, 0.028))
			if tc.err {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			tc.check(sources)
		})
	}

	_, err := rates.LoadSources(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	rq.Error(err)
}
