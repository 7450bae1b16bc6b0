package entity

import (
	"time"

	"rate_audit/internal/domain/value"
)

type SourceKind string

const (
	SourceSeries SourceKind = "series"
	SourceFixed  SourceKind = "fixed"
)

// RateSource tells the provider how to obtain the reference rate of a
// category: either the latest observation of an SGS series (annualized
// percentage) or a flat monthly rate.
type RateSource struct {
	Kind        SourceKind
	SeriesID    int
	MonthlyRate float64
}

func SeriesSource(seriesID int) RateSource {
	return RateSource{Kind: SourceSeries, SeriesID: seriesID}
}

func FixedSource(monthlyRate float64) RateSource {
	return RateSource{Kind: SourceFixed, MonthlyRate: monthlyRate}
}

// ReferenceRate is the market baseline for a category. MonthlyRate is a
// fraction; AnnualRate and ObservedAt are only set for series sources.
type ReferenceRate struct {
	Category    value.Category
	Source      RateSource
	MonthlyRate float64
	AnnualRate  float64
	ObservedAt  time.Time
}
