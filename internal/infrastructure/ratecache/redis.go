package ratecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const keyPrefix = "rate_audit:reference_rate:"

// Redis shares cached rates between API replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

type rateSchema struct {
	Category    string    `json:"category"`
	Kind        string    `json:"kind"`
	SeriesID    int       `json:"seriesId,omitempty"`
	Fixed       float64   `json:"fixed,omitempty"`
	MonthlyRate float64   `json:"monthlyRate"`
	AnnualRate  float64   `json:"annualRate,omitempty"`
	ObservedAt  time.Time `json:"observedAt"`
}

func (r *Redis) Get(ctx context.Context, category value.Category) (entity.ReferenceRate, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+category.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.ReferenceRate{}, false, nil
	}

	if err != nil {
		return entity.ReferenceRate{}, false, fmt.Errorf("redis.Get: %w", err)
	}

	var schema rateSchema

	if err := json.Unmarshal(raw, &schema); err != nil {
		return entity.ReferenceRate{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return schema.toDomain(), true, nil
}

func (r *Redis) Set(ctx context.Context, rate entity.ReferenceRate) error {
	raw, err := json.Marshal(fromDomain(rate))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+rate.Category.String(), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}

func fromDomain(rate entity.ReferenceRate) rateSchema {
	return rateSchema{
		Category:    rate.Category.String(),
		Kind:        string(rate.Source.Kind),
		SeriesID:    rate.Source.SeriesID,
		Fixed:       rate.Source.MonthlyRate,
		MonthlyRate: rate.MonthlyRate,
		AnnualRate:  rate.AnnualRate,
		ObservedAt:  rate.ObservedAt,
	}
}

func (s rateSchema) toDomain() entity.ReferenceRate {
	return entity.ReferenceRate{
		Category: value.Category(s.Category),
		Source: entity.RateSource{
			Kind:        entity.SourceKind(s.Kind),
			SeriesID:    s.SeriesID,
			MonthlyRate: s.Fixed,
		},
		MonthlyRate: s.MonthlyRate,
		AnnualRate:  s.AnnualRate,
		ObservedAt:  s.ObservedAt,
	}
}
