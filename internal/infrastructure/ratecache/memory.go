// Package ratecache keeps recently fetched reference rates so repeated
// evaluations do not hit the SGS API every time.
package ratecache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/value"
)

// Memory is an in-process cache backed by go-cache.
type Memory struct {
	items *cache.Cache
	ttl   time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		items: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (m *Memory) Get(_ context.Context, category value.Category) (entity.ReferenceRate, bool, error) {
	item, found := m.items.Get(category.String())
	if !found {
		return entity.ReferenceRate{}, false, nil
	}

	rate, ok := item.(entity.ReferenceRate)
	if !ok {
		m.items.Delete(category.String())
		return entity.ReferenceRate{}, false, nil
	}

	return rate, true, nil
}

func (m *Memory) Set(_ context.Context, rate entity.ReferenceRate) error {
	m.items.Set(rate.Category.String(), rate, m.ttl)
	return nil
}
