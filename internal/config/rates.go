package config

import (
	"errors"
	"time"
)

type Rates struct {
	SourcesFile           string        `env:"RATES_SOURCES_FILE"`
	PayrollMonthly        float64       `env:"RATES_PAYROLL_MONTHLY" envDefault:"0.018"`
	PrivatePayrollMonthly float64       `env:"RATES_PRIVATE_PAYROLL_MONTHLY" envDefault:"0.028"`
	CacheTTL              time.Duration `env:"RATES_CACHE_TTL" envDefault:"0s"`
	RefreshInterval       time.Duration `env:"RATES_REFRESH_INTERVAL" envDefault:"0s"`
}

// CacheEnabled reports whether series lookups go through a cache.
func (r Rates) CacheEnabled() bool {
	return r.CacheTTL > 0
}

// RefreshEnabled reports whether the cache warm-up worker should run.
func (r Rates) RefreshEnabled() bool {
	return r.CacheEnabled() && r.RefreshInterval > 0
}

func (r Rates) validate() error {
	if r.PayrollMonthly <= -1 || r.PrivatePayrollMonthly <= -1 {
		return errors.New("fixed monthly rates must be greater than -1")
	}

	if r.CacheTTL < 0 || r.RefreshInterval < 0 {
		return errors.New("durations must not be negative")
	}

	return nil
}
