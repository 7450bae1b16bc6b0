package config

import "time"

type BCB struct {
	BaseURL string        `env:"BCB_BASE_URL" envDefault:"https://api.bcb.gov.br"`
	Timeout time.Duration `env:"BCB_TIMEOUT" envDefault:"10s"`
}
