package config

type Redis struct {
	Address        string `env:"REDIS_ADDRESS"`
	Username       string `env:"REDIS_USERNAME"`
	Password       string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize       int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns   int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConns   int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
}

// Enabled reports whether the rate cache should live in Redis rather than
// in process memory.
func (r Redis) Enabled() bool {
	return r.Address != ""
}
