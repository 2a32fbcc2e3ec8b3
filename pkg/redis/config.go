package redis

import "time"

// Config holds connection settings. An empty ConnectionURL means Redis is not
// in use and callers fall back to in-memory storage.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                             // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`   // number of ping attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`  // pause between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"` // overall budget for Connect
}

// Enabled reports whether a connection URL was configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
