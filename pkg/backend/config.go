package backend

import "time"

// Config describes how to reach the hosted backend.
type Config struct {
	URL            string        `env:"SUPABASE_URL,required"`
	AnonKey        string        `env:"SUPABASE_ANON_KEY,required"`
	RequestTimeout time.Duration `env:"BACKEND_REQUEST_TIMEOUT" envDefault:"10s"`
	RefreshMargin  time.Duration `env:"BACKEND_REFRESH_MARGIN" envDefault:"60s"`
	StorageKey     string        `env:"BACKEND_STORAGE_KEY" envDefault:"sb-auth-token"`
}
