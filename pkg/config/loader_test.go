package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertextrade/storefront/pkg/config"
)

type backendTestConfig struct {
	URL     string        `env:"TEST_BACKEND_URL,required"`
	AnonKey string        `env:"TEST_BACKEND_KEY,required"`
	Timeout time.Duration `env:"TEST_BACKEND_TIMEOUT" envDefault:"10s"`
}

type requiredTestConfig struct {
	Missing string `env:"TEST_DEFINITELY_MISSING_VAR,required"`
}

func TestLoad(t *testing.T) {
	t.Run("parses environment with defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_BACKEND_URL", "https://example.supabase.co")
		t.Setenv("TEST_BACKEND_KEY", "public-key")

		var cfg backendTestConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "https://example.supabase.co", cfg.URL)
		assert.Equal(t, "public-key", cfg.AnonKey)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("serves cached value on subsequent calls", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_BACKEND_URL", "https://first.example")
		t.Setenv("TEST_BACKEND_KEY", "k")

		var first backendTestConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_BACKEND_URL", "https://second.example")
		var second backendTestConfig
		require.NoError(t, config.Load(&second))

		assert.Equal(t, "https://first.example", second.URL)
	})

	t.Run("missing required variable fails fast", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_DEFINITELY_MISSING_VAR")

		var cfg requiredTestConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *backendTestConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("MustLoad panics on failure", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_DEFINITELY_MISSING_VAR")

		var cfg requiredTestConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads custom env file", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_BACKEND_URL")
		os.Unsetenv("TEST_BACKEND_KEY")
		t.Cleanup(func() {
			os.Unsetenv("TEST_BACKEND_URL")
			os.Unsetenv("TEST_BACKEND_KEY")
		})

		require.NoError(t, config.LoadEnv("testdata/.env.backend"))

		var cfg backendTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://project.supabase.co", cfg.URL)
		assert.Equal(t, "anon-key", cfg.AnonKey)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/does-not-exist.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}
