package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestConfig(t *testing.T, files ...string) (*Config, error) {
	t.Helper()
	return loadConfig(aconfig.Config{SkipFlags: true, Files: files})
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadTestConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Addr)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.InDelta(t, 20.0, cfg.RateLimit.Rate, 0)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, 10*time.Second, cfg.Health.Interval)
	assert.Equal(t, time.Second, cfg.Graceful.ReadinessDelay)
	assert.Equal(t, 15*time.Second, cfg.Graceful.ShutdownTimeout)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PEDIDOS_ADDR", "127.0.0.1:9000")
	t.Setenv("PEDIDOS_MAX_BODY_BYTES", "2048")
	t.Setenv("PEDIDOS_RATE_LIMIT_RATE", "0")

	cfg, err := loadTestConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.Zero(t, cfg.RateLimit.Rate)
}

func TestLoadConfig_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg, err := loadTestConfig(t)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
}

func TestLoadConfig_ExplicitAddrWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PEDIDOS_ADDR", "127.0.0.1:7000")

	cfg, err := loadTestConfig(t)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: 127.0.0.1:6000\nrate_limit:\n  burst: 5\n"), 0o600))

	cfg, err := loadTestConfig(t, path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6000", cfg.Addr)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
}

func TestLoadConfig_Invalid(t *testing.T) {
	for _, tt := range []struct {
		name, key, value, msg string
	}{
		{"BodyLimit", "PEDIDOS_MAX_BODY_BYTES", "0", "max body bytes"},
		{"NegativeRate", "PEDIDOS_RATE_LIMIT_RATE", "-1", "rate limit"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := loadTestConfig(t)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}
