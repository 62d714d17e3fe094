package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:5000"

// Config holds the complete application configuration, loadable from
// environment variables (PEDIDOS_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:5000" usage:"API server listen address"`
	MaxBodyBytes int64  `default:"1048576" usage:"Maximum decoded size of an order submission body" flag:"max-body-bytes"`
	RateLimit    RateLimitConfig
	Health       HealthConfig
	Graceful     GracefulConfig
}

// RateLimitConfig controls the per-client token bucket on order submissions.
type RateLimitConfig struct {
	Rate  float64 `default:"20" usage:"Sustained submissions per second per client (0 disables)"`
	Burst int     `default:"40" usage:"Submission burst size per client"`
}

// HealthConfig controls the background liveness checks.
type HealthConfig struct {
	Interval      time.Duration `default:"10s" usage:"Interval between health checks"`
	MaxGoroutines int           `default:"10000" usage:"Liveness fails above this goroutine count" flag:"max-goroutines"`
	MaxGCPause    time.Duration `default:"1s" usage:"Liveness fails when a GC pause exceeds this" flag:"max-gc-pause"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"1s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files and flags, then applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		Files: []string{"config.yaml", "/etc/pedidos/config.yaml"},
	})
}

func loadConfig(base aconfig.Config) (*Config, error) {
	var cfg Config
	base.EnvPrefix = "PEDIDOS"
	base.FileDecoders = map[string]aconfig.FileDecoder{
		".yaml": aconfigyaml.New(),
	}
	if err := aconfig.LoaderFor(&cfg, base).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the platform-provided PORT variable onto Addr
// when Addr was left at its default.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return errors.New("listen address is required: set PEDIDOS_ADDR")
	case c.MaxBodyBytes <= 0:
		return errors.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	case c.RateLimit.Rate < 0:
		return errors.Errorf("rate limit must not be negative, got %v", c.RateLimit.Rate)
	}
	return nil
}
