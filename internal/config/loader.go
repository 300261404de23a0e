package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jittakal/ringbuffer/internal/config/dto"
	"github.com/spf13/viper"
)

// Loader handles configuration loading and validation.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Load loads configuration from file and environment variables.
func (l *Loader) Load(path string) (*dto.ApplicationConfig, error) {
	l.setDefaults()

	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for _, key := range l.v.AllKeys() {
		value := l.v.GetString(key)
		if strings.Contains(value, "${") {
			l.v.Set(key, os.ExpandEnv(value))
		}
	}

	var config dto.ApplicationConfig
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func (l *Loader) setDefaults() {
	l.v.SetDefault("application.name", "ringbufferd")
	l.v.SetDefault("application.version", "1.0.0")
	l.v.SetDefault("application.environment", "development")

	l.v.SetDefault("buffer.ring_size_bytes", 0) // dynamic mode by default
	l.v.SetDefault("buffer.max_blocks", 64)
	l.v.SetDefault("buffer.limit_bytes", 0)
	l.v.SetDefault("buffer.limit_count", 0)
	l.v.SetDefault("buffer.min_frame_size_bytes", 8)
	l.v.SetDefault("buffer.max_frame_size_bytes", 256)

	l.v.SetDefault("observability.logging.level", "info")
	l.v.SetDefault("observability.logging.format", "json")
	l.v.SetDefault("observability.logging.output", "stdout")
	l.v.SetDefault("observability.metrics.enabled", true)
	l.v.SetDefault("observability.metrics.port", 9090)
	l.v.SetDefault("observability.metrics.path", "/metrics")
	l.v.SetDefault("observability.health.port", 8080)
	l.v.SetDefault("observability.health.liveness_path", "/health/live")
	l.v.SetDefault("observability.health.readiness_path", "/health/ready")

	l.v.SetDefault("shutdown.grace_period_seconds", 10)
	l.v.SetDefault("shutdown.force_timeout_seconds", 20)
}

// Validate validates the configuration by running ApplicationConfig.Validate;
// the loader adds no checks of its own.
func (l *Loader) Validate(config *dto.ApplicationConfig) error {
	return config.Validate()
}
