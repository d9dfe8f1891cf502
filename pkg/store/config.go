package store

import (
	"fmt"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/fatloss/pkg/timeutil"
)

// Config carries every tunable the client reads. The retry and TTL values
// are deliberately configuration, not constants scattered through the code.
type Config struct {
	// Path is the diskv base directory.
	Path string

	// ServiceURL is the base URL of the remote recommendation/calorie service.
	ServiceURL string

	// CacheTTL bounds how long a fetched recommendation set stays fresh.
	CacheTTL time.Duration

	// RetryBound is the number of additional attempts after the first fetch
	// fails. AttemptTimeout bounds each individual attempt.
	RetryBound     int
	AttemptTimeout time.Duration
}

// LoadConfig reads .fatloss.yaml (working directory or FATLOSS_CONFIG_PATH)
// plus FATLOSS_* environment overrides.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.fatloss.db")
	v.SetDefault("service_url", "http://localhost:9090")
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("retry_bound", 3)
	v.SetDefault("attempt_timeout", "10s")

	v.SetConfigName(".fatloss") // .yaml is implicit
	v.SetEnvPrefix("FATLOSS")
	v.AutomaticEnv()

	if override := v.GetString("config_path"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	ttl, err := timeutil.ParseWindow(v.GetString("cache_ttl"))
	if err != nil {
		return nil, fmt.Errorf("store: cache_ttl: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString("attempt_timeout"))
	if err != nil {
		return nil, fmt.Errorf("store: attempt_timeout: %w", err)
	}

	return &Config{
		Path:           path,
		ServiceURL:     v.GetString("service_url"),
		CacheTTL:       ttl,
		RetryBound:     v.GetInt("retry_bound"),
		AttemptTimeout: timeout,
	}, nil
}
