// Package config loads runtime configuration from defaults, an optional TOML
// file and TARIFFHOUND_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the tool.
type Config struct {
	// CacheDir is the root directory of the on-disk artifact cache.
	CacheDir string `mapstructure:"CacheDir"`

	// CacheMaxAge is the artifact age beyond which cached documents are
	// refetched.
	CacheMaxAge time.Duration `mapstructure:"CacheMaxAge"`

	// BaseURL overrides the Price List Bulk API endpoint. Empty selects
	// the public endpoint.
	BaseURL string `mapstructure:"BaseURL"`

	// Regions overrides the regions the EC2 inventory fan-out queries.
	// Empty selects the major regions.
	Regions []string `mapstructure:"Regions"`

	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
}

// Load reads configuration from the given file path. An empty path skips the
// file and uses defaults plus environment variables only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TARIFFHOUND")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	absCacheDir, err := filepath.Abs(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}
	cfg.CacheDir = absCacheDir

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CacheDir == "" {
		return errors.New("config: cache dir must not be empty")
	}
	if c.CacheMaxAge <= 0 {
		return fmt.Errorf("config: cache max age must be positive, got %s", c.CacheMaxAge)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CacheDir", "cache")
	v.SetDefault("CacheMaxAge", "168h")
	v.SetDefault("BaseURL", "")
	v.SetDefault("Regions", []string{})
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
}
