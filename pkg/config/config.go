// Package config loads cmd/athena's runtime configuration: logging level,
// color output, and verbosity.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI's runtime settings, read from an optional config file
// and environment variables (ATHENA_* plus the un-prefixed NO_COLOR
// convention). Command-line flags are not bound here.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	NoColor bool          `mapstructure:"no_color"`
	Output  OutputConfig  `mapstructure:"output"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OutputConfig struct {
	Verbose bool `mapstructure:"verbose"`
	Quiet   bool `mapstructure:"quiet"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads an optional config file, then layers environment variables on
// top: ATHENA_LOGGING_LEVEL etc. via the ATHENA prefix, plus the
// un-prefixed NO_COLOR variable every terminal tool respects.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	cfg := DefaultConfig()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file could not be read: %w", err)
		}
	} else {
		v.SetConfigName("athena")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.athena")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("config file could not be read: %w", err)
			}
		}
	}

	v.SetEnvPrefix("ATHENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("no_color", "NO_COLOR")

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config could not be parsed: %w", err)
	}
	// NO_COLOR is "disable color if the variable exists at all", per the
	// convention every terminal tool in the wild follows — not a bool flag.
	cfg.NoColor = v.IsSet("no_color")

	if !validLogLevels[cfg.Logging.Level] {
		return nil, fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}
	if !validLogFormats[cfg.Logging.Format] {
		return nil, fmt.Errorf("invalid log format: %s", cfg.Logging.Format)
	}

	return cfg, nil
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true,
}
