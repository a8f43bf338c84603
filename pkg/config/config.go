// Package config provides configuration loading and validation for gitsleuth.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers  = errors.New("analysis workers must be positive")
	ErrInvalidLogLevel = errors.New("unknown log level")
	ErrInvalidFormat   = errors.New("unknown log format")
)

// Config holds all configuration for gitsleuth.
type Config struct {
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Clone     CloneConfig     `mapstructure:"clone"`
}

// AnalysisConfig holds attribution-specific configuration.
type AnalysisConfig struct {
	// Workers is the number of concurrent file classifiers.
	Workers int `mapstructure:"workers"`
	// Exclusions are repository-relative paths skipped by attribution.
	Exclusions []string `mapstructure:"exclusions"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry export configuration. An empty
// endpoint disables export entirely.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	Environment  string `mapstructure:"environment"`
}

// CloneConfig holds clone-specific configuration.
type CloneConfig struct {
	Recursive bool `mapstructure:"recursive"`
}

// LoadConfig loads configuration from file and environment variables.
// configPath may be empty, in which case a gitsleuth.yaml is searched in
// the working directory and no error is raised when none exists.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("gitsleuth")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("GITSLEUTH")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("analysis.workers", runtime.GOMAXPROCS(0))
	viperCfg.SetDefault("analysis.exclusions", []string{})

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.environment", "development")

	viperCfg.SetDefault("clone.recursive", false)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Analysis.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Analysis.Workers)
	}

	if _, err := config.Logging.SlogLevel(); err != nil {
		return err
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Logging.Format)
	}

	return nil
}

// SlogLevel maps the configured level string to a slog.Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}
}
