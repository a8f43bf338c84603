package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Positive(t, cfg.Analysis.Workers)
	assert.Empty(t, cfg.Analysis.Exclusions)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.False(t, cfg.Clone.Recursive)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitsleuth.yaml")

	content := `
analysis:
  workers: 2
  exclusions:
    - vendor/vendored.go
    - generated.pb.go
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
clone:
  recursive: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Analysis.Workers)
	assert.Equal(t, []string{"vendor/vendored.go", "generated.pb.go"}, cfg.Analysis.Exclusions)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Clone.Recursive)
}

func TestLoadConfigRejectsZeroWorkers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitsleuth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  workers: 0\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrInvalidWorkers)
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitsleuth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestLoadConfigRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitsleuth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestSlogLevelMapping(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}

	for name, want := range cases {
		level, err := config.LoggingConfig{Level: name}.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, want, level)
	}
}
