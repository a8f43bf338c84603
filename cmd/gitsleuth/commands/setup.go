// Package commands implements CLI command handlers for gitsleuth.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitsleuth/internal/render"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/config"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/detective"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// runtime bundles everything a command needs after setup.
type runtime struct {
	cfg       *config.Config
	providers observability.Providers
}

// setup loads configuration and initializes observability from the
// persistent flags on the root command.
func setup(cmd *cobra.Command) (*runtime, error) {
	configPath, _ := cmd.Flags().GetString("config")
	noColor, _ := cmd.Flags().GetBool("no-color")

	render.SetColorEnabled(!noColor)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}

	providers, err := observability.Init(observability.Config{
		Service:      "gitsleuth",
		Env:          cfg.Telemetry.Environment,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		LogLevel:     level,
		LogFormat:    cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	return &runtime{cfg: cfg, providers: providers}, nil
}

// shutdown flushes telemetry exporters.
func (r *runtime) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = r.providers.Shutdown(ctx)
}

// openDetective opens the repository at path with the configured worker
// count, observability, and exclusion set applied.
func (r *runtime) openDetective(path string) (*detective.Detective, error) {
	d, err := detective.Open(path,
		detective.WithWorkers(r.cfg.Analysis.Workers),
		detective.WithObservability(r.providers),
	)
	if err != nil {
		return nil, err
	}

	for _, excluded := range r.cfg.Analysis.Exclusions {
		d.ExcludeFile(excluded)
	}

	return d, nil
}
