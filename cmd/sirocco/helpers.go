package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sirocco/internal/aggregate"
	"sirocco/internal/config"
	"sirocco/internal/format"
	"sirocco/internal/logging"
	"sirocco/internal/zephyr"
)

// loadConfig resolves configuration from file, environment, and flags, in
// rising priority.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	if rootFlags.baseURL != "" {
		cfg.BaseURL = rootFlags.baseURL
	}
	if rootFlags.workers > 0 {
		cfg.Workers = rootFlags.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildClient(cfg *config.Config) (*zephyr.Client, error) {
	return zephyr.New(cfg.ClientConfig(), zephyr.WithLogger(logging.New("zephyr")))
}

func buildEngine(client *zephyr.Client, cfg *config.Config) *aggregate.Engine {
	fetcher := zephyr.NewFetcher(client, logging.New("fetcher"))
	return aggregate.NewEngine(fetcher,
		aggregate.WithWorkers(cfg.Workers),
		aggregate.WithLogger(logging.New("engine")),
	)
}

// newEngine is the common setup path for the data commands.
func newEngine() (*aggregate.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}
	return buildEngine(client, cfg), nil
}

// tableMode maps the --markdown flag to the table renderer.
func tableMode() format.Mode {
	if rootFlags.markdown {
		return format.Markdown
	}
	return format.ASCII
}

// writeJSON marshals v indented, then writes it to path or prints it when
// path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to: %s\n", path)
	return nil
}
