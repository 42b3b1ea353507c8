package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"myton/internal/project"
)

// cliConfig is the effective configuration: flags win over myton.toml.
type cliConfig struct {
	manifest       *project.Manifest
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

var (
	activeConfig = &cliConfig{color: "auto", maxDiagnostics: 100}
	cleanups     []func()
)

func runCleanup() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// prepareCommand loads the manifest, merges it with the flags and sets up
// tracing and profiling. It runs before every command.
func prepareCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	activeConfig = cfg
	cleanup, err := setupTracing(cmd, cfg.manifest)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)
	return nil
}

func loadConfig(cmd *cobra.Command) (*cliConfig, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var manifest *project.Manifest
	if configPath != "" {
		manifest, err = project.LoadManifest(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		manifest, _, err = project.Discover(".")
		if err != nil {
			return nil, err
		}
	}

	cfg := &cliConfig{manifest: manifest}
	if cfg.color, err = flags.GetString("color"); err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if cfg.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if cfg.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if cfg.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	if manifest != nil {
		if !flags.Changed("color") && manifest.Defined("diagnostics", "color") {
			cfg.color = manifest.Diagnostics.Color
		}
		if !flags.Changed("max-diagnostics") && manifest.Defined("diagnostics", "max") {
			cfg.maxDiagnostics = manifest.Diagnostics.Max
		}
	}
	switch cfg.color = strings.ToLower(strings.TrimSpace(cfg.color)); cfg.color {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", cfg.color)
	}
	return cfg, nil
}

// useColor decides coloring for output written to f.
func (c *cliConfig) useColor(f *os.File) bool {
	return c.color == "on" || (c.color == "auto" && isTerminal(f))
}
