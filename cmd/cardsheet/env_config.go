package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-cardsheet/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "CARDSHEET_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // CARDSHEET_CONFIG: config file name or path
	Input      string // CARDSHEET_INPUT: identifier sheet
	Column     string // CARDSHEET_COLUMN: identifier header
	OutputDir  string // CARDSHEET_OUTPUT_DIR: pages and manifest

	// Tier 2 - Layout
	Template  string  // CARDSHEET_TEMPLATE: background name or path
	AssetPath string  // CARDSHEET_ASSET_PATH: custom templates directory
	DPI       float64 // CARDSHEET_DPI: print resolution
	Symbology string  // CARDSHEET_SYMBOLOGY: code128, qr
	Font      string  // CARDSHEET_FONT: label font name or path

	// Tier 3 - Throughput and logging
	Workers   int    // CARDSHEET_WORKERS: parallel renders
	BatchSize int    // CARDSHEET_BATCH_SIZE: rows read at a time
	LogFormat string // CARDSHEET_LOG_FORMAT: json, console
}

// knownEnvVars lists valid CARDSHEET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"CARDSHEET_CONFIG":     true,
	"CARDSHEET_INPUT":      true,
	"CARDSHEET_COLUMN":     true,
	"CARDSHEET_OUTPUT_DIR": true,
	// Tier 2 - Layout
	"CARDSHEET_TEMPLATE":   true,
	"CARDSHEET_ASSET_PATH": true,
	"CARDSHEET_DPI":        true,
	"CARDSHEET_SYMBOLOGY":  true,
	"CARDSHEET_FONT":       true,
	// Tier 3 - Throughput and logging
	"CARDSHEET_WORKERS":    true,
	"CARDSHEET_BATCH_SIZE": true,
	"CARDSHEET_LOG_FORMAT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CARDSHEET_CONFIG"),
		Input:      os.Getenv("CARDSHEET_INPUT"),
		Column:     os.Getenv("CARDSHEET_COLUMN"),
		OutputDir:  os.Getenv("CARDSHEET_OUTPUT_DIR"),
		Template:   os.Getenv("CARDSHEET_TEMPLATE"),
		AssetPath:  os.Getenv("CARDSHEET_ASSET_PATH"),
		Symbology:  os.Getenv("CARDSHEET_SYMBOLOGY"),
		Font:       os.Getenv("CARDSHEET_FONT"),
		LogFormat:  os.Getenv("CARDSHEET_LOG_FORMAT"),
	}

	if v := os.Getenv("CARDSHEET_DPI"); v != "" {
		if dpi, err := strconv.ParseFloat(v, 64); err == nil && dpi > 0 {
			cfg.DPI = dpi
		}
	}
	if v := os.Getenv("CARDSHEET_WORKERS"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if v := os.Getenv("CARDSHEET_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized CARDSHEET_* variables,
// sorted by name.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by the command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - I/O
	if env.Input != "" && cfg.Input.Path == "" {
		cfg.Input.Path = env.Input
	}
	if env.Column != "" && cfg.Input.Column == "" {
		cfg.Input.Column = env.Column
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}

	// Tier 2 - Layout
	if env.Template != "" && cfg.Card.Template == "" {
		cfg.Card.Template = env.Template
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.DPI > 0 && cfg.Page.DPI == 0 {
		cfg.Page.DPI = env.DPI
	}
	if env.Symbology != "" && cfg.Symbol.Symbology == "" {
		cfg.Symbol.Symbology = env.Symbology
	}
	if env.Font != "" && cfg.Label.Font == "" {
		cfg.Label.Font = env.Font
	}

	// Tier 3 - Throughput
	if env.Workers > 0 && cfg.Run.Workers == 0 {
		cfg.Run.Workers = env.Workers
	}
	if env.BatchSize > 0 && cfg.Run.BatchSize == 0 {
		cfg.Run.BatchSize = env.BatchSize
	}
}
