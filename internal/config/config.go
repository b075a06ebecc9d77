package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-cardsheet/internal/fileutil"
	"github.com/alnah/go-cardsheet/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxColumnLength = 100  // Spreadsheet header
	MaxLengthLength = 20   // "92mm", "12.5in"
	MaxNameLength   = 50   // Side, prefix, font name
)

// Config holds all configuration for a card sheet run.
// Zero-valued fields fall back to the library defaults.
type Config struct {
	Input  InputConfig  `yaml:"input" toml:"input"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Card   CardConfig   `yaml:"card" toml:"card"`
	Page   PageConfig   `yaml:"page" toml:"page"`
	Symbol SymbolConfig `yaml:"symbol" toml:"symbol"`
	Label  LabelConfig  `yaml:"label" toml:"label"`
	Run    RunConfig    `yaml:"run" toml:"run"`
	Lots   LotsConfig   `yaml:"lots" toml:"lots"`
	Assets AssetsConfig `yaml:"assets" toml:"assets"`
}

// InputConfig defines the identifier source.
type InputConfig struct {
	Path   string `yaml:"path" toml:"path"`     // CSV or XLSX file
	Column string `yaml:"column" toml:"column"` // Identifier header (default: UNIQUENUMBER)
	Limit  int    `yaml:"limit" toml:"limit"`   // Max rows read, 0 = unlimited
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	Dir            string `yaml:"dir" toml:"dir"`                       // Page images and manifest
	CardsDir       string `yaml:"cardsDir" toml:"cardsDir"`             // Per-card images (default: {dir}/cards)
	CardFormat     string `yaml:"cardFormat" toml:"cardFormat"`         // "png", "jpg"
	PageFormat     string `yaml:"pageFormat" toml:"pageFormat"`         // "png", "jpg"
	PagePrefix     string `yaml:"pagePrefix" toml:"pagePrefix"`         // Default: "page"
	Manifest       string `yaml:"manifest" toml:"manifest"`             // Manifest file name or path
	ManifestFormat string `yaml:"manifestFormat" toml:"manifestFormat"` // "csv", "yaml"
	PDF            string `yaml:"pdf" toml:"pdf"`                       // Optional print-ready PDF path
}

// CardConfig defines the physical card and its composition offsets.
type CardConfig struct {
	Width         string `yaml:"width" toml:"width"`   // Length, e.g. "92mm"
	Height        string `yaml:"height" toml:"height"` // Length, e.g. "54mm"
	Side          string `yaml:"side" toml:"side"`     // File name suffix (default: "back")
	Template      string `yaml:"template" toml:"template"`
	OffsetX       *int   `yaml:"offsetX" toml:"offsetX"`
	SymbolOffsetY *int   `yaml:"symbolOffsetY" toml:"symbolOffsetY"`
	LabelGap      *int   `yaml:"labelGap" toml:"labelGap"`
}

// PageConfig defines the print sheet.
type PageConfig struct {
	Width  string  `yaml:"width" toml:"width"`   // Length, e.g. "12in"
	Height string  `yaml:"height" toml:"height"` // Length, e.g. "18in"
	Margin *int    `yaml:"margin" toml:"margin"` // Pixels between and around cards
	DPI    float64 `yaml:"dpi" toml:"dpi"`
}

// SymbolConfig defines the code symbol drawn on each card.
type SymbolConfig struct {
	Symbology    string  `yaml:"symbology" toml:"symbology"` // "code128", "qr"
	Width        int     `yaml:"width" toml:"width"`         // Target pixels after resize
	Height       int     `yaml:"height" toml:"height"`
	ModuleWidth  float64 `yaml:"moduleWidth" toml:"moduleWidth"` // mm
	ModuleHeight float64 `yaml:"moduleHeight" toml:"moduleHeight"`
	QuietZone    float64 `yaml:"quietZone" toml:"quietZone"`
}

// LabelConfig defines the human-readable label under the symbol.
type LabelConfig struct {
	Font string  `yaml:"font" toml:"font"` // Font name or file path
	Size float64 `yaml:"size" toml:"size"` // Pixels
}

// RunConfig defines throughput knobs.
type RunConfig struct {
	BatchSize int `yaml:"batchSize" toml:"batchSize"`
	Workers   int `yaml:"workers" toml:"workers"` // 0 = auto
}

// LotsConfig defines the master sheet splitter.
type LotsConfig struct {
	Count        int    `yaml:"count" toml:"count"`
	Size         int    `yaml:"size" toml:"size"`
	SerialColumn string `yaml:"serialColumn" toml:"serialColumn"`
	IDColumn     string `yaml:"idColumn" toml:"idColumn"`
	Format       string `yaml:"format" toml:"format"` // "xlsx", "csv"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"input.column", c.Input.Column, MaxColumnLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.cardsDir", c.Output.CardsDir, MaxPathLength},
		{"output.pagePrefix", c.Output.PagePrefix, MaxNameLength},
		{"output.manifest", c.Output.Manifest, MaxPathLength},
		{"output.pdf", c.Output.PDF, MaxPathLength},
		{"card.width", c.Card.Width, MaxLengthLength},
		{"card.height", c.Card.Height, MaxLengthLength},
		{"card.side", c.Card.Side, MaxNameLength},
		{"card.template", c.Card.Template, MaxPathLength},
		{"page.width", c.Page.Width, MaxLengthLength},
		{"page.height", c.Page.Height, MaxLengthLength},
		{"label.font", c.Label.Font, MaxPathLength},
		{"lots.serialColumn", c.Lots.SerialColumn, MaxColumnLength},
		{"lots.idColumn", c.Lots.IDColumn, MaxColumnLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	enums := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"output.cardFormat", c.Output.CardFormat, []string{"png", "jpg", "jpeg"}},
		{"output.pageFormat", c.Output.PageFormat, []string{"png", "jpg", "jpeg"}},
		{"output.manifestFormat", c.Output.ManifestFormat, []string{"csv", "yaml"}},
		{"symbol.symbology", c.Symbol.Symbology, []string{"code128", "qr"}},
		{"lots.format", c.Lots.Format, []string{"xlsx", "csv"}},
	}
	for _, e := range enums {
		if err := validateEnum(e.name, e.value, e.allowed); err != nil {
			return err
		}
	}

	if c.Card.Side != "" {
		if safe, err := fileutil.SafeName(c.Card.Side); err != nil || safe != c.Card.Side {
			return fmt.Errorf("%w: card.side: %q must use letters, digits, '-' or '_'", ErrInvalidValue, c.Card.Side)
		}
	}

	ints := []struct {
		name  string
		value int
	}{
		{"input.limit", c.Input.Limit},
		{"symbol.width", c.Symbol.Width},
		{"symbol.height", c.Symbol.Height},
		{"run.batchSize", c.Run.BatchSize},
		{"run.workers", c.Run.Workers},
		{"lots.count", c.Lots.Count},
		{"lots.size", c.Lots.Size},
	}
	for _, n := range ints {
		if n.value < 0 {
			return fmt.Errorf("%w: %s: must not be negative, got %d", ErrInvalidValue, n.name, n.value)
		}
	}
	if c.Page.Margin != nil && *c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin: must not be negative, got %d", ErrInvalidValue, *c.Page.Margin)
	}
	if c.Card.LabelGap != nil && *c.Card.LabelGap < 0 {
		return fmt.Errorf("%w: card.labelGap: must not be negative, got %d", ErrInvalidValue, *c.Card.LabelGap)
	}

	floats := []struct {
		name  string
		value float64
	}{
		{"page.dpi", c.Page.DPI},
		{"symbol.moduleWidth", c.Symbol.ModuleWidth},
		{"symbol.moduleHeight", c.Symbol.ModuleHeight},
		{"symbol.quietZone", c.Symbol.QuietZone},
		{"label.size", c.Label.Size},
	}
	for _, f := range floats {
		if f.value < 0 {
			return fmt.Errorf("%w: %s: must not be negative, got %g", ErrInvalidValue, f.name, f.value)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value (use default) or one of allowed, ignoring case.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns an empty configuration; every zero value selects
// the library default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// The format follows the extension: .toml is TOML, anything else is YAML.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		err = decodeTOML(data, cfg)
	} else {
		err = yamlutil.UnmarshalStrict(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeTOML decodes data and rejects keys that match no field.
func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, ~/.config/go-cardsheet/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml", ".toml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-cardsheet", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchedPaths lists the locations resolveConfigPath would try for name,
// for use in operator hints.
func SearchedPaths(name string) []string {
	var paths []string
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-cardsheet", name+".yaml"))
	}
	return paths
}
