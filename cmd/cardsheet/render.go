package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alnah/go-cardsheet"
	"github.com/alnah/go-cardsheet/internal/assets"
	"github.com/alnah/go-cardsheet/internal/config"
	"github.com/alnah/go-cardsheet/internal/hints"
	"github.com/alnah/go-cardsheet/internal/sheet"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrNoInput = errors.New("no input specified")
	ErrPartial = errors.New("run finished with skipped identifiers")
)

// runRender parses flags, builds the engine and renders every identifier.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeRenderFlags(flags, cfg)

	inputPath, err := resolveInput(positional, cfg)
	if err != nil {
		return err
	}

	logFormat, err := resolveLogFormat(flags.common.logFormat, envCfg.LogFormat)
	if err != nil {
		return err
	}
	logger := newLogger(env.Stderr, logFormat, "render", flags.common.verbose, flags.common.quiet)
	defer func() { _ = logger.Sync() }()

	settings, err := buildSettings(cfg)
	if err != nil {
		return err
	}

	engine, err := cardsheet.NewEngine(settings,
		cardsheet.WithLogger(logger),
		cardsheet.WithAssetPath(cfg.Assets.BasePath),
	)
	if err != nil {
		return withEngineHint(err, settings, cfg.Assets.BasePath)
	}

	src, err := sheet.Open(inputPath,
		sheet.WithColumn(cfg.Input.Column),
		sheet.WithSheet(flags.input.sheet),
		sheet.WithLimit(cfg.Input.Limit),
	)
	if err != nil {
		return withSourceHint(err)
	}
	defer func() { _ = src.Close() }()

	layout := engine.Layout()
	logger.Debug("layout",
		zap.String("input", inputPath),
		zap.String("column", src.Column()),
		zap.Int("columns", layout.Grid.Columns),
		zap.Int("rows", layout.Grid.Rows),
		zap.Int("card_width", layout.Card.Width),
		zap.Int("card_height", layout.Card.Height),
		zap.Int("workers", settings.Workers),
	)

	report, err := engine.Run(ctx, src)
	if err != nil {
		if errors.Is(err, cardsheet.ErrOutputDir) {
			return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
		}
		return err
	}

	if !flags.common.quiet {
		printRenderSummary(env.Stdout, report, settings.Output.PDF, flags.common.noColor)
	}

	if skipped := report.SkippedTotal(); skipped > 0 && flags.run.strict {
		return fmt.Errorf("%w: %d of %d%s", ErrPartial, skipped, report.Rows, hints.ForSkips(skipped))
	}
	return nil
}

// loadConfig loads the named config, falling back to CARDSHEET_CONFIG.
// No name returns an empty config.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchedPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveInput returns the positional input, or input.path from config.
func resolveInput(positional []string, cfg *config.Config) (string, error) {
	switch len(positional) {
	case 0:
		if cfg.Input.Path == "" {
			return "", fmt.Errorf("%w: pass a CSV or XLSX file or set input.path", ErrNoInput)
		}
		return cfg.Input.Path, nil
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}
}

// withEngineHint appends an operator hint to engine construction errors.
func withEngineHint(err error, s *cardsheet.Settings, assetPath string) error {
	switch {
	case errors.Is(err, cardsheet.ErrTemplateNotFound):
		var available []string
		if resolver, rerr := assets.NewAssetResolver(assetPath); rerr == nil {
			available = resolver.Templates()
		}
		return fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(available))
	case errors.Is(err, cardsheet.ErrDegenerateGrid):
		cardW, _ := s.Card.Width.Pixels(s.DPI)
		cardH, _ := s.Card.Height.Pixels(s.DPI)
		pageW, _ := s.Page.Width.Pixels(s.DPI)
		pageH, _ := s.Page.Height.Pixels(s.DPI)
		return fmt.Errorf("%w%s", err, hints.ForDegenerateGrid(pageW, pageH, cardW, cardH, s.Page.Margin))
	}
	return err
}

// withSourceHint appends the available headers to a missing column error.
func withSourceHint(err error) error {
	var colErr *sheet.ColumnError
	if errors.As(err, &colErr) {
		return fmt.Errorf("%w%s", err, hints.ForMissingColumn(colErr.Column, colErr.Headers))
	}
	return err
}

// printRenderSummary prints the run totals for humans.
func printRenderSummary(w io.Writer, report *cardsheet.Report, pdfPath string, noColor bool) {
	p := message.NewPrinter(language.English)
	ok := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	if noColor {
		ok.DisableColor()
		warn.DisableColor()
	}

	ok.Fprint(w, p.Sprintf("placed %d cards on %d pages", report.Placed, len(report.Pages)))
	fmt.Fprintln(w)
	if skipped := report.SkippedTotal(); skipped > 0 {
		warn.Fprint(w, p.Sprintf("skipped %d of %d rows", skipped, report.Rows))
		fmt.Fprintln(w)
		for _, reason := range report.SkipReasons() {
			fmt.Fprint(w, p.Sprintf("  %-20s %d\n", reason, report.Skipped[reason]))
		}
	}
	fmt.Fprintf(w, "manifest: %s\n", report.ManifestPath)
	if pdfPath != "" && len(report.Pages) > 0 {
		fmt.Fprintf(w, "pdf: %s\n", pdfPath)
	}
}
