package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alnah/go-cardsheet/internal/config"
	"github.com/alnah/go-cardsheet/internal/hints"
	"github.com/alnah/go-cardsheet/internal/sheet"
)

// runLots splits a master sheet into lots and writes the two reports.
func runLots(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseLotsFlags(args, env.Stderr)
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
	mergeLotsFlags(flags, cfg)

	inputPath, err := resolveInput(positional, cfg)
	if err != nil {
		return err
	}

	opts, err := buildLotOptions(cfg, flags.output)
	if err != nil {
		return err
	}

	logFormat, err := resolveLogFormat(flags.common.logFormat, envCfg.LogFormat)
	if err != nil {
		return err
	}
	logger := newLogger(env.Stderr, logFormat, "lots", flags.common.verbose, flags.common.quiet)
	defer func() { _ = logger.Sync() }()

	table, err := sheet.ReadTable(inputPath, flags.sheet, cfg.Input.Limit)
	if err != nil {
		return err
	}
	logger.Debug("master sheet read",
		zap.String("input", inputPath),
		zap.Int("rows", len(table.Rows)),
		zap.Strings("headers", table.Headers),
	)

	res, err := sheet.SplitLots(ctx, table, opts)
	if err != nil {
		var colErr *sheet.ColumnError
		if errors.As(err, &colErr) {
			return fmt.Errorf("%w%s", err, hints.ForMissingColumn(colErr.Column, table.Headers))
		}
		return err
	}

	for _, d := range res.Duplicates {
		logger.Warn("duplicates found",
			zap.String("column", d.Column),
			zap.Int("rows", len(d.Rows)),
		)
	}
	if res.Unassigned > 0 {
		logger.Warn("rows left out of every lot", zap.Int("rows", res.Unassigned))
	}

	if !flags.common.quiet {
		printLotsSummary(env.Stdout, res, flags.common.noColor)
	}
	return nil
}

// mergeLotsFlags copies set flags over config values (CLI wins).
func mergeLotsFlags(flags *lotsFlags, cfg *config.Config) {
	if flags.count > 0 {
		cfg.Lots.Count = flags.count
	}
	if flags.size > 0 {
		cfg.Lots.Size = flags.size
	}
	if flags.serialColumn != "" {
		cfg.Lots.SerialColumn = flags.serialColumn
	}
	if flags.idColumn != "" {
		cfg.Lots.IDColumn = flags.idColumn
	}
	if flags.format != "" {
		cfg.Lots.Format = flags.format
	}
	if flags.limit > 0 {
		cfg.Input.Limit = flags.limit
	}
}

// buildLotOptions converts config to splitter options. The identifier
// column falls back to input.column so one config serves both commands.
func buildLotOptions(cfg *config.Config, dir string) (sheet.LotOptions, error) {
	format, err := sheet.ParseFormat(cfg.Lots.Format)
	if err != nil {
		return sheet.LotOptions{}, err
	}
	idColumn := cfg.Lots.IDColumn
	if idColumn == "" {
		idColumn = cfg.Input.Column
	}
	return sheet.LotOptions{
		Count:        cfg.Lots.Count,
		Size:         cfg.Lots.Size,
		SerialColumn: cfg.Lots.SerialColumn,
		IDColumn:     idColumn,
		Format:       format,
		Dir:          dir,
	}, nil
}

// printLotsSummary prints one line per lot, then the report locations.
func printLotsSummary(w io.Writer, res *sheet.SplitResult, noColor bool) {
	p := message.NewPrinter(language.English)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	if noColor {
		ok.DisableColor()
		warn.DisableColor()
	}

	for _, lot := range res.Lots {
		fmt.Fprintf(w, "%s created with %d records.\n", filepath.Base(lot.Path), lot.Rows)
	}
	for _, d := range res.Duplicates {
		warn.Fprint(w, p.Sprintf("%d duplicate rows in %s", len(d.Rows), d.Column))
		fmt.Fprintln(w)
	}
	ok.Fprint(w, "Report and checking file generated successfully.")
	fmt.Fprintln(w)
}
