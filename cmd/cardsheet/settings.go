package main

import (
	"fmt"

	"github.com/alnah/go-cardsheet"
	"github.com/alnah/go-cardsheet/internal/config"
)

// mergeRenderFlags copies set flags over config values (CLI wins).
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	changed := flags.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	// Input
	if flags.input.column != "" {
		cfg.Input.Column = flags.input.column
	}
	if flags.input.limit > 0 {
		cfg.Input.Limit = flags.input.limit
	}

	// Output
	if flags.output.dir != "" {
		cfg.Output.Dir = flags.output.dir
	}
	if flags.output.cardsDir != "" {
		cfg.Output.CardsDir = flags.output.cardsDir
	}
	if flags.output.cardFormat != "" {
		cfg.Output.CardFormat = flags.output.cardFormat
	}
	if flags.output.pageFormat != "" {
		cfg.Output.PageFormat = flags.output.pageFormat
	}
	if flags.output.pagePrefix != "" {
		cfg.Output.PagePrefix = flags.output.pagePrefix
	}
	if flags.output.manifest != "" {
		cfg.Output.Manifest = flags.output.manifest
	}
	if flags.output.manifestFormat != "" {
		cfg.Output.ManifestFormat = flags.output.manifestFormat
	}
	if flags.output.pdf != "" {
		cfg.Output.PDF = flags.output.pdf
	}

	// Layout
	if flags.layout.cardWidth != "" {
		cfg.Card.Width = flags.layout.cardWidth
	}
	if flags.layout.cardHeight != "" {
		cfg.Card.Height = flags.layout.cardHeight
	}
	if flags.layout.pageWidth != "" {
		cfg.Page.Width = flags.layout.pageWidth
	}
	if flags.layout.pageHeight != "" {
		cfg.Page.Height = flags.layout.pageHeight
	}
	if flags.layout.dpi > 0 {
		cfg.Page.DPI = flags.layout.dpi
	}
	if flags.layout.side != "" {
		cfg.Card.Side = flags.layout.side
	}
	if flags.layout.template != "" {
		cfg.Card.Template = flags.layout.template
	}
	if flags.layout.assetPath != "" {
		cfg.Assets.BasePath = flags.layout.assetPath
	}
	// Zero is a valid margin and offset, so these follow the command line
	// rather than the zero value.
	if changed("margin") {
		cfg.Page.Margin = intPtr(flags.layout.margin)
	}
	if changed("offset-x") {
		cfg.Card.OffsetX = intPtr(flags.layout.offsetX)
	}
	if changed("symbol-offset-y") {
		cfg.Card.SymbolOffsetY = intPtr(flags.layout.symbolOffsetY)
	}
	if changed("label-gap") {
		cfg.Card.LabelGap = intPtr(flags.layout.labelGap)
	}

	// Symbol and label
	if flags.symbol.symbology != "" {
		cfg.Symbol.Symbology = flags.symbol.symbology
	}
	if flags.symbol.width > 0 {
		cfg.Symbol.Width = flags.symbol.width
	}
	if flags.symbol.height > 0 {
		cfg.Symbol.Height = flags.symbol.height
	}
	if flags.symbol.font != "" {
		cfg.Label.Font = flags.symbol.font
	}
	if flags.symbol.fontSize > 0 {
		cfg.Label.Size = flags.symbol.fontSize
	}

	// Run
	if flags.run.batchSize > 0 {
		cfg.Run.BatchSize = flags.run.batchSize
	}
	if flags.run.workers > 0 {
		cfg.Run.Workers = flags.run.workers
	}
}

// buildSettings converts a merged config into engine settings.
// Unset fields keep the values of cardsheet.DefaultSettings.
func buildSettings(cfg *config.Config) (*cardsheet.Settings, error) {
	s := cardsheet.DefaultSettings()

	if cfg.Page.DPI > 0 {
		s.DPI = cfg.Page.DPI
	}
	s.Symbol.Options.DPI = s.DPI

	lengths := []struct {
		name  string
		value string
		dst   *cardsheet.Length
	}{
		{"card.width", cfg.Card.Width, &s.Card.Width},
		{"card.height", cfg.Card.Height, &s.Card.Height},
		{"page.width", cfg.Page.Width, &s.Page.Width},
		{"page.height", cfg.Page.Height, &s.Page.Height},
	}
	for _, l := range lengths {
		if l.value == "" {
			continue
		}
		parsed, err := cardsheet.ParseLength(l.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.name, err)
		}
		*l.dst = parsed
	}

	// Card
	if cfg.Card.Side != "" {
		s.Card.Side = cfg.Card.Side
	}
	if cfg.Card.Template != "" {
		s.Card.Template = cfg.Card.Template
	}
	if cfg.Card.OffsetX != nil {
		s.Card.OffsetX = *cfg.Card.OffsetX
	}
	if cfg.Card.SymbolOffsetY != nil {
		s.Card.SymbolOffsetY = *cfg.Card.SymbolOffsetY
	}
	if cfg.Card.LabelGap != nil {
		s.Card.LabelGap = *cfg.Card.LabelGap
	}
	if cfg.Page.Margin != nil {
		s.Page.Margin = *cfg.Page.Margin
	}

	// Symbol
	if cfg.Symbol.Symbology != "" {
		s.Symbol.Symbology = cfg.Symbol.Symbology
	}
	if cfg.Symbol.Width > 0 {
		s.Symbol.Width = cfg.Symbol.Width
	}
	if cfg.Symbol.Height > 0 {
		s.Symbol.Height = cfg.Symbol.Height
	}
	if cfg.Symbol.ModuleWidth > 0 {
		s.Symbol.Options.ModuleWidth = cfg.Symbol.ModuleWidth
	}
	if cfg.Symbol.ModuleHeight > 0 {
		s.Symbol.Options.ModuleHeight = cfg.Symbol.ModuleHeight
	}
	if cfg.Symbol.QuietZone > 0 {
		s.Symbol.Options.QuietZone = cfg.Symbol.QuietZone
	}

	// Label
	if cfg.Label.Font != "" {
		s.Label.Font = cfg.Label.Font
	}
	if cfg.Label.Size > 0 {
		s.Label.Size = cfg.Label.Size
	}

	// Output
	if cfg.Output.Dir != "" {
		s.Output.Dir = cfg.Output.Dir
	}
	if cfg.Output.CardsDir != "" {
		s.Output.CardsDir = cfg.Output.CardsDir
	}
	if cfg.Output.CardFormat != "" {
		s.Output.CardFormat = cfg.Output.CardFormat
	}
	if cfg.Output.PageFormat != "" {
		s.Output.PageFormat = cfg.Output.PageFormat
	}
	if cfg.Output.PagePrefix != "" {
		s.Output.PagePrefix = cfg.Output.PagePrefix
	}
	if cfg.Output.Manifest != "" {
		s.Output.Manifest = cfg.Output.Manifest
	}
	if cfg.Output.ManifestFormat != "" {
		s.Output.ManifestFormat = cfg.Output.ManifestFormat
	}
	s.Output.PDF = cfg.Output.PDF

	// Run
	if cfg.Run.BatchSize > 0 {
		s.BatchSize = cfg.Run.BatchSize
	}
	s.Workers = cardsheet.ResolveWorkers(cfg.Run.Workers)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func intPtr(v int) *int {
	return &v
}
