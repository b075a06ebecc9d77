package cardsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// Symbology constants.
const (
	SymbologyCode128 = "code128"
	SymbologyQR      = "qr"
)

// Image format constants for cards and pages.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpg"
)

// Manifest format constants.
const (
	ManifestCSV  = "csv"
	ManifestYAML = "yaml"
)

// Defaults used when a setting is left unset.
const (
	DefaultDPI          = 300
	DefaultMargin       = 20
	DefaultBatchSize    = 200
	DefaultSide         = "back"
	DefaultSymbolWidth  = 260
	DefaultSymbolHeight = 120
	DefaultOffsetX      = 20
	DefaultSymbolOffset = -50
	DefaultLabelGap     = 10
	DefaultFont         = "arial"
	DefaultFontSize     = 30
	DefaultPagePrefix   = "page"
	DefaultManifestName = "manifest.csv"
	DefaultTemplate     = "default"
)

// Settings configures an Engine. Use DefaultSettings and override fields.
type Settings struct {
	DPI       float64 // Resolution shared by card and page
	BatchSize int     // Identifiers read from the source at a time
	Workers   int     // Parallel card renders; 0 or 1 renders sequentially

	Card   CardSettings
	Page   PageSettings
	Symbol SymbolSettings
	Label  LabelSettings
	Output OutputSettings
}

// CardSettings configures one card.
type CardSettings struct {
	Width    Length
	Height   Length
	Side     string // File name suffix, e.g. "back" in "1001_back.png"
	Template string // Template name or image path

	OffsetX       int // Horizontal shift of symbol and label from centre
	SymbolOffsetY int // Vertical shift of the symbol from centre
	LabelGap      int // Pixels between symbol bottom and label top
}

// PageSettings configures the print sheet.
type PageSettings struct {
	Width  Length
	Height Length
	Margin int // Pixels, around and between cards
}

// SymbolSettings configures the code symbol.
type SymbolSettings struct {
	Symbology string
	Width     int // Target pixels; the rendered symbol is resized to fit
	Height    int
	Options   SymbolOptions
}

// LabelSettings configures the text under the symbol.
type LabelSettings struct {
	Font string  // Font name searched on the system, or a font file path
	Size float64 // Pixels
}

// OutputSettings configures artifact locations.
type OutputSettings struct {
	Dir            string // Pages and, by default, manifest and cards
	CardsDir       string // Empty = {Dir}/cards
	CardFormat     string
	PageFormat     string
	PagePrefix     string
	Manifest       string // File name (joined to Dir) or path
	ManifestFormat string // Empty = from Manifest extension
	PDF            string // Optional print-ready PDF path
}

// DefaultSettings returns settings for 92x54mm cards on 12x18in sheets
// at 300 DPI.
func DefaultSettings() *Settings {
	return &Settings{
		DPI:       DefaultDPI,
		BatchSize: DefaultBatchSize,
		Workers:   1,
		Card: CardSettings{
			Width:         MM(92),
			Height:        MM(54),
			Side:          DefaultSide,
			Template:      DefaultTemplate,
			OffsetX:       DefaultOffsetX,
			SymbolOffsetY: DefaultSymbolOffset,
			LabelGap:      DefaultLabelGap,
		},
		Page: PageSettings{
			Width:  Inches(12),
			Height: Inches(18),
			Margin: DefaultMargin,
		},
		Symbol: SymbolSettings{
			Symbology: SymbologyCode128,
			Width:     DefaultSymbolWidth,
			Height:    DefaultSymbolHeight,
			Options:   DefaultSymbolOptions(),
		},
		Label: LabelSettings{
			Font: DefaultFont,
			Size: DefaultFontSize,
		},
		Output: OutputSettings{
			Dir:        "out",
			CardFormat: FormatPNG,
			PageFormat: FormatPNG,
			PagePrefix: DefaultPagePrefix,
			Manifest:   DefaultManifestName,
		},
	}
}

// Validate checks settings without touching the filesystem.
// Returns nil if s is nil (nil means use defaults).
func (s *Settings) Validate() error {
	if s == nil {
		return nil
	}

	if !(s.DPI > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidDPI, s.DPI)
	}
	if s.BatchSize < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidBatchSize, s.BatchSize)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, s.Workers)
	}
	if err := s.Card.Validate(); err != nil {
		return err
	}
	if s.Page.Margin < 0 {
		return fmt.Errorf("%w: %dpx", ErrInvalidMargin, s.Page.Margin)
	}
	if err := s.Symbol.Validate(); err != nil {
		return err
	}
	if !(s.Label.Size > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidFontSize, s.Label.Size)
	}
	return s.Output.Validate()
}

// Validate checks the card side and offsets.
func (c *CardSettings) Validate() error {
	if c.Side == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSide)
	}
	if safe, err := fileutil.SafeName(c.Side); err != nil || safe != c.Side {
		return fmt.Errorf("%w: %q", ErrInvalidSide, c.Side)
	}
	if c.LabelGap < 0 {
		return fmt.Errorf("%w: label gap %dpx", ErrInvalidMargin, c.LabelGap)
	}
	return nil
}

// Validate checks the symbology and target size.
func (s *SymbolSettings) Validate() error {
	if !isValidSymbology(s.Symbology) {
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidSymbology, s.Symbology, SymbologyCode128, SymbologyQR)
	}
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("%w: %dx%dpx", ErrInvalidSymbolSize, s.Width, s.Height)
	}
	return s.Options.Validate()
}

// Validate checks formats and names.
func (o *OutputSettings) Validate() error {
	if !isValidImageFormat(o.CardFormat) {
		return fmt.Errorf("%w: card format %q", ErrInvalidFormat, o.CardFormat)
	}
	if !isValidImageFormat(o.PageFormat) {
		return fmt.Errorf("%w: page format %q", ErrInvalidFormat, o.PageFormat)
	}
	if o.PagePrefix == "" || strings.ContainsAny(o.PagePrefix, `/\`) {
		return fmt.Errorf("%w: page prefix %q", ErrInvalidFormat, o.PagePrefix)
	}
	switch o.manifestFormat() {
	case ManifestCSV, ManifestYAML:
	default:
		return fmt.Errorf("%w: manifest format %q", ErrInvalidFormat, o.ManifestFormat)
	}
	return nil
}

// cardsDir returns CardsDir, defaulting to {Dir}/cards.
func (o *OutputSettings) cardsDir() string {
	if o.CardsDir != "" {
		return o.CardsDir
	}
	return filepath.Join(o.Dir, "cards")
}

// manifestPath returns the manifest location. Bare names go under Dir;
// the default name takes the extension of the chosen format.
func (o *OutputSettings) manifestPath() string {
	name := o.Manifest
	if name == "" {
		name = fileutil.ReplaceExt(DefaultManifestName, o.manifestFormat())
	}
	if fileutil.IsFilePath(name) {
		return name
	}
	return filepath.Join(o.Dir, name)
}

// manifestFormat returns ManifestFormat, or guesses it from the extension.
func (o *OutputSettings) manifestFormat() string {
	if o.ManifestFormat != "" {
		return strings.ToLower(o.ManifestFormat)
	}
	switch strings.ToLower(filepath.Ext(o.Manifest)) {
	case ".yaml", ".yml":
		return ManifestYAML
	default:
		return ManifestCSV
	}
}

// isValidSymbology checks if name is a supported symbology (case-insensitive).
func isValidSymbology(name string) bool {
	switch strings.ToLower(name) {
	case SymbologyCode128, SymbologyQR:
		return true
	}
	return false
}

// isValidImageFormat checks if format is png or jpg (case-insensitive).
func isValidImageFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPNG, FormatJPEG, "jpeg":
		return true
	}
	return false
}

// imageExt normalises a format to a file extension without the dot.
func imageExt(format string) string {
	if f := strings.ToLower(format); f == "jpeg" || f == FormatJPEG {
		return FormatJPEG
	}
	return FormatPNG
}
