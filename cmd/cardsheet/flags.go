package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	noColor   bool
	logFormat string
}

// inputFlags holds identifier source flags.
type inputFlags struct {
	column string
	sheet  string
	limit  int
}

// outputFlags holds artifact location flags.
type outputFlags struct {
	dir            string
	cardsDir       string
	cardFormat     string
	pageFormat     string
	pagePrefix     string
	manifest       string
	manifestFormat string
	pdf            string
}

// layoutFlags holds card and page geometry flags.
type layoutFlags struct {
	cardWidth     string
	cardHeight    string
	pageWidth     string
	pageHeight    string
	margin        int
	dpi           float64
	side          string
	template      string
	assetPath     string
	offsetX       int
	symbolOffsetY int
	labelGap      int
}

// symbolFlags holds code symbol flags.
type symbolFlags struct {
	symbology string
	width     int
	height    int
	font      string
	fontSize  float64
}

// runFlags holds throughput flags.
type runFlags struct {
	batchSize int
	workers   int
	strict    bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	input  inputFlags
	output outputFlags
	layout layoutFlags
	symbol symbolFlags
	run    runFlags

	// changed reports whether a flag was set on the command line, for
	// flags whose zero value is meaningful.
	changed func(name string) bool
}

// lotsFlags holds all flags for the lots command.
type lotsFlags struct {
	common       commonFlags
	output       string
	count        int
	size         int
	serialColumn string
	idColumn     string
	format       string
	sheet        string
	limit        int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&f.logFormat, "log-format", "", "log encoding: json, console")
}

// addInputFlags adds identifier source flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.column, "column", "", "identifier column header (default: UNIQUENUMBER)")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX worksheet (default: first)")
	fs.IntVar(&f.limit, "limit", 0, "read at most n rows (0 = all)")
}

// addOutputFlags adds artifact location flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory for pages and manifest")
	fs.StringVar(&f.cardsDir, "cards-dir", "", "directory for per-card images (default: <output>/cards)")
	fs.StringVar(&f.cardFormat, "card-format", "", "card image format: png, jpg")
	fs.StringVar(&f.pageFormat, "page-format", "", "page image format: png, jpg")
	fs.StringVar(&f.pagePrefix, "page-prefix", "", "page file name prefix (default: page)")
	fs.StringVar(&f.manifest, "manifest", "", "manifest file name or path")
	fs.StringVar(&f.manifestFormat, "manifest-format", "", "manifest format: csv, yaml")
	fs.StringVar(&f.pdf, "pdf", "", "also write all pages to this PDF")
}

// addLayoutFlags adds geometry flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVar(&f.cardWidth, "card-width", "", "card width, e.g. 92mm")
	fs.StringVar(&f.cardHeight, "card-height", "", "card height, e.g. 54mm")
	fs.StringVar(&f.pageWidth, "page-width", "", "page width, e.g. 12in")
	fs.StringVar(&f.pageHeight, "page-height", "", "page height, e.g. 18in")
	fs.IntVar(&f.margin, "margin", 0, "pixels around and between cards")
	fs.Float64Var(&f.dpi, "dpi", 0, "print resolution (default: 300)")
	fs.StringVar(&f.side, "side", "", "card file suffix (default: back)")
	fs.StringVarP(&f.template, "template", "t", "", "background template name or image path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with a templates/ folder")
	fs.IntVar(&f.offsetX, "offset-x", 0, "horizontal shift of symbol and label in pixels")
	fs.IntVar(&f.symbolOffsetY, "symbol-offset-y", 0, "vertical shift of the symbol in pixels")
	fs.IntVar(&f.labelGap, "label-gap", 0, "pixels between symbol and label")
}

// addSymbolFlags adds symbol and label flags to a FlagSet.
func addSymbolFlags(fs *flag.FlagSet, f *symbolFlags) {
	fs.StringVar(&f.symbology, "symbology", "", "code symbol: code128, qr")
	fs.IntVar(&f.width, "symbol-width", 0, "symbol width in pixels")
	fs.IntVar(&f.height, "symbol-height", 0, "symbol height in pixels")
	fs.StringVar(&f.font, "font", "", "label font name or file path")
	fs.Float64Var(&f.fontSize, "font-size", 0, "label size in pixels")
}

// addRunFlags adds throughput flags to a FlagSet.
func addRunFlags(fs *flag.FlagSet, f *runFlags) {
	fs.IntVarP(&f.batchSize, "batch-size", "b", 0, "rows read at a time (default: 200)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel card renders (0 = auto)")
	fs.BoolVar(&f.strict, "strict", false, "exit 4 when any identifier was skipped")
}

// newRenderFlagSet builds the render flag set bound to a fresh renderFlags.
func newRenderFlagSet(usage io.Writer) (*flag.FlagSet, *renderFlags) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &renderFlags{changed: fs.Changed}

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addOutputFlags(fs, &f.output)
	addLayoutFlags(fs, &f.layout)
	addSymbolFlags(fs, &f.symbol)
	addRunFlags(fs, &f.run)

	fs.Usage = func() { printRenderUsage(usage) }
	return fs, f
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs, f := newRenderFlagSet(usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// newLotsFlagSet builds the lots flag set bound to a fresh lotsFlags.
func newLotsFlagSet(usage io.Writer) (*flag.FlagSet, *lotsFlags) {
	fs := flag.NewFlagSet("lots", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &lotsFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "directory for lot files and reports (default: .)")
	fs.IntVar(&f.count, "count", 0, "number of lots (default: 30)")
	fs.IntVar(&f.size, "size", 0, "rows per lot (default: 1000)")
	fs.StringVar(&f.serialColumn, "serial-column", "", "serial number header (default: SINO)")
	fs.StringVar(&f.idColumn, "id-column", "", "identifier header (default: UNIQUENUMBER)")
	fs.StringVar(&f.format, "format", "", "lot file format: xlsx, csv")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX worksheet (default: first)")
	fs.IntVar(&f.limit, "limit", 0, "read at most n rows (0 = all)")

	fs.Usage = func() { printLotsUsage(usage) }
	return fs, f
}

// parseLotsFlags parses lots command flags and returns positional args.
func parseLotsFlags(args []string, usage io.Writer) (*lotsFlags, []string, error) {
	fs, f := newLotsFlagSet(usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
