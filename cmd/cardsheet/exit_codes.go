package main

import (
	"errors"
	"os"

	"github.com/alnah/go-cardsheet"
	"github.com/alnah/go-cardsheet/internal/config"
	"github.com/alnah/go-cardsheet/internal/sheet"
)

// Exit codes for the cardsheet CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every identifier placed
	ExitGeneral = 1 // General/unexpected error, including interruption
	ExitUsage   = 2 // Invalid flags, config, or settings
	ExitIO      = 3 // Unreadable source, missing template, unwritable output
	ExitPartial = 4 // Run finished with skips and --strict was set
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrPartial) {
		return ExitPartial
	}

	// Usage/config/validation errors (exit 2). Checked before I/O because
	// a missing column or bad extension is also an unreadable source.
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, sheet.ErrMissingColumn) ||
		errors.Is(err, sheet.ErrUnsupportedFormat) ||
		errors.Is(err, sheet.ErrInvalidLots) ||
		errors.Is(err, cardsheet.ErrInvalidLength) ||
		errors.Is(err, cardsheet.ErrInvalidDPI) ||
		errors.Is(err, cardsheet.ErrInvalidMargin) ||
		errors.Is(err, cardsheet.ErrDegenerateGrid) ||
		errors.Is(err, cardsheet.ErrInvalidSymbolSize) ||
		errors.Is(err, cardsheet.ErrInvalidSymbology) ||
		errors.Is(err, cardsheet.ErrInvalidFontSize) ||
		errors.Is(err, cardsheet.ErrInvalidBatchSize) ||
		errors.Is(err, cardsheet.ErrInvalidWorkers) ||
		errors.Is(err, cardsheet.ErrInvalidFormat) ||
		errors.Is(err, cardsheet.ErrInvalidSide) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, cardsheet.ErrSourceUnreadable) ||
		errors.Is(err, cardsheet.ErrTemplateNotFound) ||
		errors.Is(err, cardsheet.ErrOutputDir) ||
		errors.Is(err, cardsheet.ErrPageWrite) ||
		errors.Is(err, cardsheet.ErrManifestWrite) {
		return ExitIO
	}

	return ExitGeneral
}
