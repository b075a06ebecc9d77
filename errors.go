package cardsheet

import "errors"

// Sentinel errors for library operations.
var (
	// Geometry and unit errors. All are fatal configuration errors.
	ErrInvalidLength  = errors.New("invalid length")
	ErrInvalidDPI     = errors.New("invalid resolution")
	ErrInvalidMargin  = errors.New("invalid margin")
	ErrDegenerateGrid = errors.New("no card fits on the page")

	// Settings validation errors.
	ErrInvalidSymbolSize = errors.New("invalid symbol size")
	ErrInvalidSymbology  = errors.New("invalid symbology")
	ErrInvalidFontSize   = errors.New("invalid label font size")
	ErrInvalidBatchSize  = errors.New("invalid batch size")
	ErrInvalidWorkers    = errors.New("invalid worker count")
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidSide       = errors.New("invalid card side")

	// Fatal run errors.
	ErrTemplateNotFound = errors.New("background template not found")
	ErrSourceUnreadable = errors.New("identifier source unreadable")
	ErrOutputDir        = errors.New("failed to create output directory")
	ErrPageWrite        = errors.New("failed to write page")
	ErrManifestWrite    = errors.New("failed to write manifest")

	// Per-identifier errors. The identifier is skipped and the run continues.
	ErrEmptyIdentifier = errors.New("identifier is empty")
	ErrSymbolRender    = errors.New("code symbol generation failed")
	ErrCardSave        = errors.New("failed to save card")
	ErrCardResize      = errors.New("failed to resize card")
)
