package cardsheet

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"
)

// SymbolRenderer draws the machine-readable symbol for an identifier.
// Implementations must be safe for concurrent use.
type SymbolRenderer interface {
	Render(text string, opts SymbolOptions) (image.Image, error)
}

// SymbolOptions controls symbol rasterisation. Lengths are millimetres.
// The rendered image is resized to the card's symbol size afterwards,
// so these only affect the sharpness of the source raster.
type SymbolOptions struct {
	ModuleWidth  float64 // Narrowest bar, or QR module edge
	ModuleHeight float64 // Bar height; ignored by QR
	QuietZone    float64 // Blank space left and right of the bars
	DPI          float64
}

// DefaultSymbolOptions returns options that give a crisp Code 128 raster
// at 300 DPI before it is resized to 260x120 pixels.
func DefaultSymbolOptions() SymbolOptions {
	return SymbolOptions{
		ModuleWidth:  0.4,
		ModuleHeight: 15,
		QuietZone:    2.5,
		DPI:          DefaultDPI,
	}
}

// Validate checks that the options describe a drawable symbol.
func (o SymbolOptions) Validate() error {
	if !(o.DPI > 0) {
		return fmt.Errorf("%w: symbol %g dpi", ErrInvalidDPI, o.DPI)
	}
	if !(o.ModuleWidth > 0) || !(o.ModuleHeight > 0) {
		return fmt.Errorf("%w: module %gx%gmm", ErrInvalidSymbolSize, o.ModuleWidth, o.ModuleHeight)
	}
	if o.QuietZone < 0 {
		return fmt.Errorf("%w: quiet zone %gmm", ErrInvalidSymbolSize, o.QuietZone)
	}
	return nil
}

// modulePixels converts the module width, module height and quiet zone
// to pixels. Every module is at least one pixel wide.
func (o SymbolOptions) modulePixels() (width, height, quiet int, err error) {
	if err := o.Validate(); err != nil {
		return 0, 0, 0, err
	}
	if width, err = Pixels(o.ModuleWidth, o.DPI); err != nil {
		return 0, 0, 0, err
	}
	if height, err = Pixels(o.ModuleHeight, o.DPI); err != nil {
		return 0, 0, 0, err
	}
	if o.QuietZone > 0 {
		if quiet, err = Pixels(o.QuietZone, o.DPI); err != nil {
			return 0, 0, 0, err
		}
	}
	return max(width, 1), max(height, 1), quiet, nil
}

// NewSymbolRenderer returns the renderer for a symbology name.
func NewSymbolRenderer(symbology string) (SymbolRenderer, error) {
	switch strings.ToLower(symbology) {
	case SymbologyCode128, "":
		return Code128Renderer{}, nil
	case SymbologyQR:
		return QRRenderer{Level: qrcode.Medium}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbology, symbology)
	}
}

// Code128Renderer draws Code 128 barcodes.
type Code128Renderer struct{}

// Render encodes text as Code 128 on a white background.
func (Code128Renderer) Render(text string, opts SymbolOptions) (image.Image, error) {
	if text == "" {
		return nil, ErrEmptyIdentifier
	}
	mw, mh, quiet, err := opts.modulePixels()
	if err != nil {
		return nil, err
	}

	bc, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolRender, err)
	}
	modules := bc.Bounds().Dx()
	scaled, err := barcode.Scale(bc, modules*mw, mh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolRender, err)
	}

	canvas := imaging.New(modules*mw+2*quiet, mh, color.White)
	return imaging.Paste(canvas, scaled, image.Pt(quiet, 0)), nil
}

// QRRenderer draws QR codes at a fixed recovery level.
type QRRenderer struct {
	Level qrcode.RecoveryLevel
}

// Render encodes text as a QR code on a white background. The quiet zone
// replaces the library's fixed four-module border.
func (q QRRenderer) Render(text string, opts SymbolOptions) (image.Image, error) {
	if text == "" {
		return nil, ErrEmptyIdentifier
	}
	mw, _, quiet, err := opts.modulePixels()
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(text, q.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolRender, err)
	}
	code.DisableBorder = true

	modules := code.VersionNumber*4 + 17
	symbol := code.Image(modules * mw)
	side := symbol.Bounds().Dx() + 2*quiet
	canvas := imaging.New(side, side, color.White)
	return imaging.Paste(canvas, symbol, image.Pt(quiet, quiet)), nil
}

// Compile-time interface checks.
var (
	_ SymbolRenderer = Code128Renderer{}
	_ SymbolRenderer = QRRenderer{}
)
