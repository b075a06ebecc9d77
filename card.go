package cardsheet

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// RenderedCard is one finished card and the file it was saved to.
type RenderedCard struct {
	Identifier string
	Path       string
	Image      image.Image
}

// CardRenderer composes cards from a background template, a code symbol
// and a text label. Safe for concurrent use when its SymbolRenderer is.
type CardRenderer struct {
	template *image.NRGBA
	symbols  SymbolRenderer
	fonts    FontResolver

	card   CardSettings
	symbol SymbolSettings
	label  LabelSettings
	dir    string
	format imaging.Format
	ext    string
}

// NewCardRenderer creates a renderer drawing on a copy of template.
// Returns ErrTemplateNotFound if template is nil or empty.
func NewCardRenderer(template image.Image, s *Settings, symbols SymbolRenderer, fonts FontResolver) (*CardRenderer, error) {
	if template == nil || template.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty template image", ErrTemplateNotFound)
	}
	if s == nil {
		s = DefaultSettings()
	}
	if symbols == nil {
		var err error
		if symbols, err = NewSymbolRenderer(s.Symbol.Symbology); err != nil {
			return nil, err
		}
	}
	if fonts == nil {
		fonts = NewFontChain(s.Label.Font)
	}

	ext := imageExt(s.Output.CardFormat)
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return &CardRenderer{
		template: imaging.Clone(template),
		symbols:  symbols,
		fonts:    fonts,
		card:     s.Card,
		symbol:   s.Symbol,
		label:    s.Label,
		dir:      s.Output.cardsDir(),
		format:   format,
		ext:      ext,
	}, nil
}

// Path returns the file a card for id is saved to: {dir}/{id}_{side}.{ext}.
func (r *CardRenderer) Path(id string) (string, error) {
	name, err := fileutil.SafeName(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyIdentifier, err)
	}
	return filepath.Join(r.dir, name+"_"+r.card.Side+"."+r.ext), nil
}

// Render draws and saves the card for id.
// Errors wrap ErrEmptyIdentifier, ErrSymbolRender or ErrCardSave, all of
// which skip the identifier, or the context error.
func (r *CardRenderer) Render(ctx context.Context, id string) (*RenderedCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.Path(id)
	if err != nil {
		return nil, err
	}

	symbol, err := r.symbols.Render(id, r.symbol.Options)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSymbolRender, id, err)
	}
	if symbol == nil || symbol.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %q: empty image", ErrSymbolRender, id)
	}
	// Symbologies quantise to whole modules, so the exact size comes
	// from resampling rather than from the renderer.
	symbol = imaging.Resize(symbol, r.symbol.Width, r.symbol.Height, imaging.Lanczos)

	card := r.compose(id, symbol)

	err = fileutil.AtomicWrite(path, func(w io.Writer) error {
		return imaging.Encode(w, card, r.format, imaging.JPEGQuality(100))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCardSave, path, err)
	}

	return &RenderedCard{Identifier: id, Path: path, Image: card}, nil
}

// compose draws the symbol centred on the background, shifted by the
// configured offsets, and the label centred below it.
func (r *CardRenderer) compose(id string, symbol image.Image) *image.RGBA {
	bounds := r.template.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	sw, sh := symbol.Bounds().Dx(), symbol.Bounds().Dy()

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Copy(canvas, image.Point{}, r.template, bounds, xdraw.Src, nil)

	at := image.Pt((w-sw)/2+r.card.OffsetX, (h-sh)/2+r.card.SymbolOffsetY)
	xdraw.Copy(canvas, at, symbol, symbol.Bounds(), xdraw.Over, nil)

	face, _ := r.fonts.Face(r.label.Size)
	dc := gg.NewContextForRGBA(canvas)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(id,
		float64(w)/2+float64(r.card.OffsetX),
		float64(at.Y+sh+r.card.LabelGap),
		0.5, 1)

	return canvas
}
