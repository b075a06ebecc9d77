package cardsheet

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// Placement is where a card landed.
type Placement struct {
	Page   int // 1-based page index
	Row    int
	Column int
	X      int // Top-left pixel on the page
	Y      int
}

// Tiler packs cards onto pages in row-major order. Exactly one page is
// live at a time; when its last slot is filled it is sealed, handed to the
// sink and dropped. Not safe for concurrent use.
type Tiler struct {
	layout Layout
	sink   PageSink
	logger *zap.Logger

	page   *image.RGBA // nil until the first card of a page is placed
	index  int         // Index of the live page
	row    int
	col    int
	placed int // Cards on the live page
	pages  []string
}

// NewTiler creates a tiler writing sealed pages to sink.
func NewTiler(layout Layout, sink PageSink, logger *zap.Logger) *Tiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tiler{
		layout: layout,
		sink:   sink,
		logger: logger,
		index:  1,
	}
}

// Place pastes card into the next free slot. Cards whose size differs from
// the card geometry are resampled first. When the slot was the last on the
// page, the page is sealed before Place returns.
//
// An ErrCardResize error means the card was not placed and the tiler state
// is unchanged. An ErrPageWrite error means the card was placed but its
// page could not be persisted.
func (t *Tiler) Place(card image.Image) (Placement, error) {
	if card == nil || card.Bounds().Empty() {
		return Placement{}, fmt.Errorf("%w: empty image", ErrCardResize)
	}

	cw, ch := t.layout.Card.Width, t.layout.Card.Height
	if b := card.Bounds(); b.Dx() != cw || b.Dy() != ch {
		card = imaging.Resize(card, cw, ch, imaging.Lanczos)
		if b := card.Bounds(); b.Dx() != cw || b.Dy() != ch {
			return Placement{}, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrCardResize, b.Dx(), b.Dy(), cw, ch)
		}
	}

	if t.page == nil {
		t.page = t.newPage()
	}

	at := t.layout.Page.Origin(t.row, t.col, t.layout.Card)
	xdraw.Copy(t.page, at, card, card.Bounds(), xdraw.Over, nil)

	p := Placement{Page: t.index, Row: t.row, Column: t.col, X: at.X, Y: at.Y}
	t.placed++

	t.col++
	if t.col >= t.layout.Grid.Columns {
		t.col = 0
		t.row++
	}
	if t.row >= t.layout.Grid.Rows {
		if err := t.seal(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Close seals the live page if it holds at least one card.
// A partially filled final page is expected.
func (t *Tiler) Close() error {
	if t.placed == 0 {
		return nil
	}
	return t.seal()
}

// Pages returns the paths of sealed pages in page order.
func (t *Tiler) Pages() []string {
	out := make([]string, len(t.pages))
	copy(out, t.pages)
	return out
}

// Sealed returns the number of sealed pages.
func (t *Tiler) Sealed() int {
	return len(t.pages)
}

func (t *Tiler) seal() error {
	path, err := t.sink.Seal(t.index, t.page)
	if err != nil {
		return fmt.Errorf("%w: page %d: %v", ErrPageWrite, t.index, err)
	}

	t.logger.Info("page sealed",
		zap.Int("page", t.index),
		zap.Int("cards", t.placed),
		zap.String("path", path),
	)

	t.pages = append(t.pages, path)
	t.index++
	t.page = nil
	t.row, t.col, t.placed = 0, 0, 0
	return nil
}

// newPage returns a blank white page.
func (t *Tiler) newPage() *image.RGBA {
	bounds := image.Rect(0, 0, t.layout.Page.Width, t.layout.Page.Height)
	page := image.NewRGBA(bounds)
	xdraw.Draw(page, bounds, image.White, image.Point{}, xdraw.Src)
	return page
}
