package cardsheet

import (
	"fmt"
	"image"
)

// CardGeometry is the size of one card in pixels.
type CardGeometry struct {
	Width  int
	Height int
}

// PageGeometry is the size of one sheet in pixels and the gap kept around
// and between cards.
type PageGeometry struct {
	Width  int
	Height int
	Margin int
}

// Origin returns the top-left pixel of the slot at row, col.
func (p PageGeometry) Origin(row, col int, card CardGeometry) image.Point {
	return image.Pt(
		p.Margin+col*(card.Width+p.Margin),
		p.Margin+row*(card.Height+p.Margin),
	)
}

// Grid is the number of card slots per page.
type Grid struct {
	Columns int
	Rows    int
}

// Capacity returns the number of cards that fill one page.
func (g Grid) Capacity() int {
	return g.Columns * g.Rows
}

// Slot maps the i-th card of a page to its row and column, filling
// left to right, then top to bottom.
func (g Grid) Slot(i int) (row, col int) {
	return i / g.Columns, i % g.Columns
}

// ComputeGrid fits as many cards as possible on the page.
// Returns ErrDegenerateGrid when not even one card fits.
func ComputeGrid(page PageGeometry, card CardGeometry) (Grid, error) {
	if page.Margin < 0 {
		return Grid{}, fmt.Errorf("%w: %dpx", ErrInvalidMargin, page.Margin)
	}
	if card.Width <= 0 || card.Height <= 0 {
		return Grid{}, fmt.Errorf("%w: card %dx%dpx", ErrInvalidLength, card.Width, card.Height)
	}

	g := Grid{
		Columns: (page.Width - page.Margin) / (card.Width + page.Margin),
		Rows:    (page.Height - page.Margin) / (card.Height + page.Margin),
	}
	if g.Columns < 1 || g.Rows < 1 {
		return Grid{}, fmt.Errorf("%w: page %dx%dpx, card %dx%dpx, margin %dpx (%d columns, %d rows)",
			ErrDegenerateGrid, page.Width, page.Height, card.Width, card.Height, page.Margin, g.Columns, g.Rows)
	}
	return g, nil
}

// Layout holds every geometry derived from Settings. It is computed once
// per run and never changes afterwards.
type Layout struct {
	DPI  float64
	Card CardGeometry
	Page PageGeometry
	Grid Grid
}

// NewLayout converts the physical sizes in s to pixels and fits the grid.
func NewLayout(s *Settings) (Layout, error) {
	if s == nil {
		s = DefaultSettings()
	}
	if !(s.DPI > 0) {
		return Layout{}, fmt.Errorf("%w: %g", ErrInvalidDPI, s.DPI)
	}

	cardW, err := s.Card.Width.Pixels(s.DPI)
	if err != nil {
		return Layout{}, fmt.Errorf("card width: %w", err)
	}
	cardH, err := s.Card.Height.Pixels(s.DPI)
	if err != nil {
		return Layout{}, fmt.Errorf("card height: %w", err)
	}
	pageW, err := s.Page.Width.Pixels(s.DPI)
	if err != nil {
		return Layout{}, fmt.Errorf("page width: %w", err)
	}
	pageH, err := s.Page.Height.Pixels(s.DPI)
	if err != nil {
		return Layout{}, fmt.Errorf("page height: %w", err)
	}

	l := Layout{
		DPI:  s.DPI,
		Card: CardGeometry{Width: cardW, Height: cardH},
		Page: PageGeometry{Width: pageW, Height: pageH, Margin: s.Page.Margin},
	}
	l.Grid, err = ComputeGrid(l.Page, l.Card)
	if err != nil {
		return Layout{}, err
	}
	return l, nil
}
