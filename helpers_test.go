package cardsheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
)

// Small geometry used by most tests: 10x5px cards, 2px margin on a
// 38x16px page gives 3 columns x 2 rows = 6 cards per page.
const (
	testCardW  = 10
	testCardH  = 5
	testMargin = 2
	testPageW  = 38
	testPageH  = 16
)

// testSettings returns pixel-based settings writing into a temp dir.
func testSettings(t testing.TB) *Settings {
	t.Helper()

	s := DefaultSettings()
	s.Card.Width = Px(testCardW)
	s.Card.Height = Px(testCardH)
	s.Page.Width = Px(testPageW)
	s.Page.Height = Px(testPageH)
	s.Page.Margin = testMargin
	s.Symbol.Width = 4
	s.Symbol.Height = 2
	s.Card.OffsetX = 0
	s.Card.SymbolOffsetY = 0
	s.Card.LabelGap = 0
	s.Output.Dir = t.TempDir()
	return s
}

// testTemplate returns a solid background of the test card size.
func testTemplate() image.Image {
	return imaging.New(testCardW, testCardH, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
}

// ids returns n sequential identifiers starting at first.
func ids(first, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprint(first + i)
	}
	return out
}

// stubSymbols renders a solid black block and fails for listed texts.
type stubSymbols struct {
	fail map[string]bool
}

func (s stubSymbols) Render(text string, _ SymbolOptions) (image.Image, error) {
	if s.fail[text] {
		return nil, errors.New("cannot encode")
	}
	return imaging.New(8, 4, color.Black), nil
}

// memorySink records sealed page indices without encoding.
type memorySink struct {
	mu      sync.Mutex
	sealed  []int
	sizes   []image.Rectangle
	failAt  int // Page index whose Seal fails; 0 = never
	closed  bool
	closeEr error
}

func (m *memorySink) Seal(index int, page image.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index == m.failAt {
		return "", errors.New("disk full")
	}
	m.sealed = append(m.sealed, index)
	m.sizes = append(m.sizes, page.Bounds())
	return fmt.Sprintf("mem://page/%d", index), nil
}

func (m *memorySink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return m.closeEr
}

// failingSource returns good batches, then an error.
type failingSource struct {
	inner   IdentifierSource
	batches int
}

func (f *failingSource) ReadBatch(n int) ([]Row, error) {
	if f.batches == 0 {
		return nil, errors.New("sheet truncated")
	}
	f.batches--
	return f.inner.ReadBatch(n)
}
