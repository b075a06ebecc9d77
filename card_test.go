package cardsheet

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// redSymbols renders a solid red block.
type redSymbols struct{}

func (redSymbols) Render(string, SymbolOptions) (image.Image, error) {
	return imaging.New(50, 20, color.NRGBA{R: 255, A: 255}), nil
}

func newTestRenderer(t *testing.T, s *Settings, symbols SymbolRenderer) *CardRenderer {
	t.Helper()

	tmpl := imaging.New(1087, 638, color.White)
	r, err := NewCardRenderer(tmpl, s, symbols, BasicFont{})
	if err != nil {
		t.Fatalf("NewCardRenderer() error = %v", err)
	}
	return r
}

func TestCardRenderer_Render(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.Output.Dir = t.TempDir()
	if err := os.MkdirAll(filepath.Join(s.Output.Dir, "cards"), 0o755); err != nil {
		t.Fatal(err)
	}
	r := newTestRenderer(t, s, redSymbols{})

	card, err := r.Render(context.Background(), "1001")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantPath := filepath.Join(s.Output.Dir, "cards", "1001_back.png")
	if card.Path != wantPath {
		t.Errorf("Path = %q, want %q", card.Path, wantPath)
	}
	if card.Identifier != "1001" {
		t.Errorf("Identifier = %q, want 1001", card.Identifier)
	}
	if b := card.Image.Bounds(); b.Dx() != 1087 || b.Dy() != 638 {
		t.Errorf("card size = %dx%d, want template size 1087x638", b.Dx(), b.Dy())
	}

	// Symbol resized to 260x120 at ((1087-260)/2+20, (638-120)/2-50) = (433, 209)
	checks := []struct {
		name string
		pt   image.Point
		red  bool
	}{
		{"symbol centre", image.Pt(433+130, 209+60), true},
		{"symbol top-left inside", image.Pt(435, 211), true},
		{"left of symbol", image.Pt(430, 269), false},
		{"above symbol", image.Pt(563, 206), false},
		{"card corner", image.Pt(0, 0), false},
	}
	for _, c := range checks {
		r, g, b, _ := card.Image.At(c.pt.X, c.pt.Y).RGBA()
		isRed := r > 0xf000 && g < 0x1000 && b < 0x1000
		if isRed != c.red {
			t.Errorf("%s at %v: red = %v, want %v", c.name, c.pt, isRed, c.red)
		}
	}

	// Label drawn in black below the symbol (top at 209+120+10 = 339)
	if !hasDarkPixel(card.Image, image.Rect(433, 339, 433+260, 339+20)) {
		t.Error("no label pixels below the symbol")
	}

	saved, err := imaging.Open(card.Path)
	if err != nil {
		t.Fatalf("saved card unreadable: %v", err)
	}
	if saved.Bounds().Dx() != 1087 {
		t.Errorf("saved width = %d, want 1087", saved.Bounds().Dx())
	}
}

func hasDarkPixel(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr < 0x4000 && cg < 0x4000 && cb < 0x4000 {
				return true
			}
		}
	}
	return false
}

func TestCardRenderer_Render_Skips(t *testing.T) {
	t.Parallel()

	t.Run("symbol failure", func(t *testing.T) {
		t.Parallel()

		s := DefaultSettings()
		s.Output.Dir = t.TempDir()
		r := newTestRenderer(t, s, stubSymbols{fail: map[string]bool{"bad": true}})

		_, err := r.Render(context.Background(), "bad")
		if !errors.Is(err, ErrSymbolRender) {
			t.Errorf("Render() error = %v, want ErrSymbolRender", err)
		}
		if _, statErr := os.Stat(filepath.Join(s.Output.Dir, "cards", "bad_back.png")); !os.IsNotExist(statErr) {
			t.Error("card file written for failed symbol")
		}
	})

	t.Run("empty identifier", func(t *testing.T) {
		t.Parallel()

		s := DefaultSettings()
		s.Output.Dir = t.TempDir()
		r := newTestRenderer(t, s, redSymbols{})

		_, err := r.Render(context.Background(), "  ")
		if !errors.Is(err, ErrEmptyIdentifier) {
			t.Errorf("Render() error = %v, want ErrEmptyIdentifier", err)
		}
	})

	t.Run("unwritable cards directory", func(t *testing.T) {
		t.Parallel()

		s := DefaultSettings()
		s.Output.Dir = t.TempDir()
		// A file where the cards directory should be
		s.Output.CardsDir = filepath.Join(s.Output.Dir, "cards.txt")
		if err := os.WriteFile(s.Output.CardsDir, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		r := newTestRenderer(t, s, redSymbols{})

		_, err := r.Render(context.Background(), "1001")
		if !errors.Is(err, ErrCardSave) {
			t.Errorf("Render() error = %v, want ErrCardSave", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		s := DefaultSettings()
		s.Output.Dir = t.TempDir()
		r := newTestRenderer(t, s, redSymbols{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Render(ctx, "1001")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Render() error = %v, want context.Canceled", err)
		}
	})
}

func TestCardRenderer_Path(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.Output.CardsDir = "final_design"
	s.Output.CardFormat = "jpeg"
	s.Card.Side = "front"
	r := newTestRenderer(t, s, redSymbols{})

	tests := []struct {
		id   string
		want string
	}{
		{"1001", filepath.Join("final_design", "1001_front.jpg")},
		{"AB/12", filepath.Join("final_design", "AB_12_front.jpg")},
		{"../etc", filepath.Join("final_design", "_._etc_front.jpg")},
	}
	for _, tt := range tests {
		got, err := r.Path(tt.id)
		if err != nil {
			t.Fatalf("Path(%q) error = %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestNewCardRenderer(t *testing.T) {
	t.Parallel()

	t.Run("nil template", func(t *testing.T) {
		t.Parallel()

		_, err := NewCardRenderer(nil, nil, nil, nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("NewCardRenderer(nil) error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("empty template", func(t *testing.T) {
		t.Parallel()

		_, err := NewCardRenderer(image.NewRGBA(image.Rect(0, 0, 0, 0)), nil, nil, nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("NewCardRenderer(empty) error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("defaults collaborators from settings", func(t *testing.T) {
		t.Parallel()

		s := DefaultSettings()
		s.Symbol.Symbology = SymbologyQR
		r, err := NewCardRenderer(testTemplate(), s, nil, nil)
		if err != nil {
			t.Fatalf("NewCardRenderer() error = %v", err)
		}
		if _, ok := r.symbols.(QRRenderer); !ok {
			t.Errorf("symbols = %T, want QRRenderer", r.symbols)
		}
		if _, ok := r.fonts.(*FontChain); !ok {
			t.Errorf("fonts = %T, want *FontChain", r.fonts)
		}
	})
}
