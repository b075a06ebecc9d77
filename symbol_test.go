package cardsheet

import (
	"errors"
	"image/color"
	"testing"
)

func TestNewSymbolRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    SymbolRenderer
		wantErr error
	}{
		{name: "code128", want: Code128Renderer{}},
		{name: "", want: Code128Renderer{}},
		{name: "QR", want: QRRenderer{}},
		{name: "pdf417", wantErr: ErrInvalidSymbology},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewSymbolRenderer(tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewSymbolRenderer(%q) error = %v, want %v", tt.name, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSymbolRenderer(%q) error = %v", tt.name, err)
			}
			switch tt.want.(type) {
			case Code128Renderer:
				if _, ok := got.(Code128Renderer); !ok {
					t.Errorf("NewSymbolRenderer(%q) = %T, want Code128Renderer", tt.name, got)
				}
			case QRRenderer:
				if _, ok := got.(QRRenderer); !ok {
					t.Errorf("NewSymbolRenderer(%q) = %T, want QRRenderer", tt.name, got)
				}
			}
		})
	}
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestCode128Renderer_Render(t *testing.T) {
	t.Parallel()

	opts := DefaultSymbolOptions()
	mw, mh, quiet, err := opts.modulePixels()
	if err != nil {
		t.Fatalf("modulePixels() error = %v", err)
	}

	t.Run("numeric identifier", func(t *testing.T) {
		t.Parallel()

		img, err := Code128Renderer{}.Render("1001", opts)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		b := img.Bounds()
		if b.Dy() != mh {
			t.Errorf("height = %d, want %d", b.Dy(), mh)
		}
		if (b.Dx()-2*quiet)%mw != 0 {
			t.Errorf("width %d is not a whole number of %dpx modules plus quiet zones", b.Dx(), mw)
		}
		if !isWhite(img.At(b.Min.X, b.Min.Y)) || !isWhite(img.At(b.Max.X-1, b.Min.Y)) {
			t.Error("quiet zone is not white")
		}
		// Code 128 always starts with a bar
		if isWhite(img.At(b.Min.X+quiet, b.Min.Y+mh/2)) {
			t.Error("first module after quiet zone is not a bar")
		}
	})

	t.Run("longer text gives wider symbol", func(t *testing.T) {
		t.Parallel()

		short, err := Code128Renderer{}.Render("1", opts)
		if err != nil {
			t.Fatal(err)
		}
		long, err := Code128Renderer{}.Render("ABCDEFGH-1001", opts)
		if err != nil {
			t.Fatal(err)
		}
		if long.Bounds().Dx() <= short.Bounds().Dx() {
			t.Errorf("long width %d <= short width %d", long.Bounds().Dx(), short.Bounds().Dx())
		}
	})

	t.Run("no quiet zone", func(t *testing.T) {
		t.Parallel()

		o := opts
		o.QuietZone = 0
		img, err := Code128Renderer{}.Render("1001", o)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if isWhite(img.At(0, 0)) {
			t.Error("symbol without quiet zone should start with a bar")
		}
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()

		_, err := Code128Renderer{}.Render("", opts)
		if !errors.Is(err, ErrEmptyIdentifier) {
			t.Errorf("Render(\"\") error = %v, want ErrEmptyIdentifier", err)
		}
	})

	t.Run("non ascii text", func(t *testing.T) {
		t.Parallel()

		_, err := Code128Renderer{}.Render("né", opts)
		if !errors.Is(err, ErrSymbolRender) {
			t.Errorf("Render(\"né\") error = %v, want ErrSymbolRender", err)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()

		o := opts
		o.DPI = 0
		_, err := Code128Renderer{}.Render("1001", o)
		if !errors.Is(err, ErrInvalidDPI) {
			t.Errorf("Render() error = %v, want ErrInvalidDPI", err)
		}
	})
}

func TestQRRenderer_Render(t *testing.T) {
	t.Parallel()

	r, err := NewSymbolRenderer(SymbologyQR)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultSymbolOptions()

	img, err := r.Render("1001", opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		t.Errorf("QR symbol is %dx%d, want square", b.Dx(), b.Dy())
	}
	if !isWhite(img.At(b.Min.X, b.Min.Y)) {
		t.Error("quiet zone is not white")
	}

	_, _, quiet, err := opts.modulePixels()
	if err != nil {
		t.Fatal(err)
	}
	// Finder pattern corner sits right after the quiet zone
	if isWhite(img.At(b.Min.X+quiet, b.Min.Y+quiet)) {
		t.Error("finder pattern corner is white")
	}

	if _, err := r.Render("", opts); !errors.Is(err, ErrEmptyIdentifier) {
		t.Errorf("Render(\"\") error = %v, want ErrEmptyIdentifier", err)
	}
}

func TestSymbolOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    SymbolOptions
		wantErr error
	}{
		{name: "defaults", opts: DefaultSymbolOptions()},
		{name: "zero quiet zone", opts: SymbolOptions{ModuleWidth: 1, ModuleHeight: 1, DPI: 300}},
		{name: "negative quiet zone", opts: SymbolOptions{ModuleWidth: 1, ModuleHeight: 1, QuietZone: -1, DPI: 300}, wantErr: ErrInvalidSymbolSize},
		{name: "zero module height", opts: SymbolOptions{ModuleWidth: 1, DPI: 300}, wantErr: ErrInvalidSymbolSize},
		{name: "zero dpi", opts: SymbolOptions{ModuleWidth: 1, ModuleHeight: 1}, wantErr: ErrInvalidDPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
