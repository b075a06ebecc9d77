package assets

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// writeTemplate writes a solid-colour PNG of the given size and returns its path.
func writeTemplate(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}
	return path
}

func assertSize(t *testing.T, img image.Image, w, h int) {
	t.Helper()

	if img == nil {
		t.Fatal("image is nil")
	}
	if got := img.Bounds(); got.Dx() != w || got.Dy() != h {
		t.Errorf("size = %dx%d, want %dx%d", got.Dx(), got.Dy(), w, h)
	}
}
