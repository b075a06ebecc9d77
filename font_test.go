package cardsheet

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// writeFont installs the Go Regular font under dir/sub/name.
func writeFont(t *testing.T, dir, sub, name string) string {
	t.Helper()

	full := filepath.Join(dir, sub)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(full, name)
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFontChain(t *testing.T) {
	t.Parallel()

	t.Run("finds named font in nested directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		want := writeFont(t, dir, filepath.Join("truetype", "msttcorefonts"), "Arial.ttf")

		face, source := NewFontChain("arial", dir).Face(30)
		if source != want {
			t.Errorf("source = %q, want %q", source, want)
		}
		if face == nil {
			t.Fatal("face is nil")
		}
		if h := face.Metrics().Height.Ceil(); h < 25 {
			t.Errorf("face height = %d, want scaled to size 30", h)
		}
	})

	t.Run("font file path", func(t *testing.T) {
		t.Parallel()

		path := writeFont(t, t.TempDir(), "", "label.otf")
		_, source := NewFontChain(path).Face(12)
		if source != path {
			t.Errorf("source = %q, want %q", source, path)
		}
	})

	t.Run("missing font falls back to Go Regular", func(t *testing.T) {
		t.Parallel()

		chain := NewFontChain("no-such-font-xyz", t.TempDir())
		face, source := chain.Face(30)
		if source != FontSourceGoRegular {
			t.Errorf("source = %q, want %q", source, FontSourceGoRegular)
		}
		if face == basicfont.Face7x13 {
			t.Error("got basicfont, want a scalable face")
		}
		if chain.Source() != FontSourceGoRegular {
			t.Errorf("Source() = %q, want %q", chain.Source(), FontSourceGoRegular)
		}
	})

	t.Run("missing font file falls back", func(t *testing.T) {
		t.Parallel()

		_, source := NewFontChain(filepath.Join(t.TempDir(), "gone.ttf")).Face(10)
		if source != FontSourceGoRegular {
			t.Errorf("source = %q, want %q", source, FontSourceGoRegular)
		}
	})

	t.Run("corrupt font falls back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, source := NewFontChain("broken", dir).Face(10)
		if source != FontSourceGoRegular {
			t.Errorf("source = %q, want %q", source, FontSourceGoRegular)
		}
	})

	t.Run("empty name skips lookup", func(t *testing.T) {
		t.Parallel()

		_, source := NewFontChain("").Face(10)
		if source != FontSourceGoRegular {
			t.Errorf("source = %q, want %q", source, FontSourceGoRegular)
		}
	})

	t.Run("concurrent faces", func(t *testing.T) {
		t.Parallel()

		chain := NewFontChain("", t.TempDir())
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				face, _ := chain.Face(20)
				face.Metrics()
			}()
		}
		wg.Wait()
	})
}

func TestBasicFont(t *testing.T) {
	t.Parallel()

	face, source := BasicFont{}.Face(99)
	if face != basicfont.Face7x13 || source != FontSourceBasic {
		t.Errorf("BasicFont.Face() = %v, %q", face, source)
	}
}

func TestSystemFontDirs(t *testing.T) {
	t.Parallel()

	if len(SystemFontDirs()) == 0 {
		t.Error("SystemFontDirs() is empty")
	}
}
