package cardsheet

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// Font source names reported by FontResolver.
const (
	FontSourceGoRegular = "goregular"
	FontSourceBasic     = "basicfont"
)

// FontResolver returns a face for label text at size pixels, plus the name
// of the font actually used. It never fails; implementations fall back to
// a built-in face. Each call returns a face the caller may use from one
// goroutine.
type FontResolver interface {
	Face(size float64) (font.Face, string)
}

// FontChain tries a named system font, then the embedded Go Regular font,
// then the fixed-size basicfont face.
type FontChain struct {
	name string
	dirs []string

	once   sync.Once
	font   *opentype.Font
	source string
}

// NewFontChain creates a resolver for name, which may be a font file path
// or a family name such as "arial". Names are searched in dirs, or in the
// platform font directories when dirs is empty. An empty name skips the
// system lookup.
func NewFontChain(name string, dirs ...string) *FontChain {
	if len(dirs) == 0 {
		dirs = SystemFontDirs()
	}
	return &FontChain{name: name, dirs: dirs}
}

// Face implements FontResolver.
func (c *FontChain) Face(size float64) (font.Face, string) {
	c.once.Do(c.load)
	if c.font != nil {
		face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72, // 1pt == 1px
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face, c.source
		}
	}
	return basicfont.Face7x13, FontSourceBasic
}

// Source returns the name of the font the chain settled on.
func (c *FontChain) Source() string {
	c.once.Do(c.load)
	if c.font == nil {
		return FontSourceBasic
	}
	return c.source
}

func (c *FontChain) load() {
	if path := c.locate(); path != "" {
		if data, err := os.ReadFile(path); err == nil { // #nosec G304 -- font path from config or font dirs
			if f, err := opentype.Parse(data); err == nil {
				c.font, c.source = f, path
				return
			}
		}
	}
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		c.font, c.source = f, FontSourceGoRegular
	}
}

// locate returns the font file for c.name, or "" when none is found.
func (c *FontChain) locate() string {
	if c.name == "" {
		return ""
	}
	if fileutil.IsFilePath(c.name) || isFontFile(c.name) {
		if fileutil.FileExists(c.name) {
			return c.name
		}
		return ""
	}

	want := strings.ToLower(c.name)
	for _, dir := range c.dirs {
		var found string
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isFontFile(d.Name()) {
				return nil
			}
			base := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if strings.EqualFold(base, want) {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// SystemFontDirs lists the usual font directories for the current platform.
func SystemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		root := os.Getenv("WINDIR")
		if root == "" {
			root = `C:\Windows`
		}
		dirs := []string{filepath.Join(root, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(home, "Library", "Fonts"),
		}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
		}
	}
}

// BasicFont always returns basicfont.Face7x13. Useful where output must not
// depend on installed fonts.
type BasicFont struct{}

// Face implements FontResolver.
func (BasicFont) Face(float64) (font.Face, string) {
	return basicfont.Face7x13, FontSourceBasic
}

// Compile-time interface checks.
var (
	_ FontResolver = (*FontChain)(nil)
	_ FontResolver = BasicFont{}
)
