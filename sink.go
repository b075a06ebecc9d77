package cardsheet

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/signintech/gopdf"

	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// pointsPerInch is the PDF user space unit.
const pointsPerInch = 72

// PageSink persists sealed pages. Seal must not retain page after it
// returns unless it copies it; the tiler drops it immediately.
type PageSink interface {
	// Seal stores the page with the given 1-based index and returns the
	// location it was written to.
	Seal(index int, page image.Image) (string, error)

	// Close flushes anything buffered.
	Close() error
}

// ImageSink writes one image file per page: {dir}/{prefix}_{index}.{ext}.
type ImageSink struct {
	dir    string
	prefix string
	ext    string
	format imaging.Format
}

// NewImageSink creates a sink writing png or jpg files to dir.
func NewImageSink(dir, prefix, format string) (*ImageSink, error) {
	if !isValidImageFormat(format) {
		return nil, fmt.Errorf("%w: page format %q", ErrInvalidFormat, format)
	}
	if prefix == "" {
		prefix = DefaultPagePrefix
	}
	ext := imageExt(format)
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &ImageSink{dir: dir, prefix: prefix, ext: ext, format: f}, nil
}

// Path returns the file page index is written to.
func (s *ImageSink) Path(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d.%s", s.prefix, index, s.ext))
}

// Seal implements PageSink.
func (s *ImageSink) Seal(index int, page image.Image) (string, error) {
	path := s.Path(index)
	err := fileutil.AtomicWrite(path, func(w io.Writer) error {
		return imaging.Encode(w, page, s.format, imaging.JPEGQuality(100))
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// Close implements PageSink.
func (s *ImageSink) Close() error { return nil }

// PDFSink collects pages into one print-ready PDF at physical page size.
// The file is written on Close.
type PDFSink struct {
	path  string
	size  gopdf.Rect
	pdf   *gopdf.GoPdf
	pages int
}

// NewPDFSink creates a sink for pages of layout's size at layout's DPI.
func NewPDFSink(path string, layout Layout) *PDFSink {
	size := gopdf.Rect{
		W: float64(layout.Page.Width) * pointsPerInch / layout.DPI,
		H: float64(layout.Page.Height) * pointsPerInch / layout.DPI,
	}
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: size})
	return &PDFSink{path: path, size: size, pdf: pdf}
}

// Seal implements PageSink. The returned location is "{path}#page={index}".
func (s *PDFSink) Seal(index int, page image.Image) (string, error) {
	s.pdf.AddPage()
	if err := s.pdf.ImageFrom(page, 0, 0, &s.size); err != nil {
		return "", err
	}
	s.pages++
	return fmt.Sprintf("%s#page=%d", s.path, index), nil
}

// Close writes the PDF. Nothing is written when no page was sealed.
func (s *PDFSink) Close() error {
	if s.pages == 0 {
		return nil
	}
	return fileutil.AtomicWrite(s.path, func(w io.Writer) error {
		_, err := s.pdf.WriteTo(w)
		return err
	})
}

// MultiSink seals every page in all sinks. The first sink's location is
// reported.
type MultiSink []PageSink

// Seal implements PageSink.
func (m MultiSink) Seal(index int, page image.Image) (string, error) {
	var first string
	for i, s := range m {
		path, err := s.Seal(index, page)
		if err != nil {
			return "", err
		}
		if i == 0 {
			first = path
		}
	}
	return first, nil
}

// Close implements PageSink. Every sink is closed.
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Compile-time interface checks.
var (
	_ PageSink = (*ImageSink)(nil)
	_ PageSink = (*PDFSink)(nil)
	_ PageSink = MultiSink(nil)
)
