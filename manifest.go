package cardsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alnah/go-cardsheet/internal/fileutil"
	"github.com/alnah/go-cardsheet/internal/yamlutil"
)

// manifestHeader is the first CSV record.
var manifestHeader = []string{"identifier", "card_path", "page"}

// ManifestEntry maps one placed identifier to its card file and page.
type ManifestEntry struct {
	Identifier string `yaml:"identifier"`
	CardPath   string `yaml:"card_path"`
	Page       int    `yaml:"page"`
}

// Manifest accumulates entries for one run. It is created at run start,
// appended to as cards are placed, and written once at the end.
// Not safe for concurrent use.
type Manifest struct {
	entries []ManifestEntry
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{}
}

// Add appends an entry.
func (m *Manifest) Add(e ManifestEntry) {
	m.entries = append(m.entries, e)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *Manifest) Entries() []ManifestEntry {
	out := make([]ManifestEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Through returns a manifest holding only entries on pages 1..page.
func (m *Manifest) Through(page int) *Manifest {
	out := &Manifest{}
	for _, e := range m.entries {
		if e.Page <= page {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// Encode writes the manifest to w as CSV or YAML.
func (m *Manifest) Encode(w io.Writer, format string) error {
	switch format {
	case ManifestCSV, "":
		return m.encodeCSV(w)
	case ManifestYAML:
		doc := struct {
			Entries []ManifestEntry `yaml:"entries"`
		}{Entries: m.Entries()}
		return yamlutil.Encode(w, doc)
	default:
		return fmt.Errorf("%w: manifest format %q", ErrInvalidFormat, format)
	}
}

func (m *Manifest) encodeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(manifestHeader); err != nil {
		return err
	}
	for _, e := range m.entries {
		if err := cw.Write([]string{e.Identifier, e.CardPath, strconv.Itoa(e.Page)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write saves the manifest atomically to path.
func (m *Manifest) Write(path, format string) error {
	err := fileutil.AtomicWrite(path, func(w io.Writer) error {
		return m.Encode(w, format)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrManifestWrite, path, err)
	}
	return nil
}
