package cardsheet

import (
	"io"
	"strings"
)

// Row is one record of an identifier source.
type Row struct {
	Index   int    // 1-based position among data rows
	ID      string // Identifier text
	Present bool   // False when the cell was missing or blank
}

// IdentifierSource yields rows in input order.
// ReadBatch returns up to n rows, and io.EOF once no rows remain.
type IdentifierSource interface {
	ReadBatch(n int) ([]Row, error)
}

// SliceSource serves rows from memory.
type SliceSource struct {
	rows []Row
	pos  int
}

// NewSliceSource creates a source from identifier strings. Identifiers are
// trimmed; blank strings become missing rows.
func NewSliceSource(ids ...string) *SliceSource {
	rows := make([]Row, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		rows[i] = Row{Index: i + 1, ID: id, Present: id != ""}
	}
	return &SliceSource{rows: rows}
}

// NewRowSource creates a source from prepared rows.
func NewRowSource(rows []Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// ReadBatch implements IdentifierSource.
func (s *SliceSource) ReadBatch(n int) ([]Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	if n < 1 {
		n = 1
	}
	end := min(s.pos+n, len(s.rows))
	batch := s.rows[s.pos:end]
	s.pos = end
	return batch, nil
}

// Compile-time interface check.
var _ IdentifierSource = (*SliceSource)(nil)
