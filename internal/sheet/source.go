package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-cardsheet"
)

// Source streams one identifier column of a spreadsheet. It implements
// cardsheet.IdentifierSource. Not safe for concurrent use.
type Source struct {
	rows    rowReader
	path    string
	headers []string
	column  int
	limit   int
	read    int
	done    bool
}

type sourceOptions struct {
	column string
	sheet  string
	limit  int
}

// Option configures Open.
type Option func(*sourceOptions)

// WithColumn selects the identifier header. Default: DefaultIDColumn.
func WithColumn(name string) Option {
	return func(o *sourceOptions) {
		if name != "" {
			o.column = name
		}
	}
}

// WithSheet selects an XLSX worksheet. Default: the first one.
func WithSheet(name string) Option {
	return func(o *sourceOptions) {
		o.sheet = name
	}
}

// WithLimit stops after n data rows. 0 reads everything.
func WithLimit(n int) Option {
	return func(o *sourceOptions) {
		o.limit = max(n, 0)
	}
}

// Open reads the header row of path and locates the identifier column.
// Errors wrap cardsheet.ErrSourceUnreadable; a missing header also wraps
// ErrMissingColumn.
func Open(path string, opts ...Option) (*Source, error) {
	o := sourceOptions{column: DefaultIDColumn}
	for _, opt := range opts {
		opt(&o)
	}

	rows, err := openRows(path, o.sheet)
	if err != nil {
		return nil, err
	}

	header, err := rows.next()
	if err != nil {
		_ = rows.close()
		return nil, headerError(path, err)
	}
	header = trimAll(header)

	col, err := headerIndex(header, o.column)
	if err != nil {
		_ = rows.close()
		return nil, fmt.Errorf("%w: %s: %w", cardsheet.ErrSourceUnreadable, path, err)
	}

	return &Source{
		rows:    rows,
		path:    path,
		headers: header,
		column:  col,
		limit:   o.limit,
	}, nil
}

// Headers returns the header row.
func (s *Source) Headers() []string {
	out := make([]string, len(s.headers))
	copy(out, s.headers)
	return out
}

// Column returns the header of the identifier column.
func (s *Source) Column() string {
	return s.headers[s.column]
}

// Read returns the number of data rows consumed so far.
func (s *Source) Read() int {
	return s.read
}

// ReadBatch implements cardsheet.IdentifierSource. Cells that are blank or
// hold a missing-value token such as "NaN" or "#N/A" yield rows with
// Present false.
func (s *Source) ReadBatch(n int) ([]cardsheet.Row, error) {
	if s.done {
		return nil, io.EOF
	}
	n = max(n, 1)

	batch := make([]cardsheet.Row, 0, n)
	for len(batch) < n {
		if s.limit > 0 && s.read >= s.limit {
			s.done = true
			break
		}
		rec, err := s.rows.next()
		if errors.Is(err, io.EOF) {
			s.done = true
			break
		}
		if err != nil {
			s.done = true
			return batch, fmt.Errorf("%w: %s: row %d: %v", cardsheet.ErrSourceUnreadable, s.path, s.read+1, err)
		}

		s.read++
		id := strings.TrimSpace(cell(rec, s.column))
		batch = append(batch, cardsheet.Row{
			Index:   s.read,
			ID:      id,
			Present: !IsMissing(id),
		})
	}

	if len(batch) == 0 {
		return nil, io.EOF
	}
	return batch, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.rows.close()
}

// Compile-time interface check.
var _ cardsheet.IdentifierSource = (*Source)(nil)
