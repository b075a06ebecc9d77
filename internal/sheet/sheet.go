// Package sheet reads identifier columns from CSV and XLSX spreadsheets and
// splits master sheets into fixed-size lots.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alnah/go-cardsheet"
	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// Sentinel errors for sheet operations.
var (
	ErrMissingColumn     = errors.New("required column not found")
	ErrUnsupportedFormat = errors.New("unsupported sheet format")
	ErrNoHeader          = errors.New("sheet has no header row")
)

// ColumnError reports a header that is absent from a sheet.
// It matches ErrMissingColumn with errors.Is.
type ColumnError struct {
	Column  string
	Headers []string // Header row that was searched
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingColumn, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}

// Default column headers of a master sheet.
const (
	DefaultIDColumn     = "UNIQUENUMBER"
	DefaultSerialColumn = "SINO"
)

// Format is a spreadsheet file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat parses a format name. Empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// missingTokens are cell values read as "no value", compared upper-cased.
var missingTokens = map[string]bool{
	"#N/A": true,
	"N/A":  true,
	"NA":   true,
	"<NA>": true,
	"NAN":  true,
	"NULL": true,
	"NONE": true,
}

// IsMissing reports whether a cell holds no usable value.
func IsMissing(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || missingTokens[strings.ToUpper(v)]
}

// ---------------------------------------------------------------------------
// Row readers
// ---------------------------------------------------------------------------

// rowReader yields raw records, header first, then io.EOF.
type rowReader interface {
	next() ([]string, error)
	close() error
}

// openRows opens path for streaming. Fully blank records are dropped.
func openRows(path, sheet string) (rowReader, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cardsheet.ErrSourceUnreadable, err)
	}
	var r rowReader
	switch format {
	case FormatCSV:
		r, err = openCSV(path)
	default:
		r, err = openXLSX(path, sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", cardsheet.ErrSourceUnreadable, path, err)
	}
	return skipBlank{r}, nil
}

type skipBlank struct {
	rowReader
}

func (s skipBlank) next() ([]string, error) {
	for {
		rec, err := s.rowReader.next()
		if err != nil {
			return nil, err
		}
		for _, v := range rec {
			if strings.TrimSpace(v) != "" {
				return rec, nil
			}
		}
	}
}

type csvRows struct {
	f *os.File
	r *csv.Reader
}

func openCSV(path string) (*csvRows, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, err
	}
	// Spreadsheet exports often start with a UTF-8 BOM
	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = -1
	return &csvRows{f: f, r: r}, nil
}

func (c *csvRows) next() ([]string, error) {
	return c.r.Read()
}

func (c *csvRows) close() error {
	return c.f.Close()
}

type xlsxRows struct {
	f    *excelize.File
	rows *excelize.Rows
}

// openXLSX streams sheet, or the first sheet when sheet is empty.
func openXLSX(path, sheet string) (*xlsxRows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return &xlsxRows{f: f, rows: rows}, nil
}

func (x *xlsxRows) next() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	// Raw values: no number formats applied, like a dataframe read
	return x.rows.Columns(excelize.Options{RawCellValue: true})
}

func (x *xlsxRows) close() error {
	return errors.Join(x.rows.Close(), x.f.Close())
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

// Table is a fully loaded sheet. Every row has len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable loads path into memory. sheet selects an XLSX worksheet
// (empty = first). limit caps data rows; 0 reads all.
func ReadTable(path, sheet string, limit int) (*Table, error) {
	rows, err := openRows(path, sheet)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.close() }()

	headers, err := rows.next()
	if err != nil {
		return nil, headerError(path, err)
	}

	t := &Table{Headers: trimAll(headers)}
	for limit <= 0 || len(t.Rows) < limit {
		rec, err := rows.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", cardsheet.ErrSourceUnreadable, path, len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, pad(rec, len(t.Headers)))
	}
	return t, nil
}

// Column returns the index of header name, matched case-insensitively.
func (t *Table) Column(name string) (int, error) {
	return headerIndex(t.Headers, name)
}

// Slice returns a table sharing t's headers with rows [start, end).
func (t *Table) Slice(start, end int) *Table {
	return &Table{Headers: t.Headers, Rows: t.Rows[start:end]}
}

// WriteTable saves t atomically as CSV or XLSX.
func WriteTable(path string, format Format, t *Table) error {
	switch format {
	case FormatCSV:
		return fileutil.AtomicWrite(path, func(w io.Writer) error {
			cw := csv.NewWriter(w)
			if err := cw.Write(t.Headers); err != nil {
				return err
			}
			if err := cw.WriteAll(t.Rows); err != nil {
				return err
			}
			return cw.Error()
		})
	case FormatXLSX:
		return writeXLSX(path, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeXLSX(path string, t *Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	records := append([][]string{t.Headers}, t.Rows...)
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(rec))
		for j, v := range rec {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return fileutil.AtomicWrite(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

// cellValue keeps canonical integers numeric so serial columns stay
// sortable. Anything else, including zero-padded codes, stays text.
func cellValue(v string) any {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != v {
		return v
	}
	return n
}

func headerIndex(headers []string, name string) (int, error) {
	want := strings.TrimSpace(name)
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i, nil
		}
	}
	return -1, &ColumnError{Column: name, Headers: headers}
}

func headerError(path string, err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w: %s", cardsheet.ErrSourceUnreadable, ErrNoHeader, path)
	}
	return fmt.Errorf("%w: %s: %v", cardsheet.ErrSourceUnreadable, path, err)
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, v := range rec {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// pad extends or truncates rec to n cells. XLSX rows omit trailing
// empty cells.
func pad(rec []string, n int) []string {
	out := make([]string, n)
	copy(out, rec)
	return out
}

// cell returns rec[i], or "" when the record is short.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
