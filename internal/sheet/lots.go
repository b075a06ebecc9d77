package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// Lot splitting defaults.
const (
	DefaultLotCount = 30
	DefaultLotSize  = 1000

	ReportFile     = "report.txt"
	DuplicatesFile = "checking_duplicates.txt"
)

// ErrInvalidLots is returned for a non-positive lot count or size.
var ErrInvalidLots = errors.New("invalid lot options")

// LotOptions configures SplitLots. Zero values use the defaults.
type LotOptions struct {
	Count        int
	Size         int
	SerialColumn string
	IDColumn     string
	Format       Format
	Dir          string // Output directory; created if missing
}

func (o LotOptions) withDefaults() (LotOptions, error) {
	if o.Count < 0 || o.Size < 0 {
		return o, fmt.Errorf("%w: count %d, size %d", ErrInvalidLots, o.Count, o.Size)
	}
	if o.Count == 0 {
		o.Count = DefaultLotCount
	}
	if o.Size == 0 {
		o.Size = DefaultLotSize
	}
	if o.SerialColumn == "" {
		o.SerialColumn = DefaultSerialColumn
	}
	if o.IDColumn == "" {
		o.IDColumn = DefaultIDColumn
	}
	if o.Format == "" {
		o.Format = FormatXLSX
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	return o, nil
}

// Lot describes one written lot file.
type Lot struct {
	Index  int // 1-based
	Path   string
	Rows   int
	First  string // Serial of the first row
	Last   string // Serial of the last row
	Middle string // Serial at Rows/2; set only when Rows > 2
}

// Duplicates lists the rows sharing a value in Column with another row.
type Duplicates struct {
	Column string
	Rows   [][]string
}

// SplitResult summarises a SplitLots call.
type SplitResult struct {
	Lots           []Lot
	Duplicates     []Duplicates // One entry per checked column with hits
	Unassigned     int          // Rows beyond Count*Size
	ReportPath     string
	DuplicatesPath string
}

// SplitLots writes t into consecutive lots of opts.Size rows named
// lot{n}.{xlsx|csv}, stopping after opts.Count lots or when the rows run
// out. It also writes a lot report and a duplicate report into opts.Dir.
// Returns ErrMissingColumn when the serial or identifier column is absent.
func SplitLots(ctx context.Context, t *Table, opts LotOptions) (*SplitResult, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	serial, serialErr := t.Column(opts.SerialColumn)
	_, idErr := t.Column(opts.IDColumn)
	if err := errors.Join(serialErr, idErr); err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(opts.Dir); err != nil {
		return nil, err
	}

	res := &SplitResult{
		ReportPath:     filepath.Join(opts.Dir, ReportFile),
		DuplicatesPath: filepath.Join(opts.Dir, DuplicatesFile),
	}

	for _, col := range []string{opts.SerialColumn, opts.IDColumn} {
		rows, err := FindDuplicates(t, col)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			res.Duplicates = append(res.Duplicates, Duplicates{Column: col, Rows: rows})
		}
	}

	for i := range opts.Count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := i * opts.Size
		if start >= len(t.Rows) {
			break
		}
		end := min(start+opts.Size, len(t.Rows))
		part := t.Slice(start, end)

		lot := Lot{
			Index: i + 1,
			Path:  filepath.Join(opts.Dir, fmt.Sprintf("lot%d.%s", i+1, opts.Format)),
			Rows:  len(part.Rows),
			First: part.Rows[0][serial],
			Last:  part.Rows[len(part.Rows)-1][serial],
		}
		if lot.Rows > 2 {
			lot.Middle = part.Rows[lot.Rows/2][serial]
		}
		if err := WriteTable(lot.Path, opts.Format, part); err != nil {
			return nil, fmt.Errorf("writing %s: %w", lot.Path, err)
		}
		res.Lots = append(res.Lots, lot)
	}
	res.Unassigned = max(len(t.Rows)-opts.Count*opts.Size, 0)

	err = fileutil.AtomicWrite(res.ReportPath, func(w io.Writer) error {
		return WriteLotReport(w, res.Lots)
	})
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.ReportPath, err)
	}

	err = fileutil.AtomicWrite(res.DuplicatesPath, func(w io.Writer) error {
		return WriteDuplicateReport(w, opts.SerialColumn, opts.IDColumn, t.Headers, res.Duplicates)
	})
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.DuplicatesPath, err)
	}
	return res, nil
}

// FindDuplicates returns, in table order, every row whose value in column
// occurs more than once. Missing values are never duplicates.
func FindDuplicates(t *Table, column string) ([][]string, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(t.Rows))
	for _, row := range t.Rows {
		if v := strings.TrimSpace(row[col]); !IsMissing(v) {
			counts[v]++
		}
	}

	var dups [][]string
	for _, row := range t.Rows {
		if counts[strings.TrimSpace(row[col])] > 1 {
			dups = append(dups, row)
		}
	}
	return dups, nil
}

// WriteLotReport writes the serial range of each lot.
func WriteLotReport(w io.Writer, lots []Lot) error {
	var b strings.Builder
	b.WriteString("Report for Data Splitting into Lots\n\n")
	for _, lot := range lots {
		fmt.Fprintf(&b, "Lot %d:\n", lot.Index)
		fmt.Fprintf(&b, " - Data from Serial Number %s to %s\n", lot.First, lot.Last)
		if lot.Rows > 2 {
			fmt.Fprintf(&b, " - Excluded middle Serial Number: %s\n", lot.Middle)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDuplicateReport writes each duplicate group as a right-aligned
// table of full rows.
func WriteDuplicateReport(w io.Writer, serialColumn, idColumn string, headers []string, groups []Duplicates) error {
	if _, err := fmt.Fprintf(w, "Checking for Duplicates (%s or %s)\n\n", serialColumn, idColumn); err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "Duplicates found in %s:\n", g.Column); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
		writeCells(tw, headers)
		for _, row := range g.Rows {
			writeCells(tw, row)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeCells(w io.Writer, cells []string) {
	for _, c := range cells {
		fmt.Fprint(w, c, "\t")
	}
	fmt.Fprint(w, "\n")
}
