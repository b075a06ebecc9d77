package sheet

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeCSV writes content to dir/name and returns the path.
func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// writeXLSXFixture writes rows to the first sheet of a new workbook.
func writeXLSXFixture(t *testing.T, path string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow(%d): %v", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}

// masterTable builds a table with n rows: SINO 1..n, UNIQUENUMBER U1..Un.
func masterTable(n int) *Table {
	t := &Table{Headers: []string{"SINO", "UNIQUENUMBER", "BATCH"}}
	for i := 1; i <= n; i++ {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i), "U" + strconv.Itoa(i), "B1"})
	}
	return t
}
