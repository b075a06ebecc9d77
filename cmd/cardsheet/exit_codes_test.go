package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-cardsheet"
	"github.com/alnah/go-cardsheet/internal/config"
	"github.com/alnah/go-cardsheet/internal/sheet"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"partial", fmt.Errorf("%w: 2 of 9", ErrPartial), ExitPartial},
		{"usage", ErrUsage, ExitUsage},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"invalid length", fmt.Errorf("card.width: %w", cardsheet.ErrInvalidLength), ExitUsage},
		{"degenerate grid", cardsheet.ErrDegenerateGrid, ExitUsage},
		{"invalid symbology", cardsheet.ErrInvalidSymbology, ExitUsage},
		{"invalid lots", sheet.ErrInvalidLots, ExitUsage},
		{
			"missing column wins over unreadable source",
			fmt.Errorf("%w: ids.csv: %w", cardsheet.ErrSourceUnreadable, sheet.ErrMissingColumn),
			ExitUsage,
		},
		{
			"unsupported format wins over unreadable source",
			fmt.Errorf("%w: %w", cardsheet.ErrSourceUnreadable, sheet.ErrUnsupportedFormat),
			ExitUsage,
		},
		{"no input", ErrNoInput, ExitIO},
		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"unreadable source", cardsheet.ErrSourceUnreadable, ExitIO},
		{"template not found", cardsheet.ErrTemplateNotFound, ExitIO},
		{"output dir", cardsheet.ErrOutputDir, ExitIO},
		{"page write", cardsheet.ErrPageWrite, ExitIO},
		{"manifest write", cardsheet.ErrManifestWrite, ExitIO},
		{"cancelled", context.Canceled, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
