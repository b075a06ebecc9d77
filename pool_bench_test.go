//go:build bench

package cardsheet

import (
	"context"
	"fmt"
	"testing"

	"github.com/disintegration/imaging"
)

// BenchmarkResolveWorkers benchmarks worker count calculation.
func BenchmarkResolveWorkers(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = ResolveWorkers(w)
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkRenderInOrder benchmarks one batch of card renders by worker
// count. Uses the stub symbol renderer to measure composition and file output.
func BenchmarkRenderInOrder(b *testing.B) {
	for _, w := range []int{1, 2, 4} {
		b.Run(workerName(w), func(b *testing.B) {
			r := newPoolRenderer(b, stubSymbols{})
			rows := make([]Row, 24)
			for i := range rows {
				rows[i] = Row{Index: i + 1, ID: fmt.Sprint(1000 + i), Present: true}
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				err := renderInOrder(context.Background(), r, rows, w, func(int, renderResult) error { return nil })
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCode128 benchmarks rasterising a Code 128 symbol at 300 DPI.
func BenchmarkCode128(b *testing.B) {
	opts := DefaultSymbolOptions()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := (Code128Renderer{}).Render("UN-000123456", opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTiler_Place benchmarks pasting cards onto pages without encoding.
func BenchmarkTiler_Place(b *testing.B) {
	layout, err := NewLayout(testSettings(b))
	if err != nil {
		b.Fatal(err)
	}
	card := imaging.New(testCardW*4, testCardH*4, testTemplate().At(0, 0))

	b.ReportAllocs()
	b.ResetTimer()

	tiler := NewTiler(layout, &memorySink{}, nil)
	for i := 0; i < b.N; i++ {
		if _, err := tiler.Place(card); err != nil {
			b.Fatal(err)
		}
	}
	if err := tiler.Close(); err != nil {
		b.Fatal(err)
	}
}
