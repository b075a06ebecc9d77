package cardsheet_test

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-cardsheet"
)

// Example renders 30 identifiers onto 12x18in sheets of 92x54mm cards.
func Example() {
	dir, err := os.MkdirTemp("", "cardsheet-example-")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	s := cardsheet.DefaultSettings()
	s.Output.Dir = dir

	engine, err := cardsheet.NewEngine(s)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("SN%04d", i+1)
	}

	report, err := engine.Run(context.Background(), cardsheet.NewSliceSource(ids...))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("placed %d cards on %d pages\n", report.Placed, len(report.Pages))
	// Output: placed 30 cards on 2 pages
}

// ExamplePixels converts physical sizes at print resolution.
func ExamplePixels() {
	w, _ := cardsheet.MM(92).Pixels(300)
	h, _ := cardsheet.MM(54).Pixels(300)
	page, _ := cardsheet.Inches(12).Pixels(300)
	fmt.Println(w, h, page)
	// Output: 1087 638 3600
}

// ExampleComputeGrid shows how many cards fit on a sheet.
func ExampleComputeGrid() {
	grid, err := cardsheet.ComputeGrid(
		cardsheet.PageGeometry{Width: 3600, Height: 5400, Margin: 20},
		cardsheet.CardGeometry{Width: 1087, Height: 638},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%d columns x %d rows = %d per page\n", grid.Columns, grid.Rows, grid.Capacity())
	// Output: 3 columns x 8 rows = 24 per page
}

// ExampleParseLength accepts mm, in and px suffixes; bare numbers are mm.
func ExampleParseLength() {
	for _, s := range []string{"92mm", "12in", "640px", "54"} {
		l, err := cardsheet.ParseLength(s)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		px, _ := l.Pixels(300)
		fmt.Println(l, px)
	}
	// Output:
	// 92mm 1087
	// 12in 3600
	// 640px 640
	// 54mm 638
}

// ExampleManifest_Encode writes the identifier to card and page mapping.
func ExampleManifest_Encode() {
	m := cardsheet.NewManifest()
	m.Add(cardsheet.ManifestEntry{Identifier: "SN0001", CardPath: "cards/SN0001_back.png", Page: 1})
	m.Add(cardsheet.ManifestEntry{Identifier: "SN0025", CardPath: "cards/SN0025_back.png", Page: 2})

	if err := m.Encode(os.Stdout, cardsheet.ManifestCSV); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// identifier,card_path,page
	// SN0001,cards/SN0001_back.png,1
	// SN0025,cards/SN0025_back.png,2
}
