// Package cardsheet renders one print card per identifier and tiles the
// cards onto fixed-size print sheets.
//
// # Quick Start
//
// Create an engine, run it over a source of identifiers, and read the report:
//
//	engine, err := cardsheet.NewEngine(cardsheet.DefaultSettings())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := engine.Run(ctx, cardsheet.NewSliceSource("1001", "1002", "1003"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Placed, "cards on", len(report.Pages), "pages")
//
// # Pipeline
//
// A run follows these stages:
//
//  1. Geometry is derived once from physical sizes (mm or inches) and DPI
//  2. Identifiers are read from the source in batches
//  3. Each identifier becomes a card: background template, a resized code
//     symbol (Code 128 or QR) and a text label, saved as an image file
//  4. Cards are pasted row-major onto the live page; a full page is sealed
//     and written, the final partial page when input runs out
//  5. The manifest (identifier, card path, page) is written once
//
// Batch size only bounds memory. Pages are sealed when the grid is full,
// never at batch boundaries.
//
// # Skips and Fatal Errors
//
// Rows with a missing identifier, identifiers the symbology cannot encode,
// and cards that cannot be saved or resized are skipped: they are logged,
// counted in the Report and left out of the manifest. A missing template,
// a degenerate grid, an unreadable source or a page that cannot be written
// abort the run. Pages sealed before the abort remain valid and the
// manifest lists exactly their cards.
//
// # Configuration
//
// Use functional options to inject collaborators:
//
//	engine, err := cardsheet.NewEngine(settings,
//	    cardsheet.WithLogger(logger),
//	    cardsheet.WithFontResolver(cardsheet.BasicFont{}),
//	    cardsheet.WithAssetPath("/path/to/assets"),
//	)
//
// Asset directory structure:
//
//	assets/
//	└── templates/
//	    └── back.png
//
// # Parallel Rendering
//
// Settings.Workers > 1 renders cards of a batch concurrently. Results are
// put back in input order before tiling, so placements do not depend on
// the worker count. Use ResolveWorkers to size it from GOMAXPROCS.
package cardsheet
