package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cardsheet <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render identifier cards and tile them onto print pages")
	fmt.Fprintln(w, "  lots       Split a master sheet into fixed-size lots")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cardsheet help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cardsheet render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one card per identifier and tile the cards onto print pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    CSV or XLSX sheet (optional if config has input.path)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --column <s>          Identifier column header (default: UNIQUENUMBER)")
	fmt.Fprintln(w, "      --sheet <s>           XLSX worksheet (default: first)")
	fmt.Fprintln(w, "      --limit <n>           Read at most n rows (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Directory for pages and manifest (default: out)")
	fmt.Fprintln(w, "      --cards-dir <dir>     Directory for card images (default: <output>/cards)")
	fmt.Fprintln(w, "      --card-format <s>     Card image format: png, jpg")
	fmt.Fprintln(w, "      --page-format <s>     Page image format: png, jpg")
	fmt.Fprintln(w, "      --page-prefix <s>     Page file prefix (default: page)")
	fmt.Fprintln(w, "      --manifest <path>     Manifest name or path (default: manifest.csv or .yaml)")
	fmt.Fprintln(w, "      --manifest-format <s> Manifest format: csv, yaml")
	fmt.Fprintln(w, "      --pdf <path>          Also write all pages to one PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --card-width <len>    Card width: 92mm, 3.6in, 1087px")
	fmt.Fprintln(w, "      --card-height <len>   Card height (default: 54mm)")
	fmt.Fprintln(w, "      --page-width <len>    Page width (default: 12in)")
	fmt.Fprintln(w, "      --page-height <len>   Page height (default: 18in)")
	fmt.Fprintln(w, "      --margin <n>          Pixels around and between cards (default: 20)")
	fmt.Fprintln(w, "      --dpi <f>             Print resolution (default: 300)")
	fmt.Fprintln(w, "      --side <s>            Card file suffix (default: back)")
	fmt.Fprintln(w, "  -t, --template <s>        Background template name or image path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with a templates/ folder")
	fmt.Fprintln(w, "      --offset-x <n>        Horizontal shift of symbol and label")
	fmt.Fprintln(w, "      --symbol-offset-y <n> Vertical shift of the symbol")
	fmt.Fprintln(w, "      --label-gap <n>       Pixels between symbol and label")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Symbol:")
	fmt.Fprintln(w, "      --symbology <s>       Code symbol: code128, qr")
	fmt.Fprintln(w, "      --symbol-width <n>    Symbol width in pixels (default: 260)")
	fmt.Fprintln(w, "      --symbol-height <n>   Symbol height in pixels (default: 120)")
	fmt.Fprintln(w, "      --font <s>            Label font name or file (default: arial)")
	fmt.Fprintln(w, "      --font-size <f>       Label size in pixels (default: 30)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run:")
	fmt.Fprintln(w, "  -b, --batch-size <n>      Rows read at a time (default: 200)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel card renders (0 = auto)")
	fmt.Fprintln(w, "      --strict              Exit 4 when any identifier was skipped")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printLotsUsage prints usage for the lots command.
func printLotsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cardsheet lots <master> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split a master sheet into consecutive lots, then write a lot report")
	fmt.Fprintln(w, "and a duplicate check.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  master   CSV or XLSX sheet with serial and identifier columns")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lots:")
	fmt.Fprintln(w, "  -o, --output <dir>        Directory for lots and reports (default: .)")
	fmt.Fprintln(w, "      --count <n>           Number of lots (default: 30)")
	fmt.Fprintln(w, "      --size <n>            Rows per lot (default: 1000)")
	fmt.Fprintln(w, "      --serial-column <s>   Serial header (default: SINO)")
	fmt.Fprintln(w, "      --id-column <s>       Identifier header (default: UNIQUENUMBER)")
	fmt.Fprintln(w, "      --format <s>          Lot file format: xlsx, csv")
	fmt.Fprintln(w, "      --sheet <s>           XLSX worksheet (default: first)")
	fmt.Fprintln(w, "      --limit <n>           Read at most n rows (0 = all)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCommonUsage prints the flags shared by all commands.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
	fmt.Fprintln(w, "      --log-format <s>      Log encoding: console, json")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "lots":
		printLotsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cardsheet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cardsheet help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	}
	return ExitSuccess
}
