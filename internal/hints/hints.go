// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"
)

// ForTemplateNotFound returns hints for a missing background template.
func ForTemplateNotFound(available []string) string {
	hint := "pass --template /path/to/back.png or set card.template in the config"
	if len(available) > 0 {
		hint += "; built-in: " + strings.Join(available, ", ")
	}
	return format(hint)
}

// ForDegenerateGrid returns a hint when no card fits on the page.
// Sizes are in pixels at the configured resolution.
func ForDegenerateGrid(pageW, pageH, cardW, cardH, margin int) string {
	return format(fmt.Sprintf(
		"page %dx%dpx cannot hold one %dx%dpx card plus %dpx margins; enlarge the page or shrink the card",
		pageW, pageH, cardW, cardH, margin,
	))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-cardsheet/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-cardsheet") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingColumn returns hints when the identifier column is absent.
func ForMissingColumn(column string, headers []string) string {
	if len(headers) == 0 {
		return format("the first row must be a header row naming the " + column + " column")
	}
	return format("use --column to pick one of: " + strings.Join(headers, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForSkips returns a hint when some identifiers were skipped.
func ForSkips(skipped int) string {
	if skipped == 0 {
		return ""
	}
	return format(fmt.Sprintf("%d identifier(s) skipped; re-run with a filtered list to produce them", skipped))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
