package cardsheet

import (
	"errors"
	"sort"
)

// Outcome is the final state of one input row.
type Outcome int

// Row outcomes. Fatal conditions are returned as errors from Engine.Run.
const (
	OutcomePlaced Outcome = iota + 1
	OutcomeSkipped
)

// String returns a lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SkipReason says why an identifier was left out of the run.
type SkipReason string

// Skip reasons.
const (
	SkipMissingIdentifier SkipReason = "missing-identifier"
	SkipSymbolRender      SkipReason = "symbol-render"
	SkipCardSave          SkipReason = "card-save"
	SkipCardResize        SkipReason = "card-resize"
)

// skipReasonFor maps a per-identifier error to its reason.
// Returns false for errors that must abort the run.
func skipReasonFor(err error) (SkipReason, bool) {
	switch {
	case errors.Is(err, ErrEmptyIdentifier):
		return SkipMissingIdentifier, true
	case errors.Is(err, ErrSymbolRender):
		return SkipSymbolRender, true
	case errors.Is(err, ErrCardSave):
		return SkipCardSave, true
	case errors.Is(err, ErrCardResize):
		return SkipCardResize, true
	default:
		return "", false
	}
}

// ItemResult records what happened to one input row.
type ItemResult struct {
	Row        int
	Identifier string
	Outcome    Outcome
	Reason     SkipReason // Set when Outcome is OutcomeSkipped
	Err        error      // Underlying error for skips
	CardPath   string
	Placement  Placement
}

// Report aggregates the results of a run.
type Report struct {
	Rows         int
	Placed       int
	Skipped      map[SkipReason]int
	Pages        []string
	ManifestPath string
	Items        []ItemResult
}

func newReport() *Report {
	return &Report{Skipped: make(map[SkipReason]int)}
}

func (r *Report) add(item ItemResult) {
	r.Rows++
	switch item.Outcome {
	case OutcomePlaced:
		r.Placed++
	case OutcomeSkipped:
		r.Skipped[item.Reason]++
	}
	r.Items = append(r.Items, item)
}

// SkippedTotal returns the number of skipped rows across all reasons.
func (r *Report) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Skips returns the skipped rows in input order.
func (r *Report) Skips() []ItemResult {
	var skips []ItemResult
	for _, item := range r.Items {
		if item.Outcome == OutcomeSkipped {
			skips = append(skips, item)
		}
	}
	return skips
}

// SkipReasons returns the reasons with at least one skip, sorted.
func (r *Report) SkipReasons() []SkipReason {
	reasons := make([]SkipReason, 0, len(r.Skipped))
	for reason, n := range r.Skipped {
		if n > 0 {
			reasons = append(reasons, reason)
		}
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
