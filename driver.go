package cardsheet

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-cardsheet/internal/assets"
	"github.com/alnah/go-cardsheet/internal/fileutil"
)

// Engine turns an identifier source into cards, pages and a manifest.
// Create with NewEngine and call Run once per source.
type Engine struct {
	settings Settings
	layout   Layout
	renderer *CardRenderer

	logger    *zap.Logger
	symbols   SymbolRenderer
	fonts     FontResolver
	sink      PageSink
	template  image.Image
	assetPath string
}

// NewEngine validates settings, derives the layout and loads the
// background template. Nil settings use DefaultSettings.
// Returns ErrTemplateNotFound when the template cannot be loaded and
// ErrDegenerateGrid when no card fits on the page.
func NewEngine(s *Settings, opts ...Option) (*Engine, error) {
	if s == nil {
		s = DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	layout, err := NewLayout(s)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		settings: *s,
		layout:   layout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.template == nil {
		if e.template, err = e.loadTemplate(); err != nil {
			return nil, err
		}
	}

	e.renderer, err = NewCardRenderer(e.template, &e.settings, e.symbols, e.fonts)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Layout returns the derived geometry.
func (e *Engine) Layout() Layout {
	return e.layout
}

// Settings returns a copy of the engine settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

func (e *Engine) loadTemplate() (image.Image, error) {
	resolver, err := assets.NewAssetResolver(e.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	img, err := resolver.Resolve(e.settings.Card.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	return img, nil
}

// Run reads src to the end. Each present identifier is rendered to a card
// and placed on the next free slot; full pages are sealed as they fill,
// the last partial page at the end. The manifest is written once.
//
// Skipped identifiers are recorded in the report and logged; they never
// stop the run. On a fatal error the pages already sealed stay on disk, the
// manifest lists only their cards, and the error is returned along with
// the partial report.
func (e *Engine) Run(ctx context.Context, src IdentifierSource) (*Report, error) {
	out := e.settings.Output
	report := newReport()
	report.ManifestPath = out.manifestPath()

	if err := e.prepareDirs(); err != nil {
		return report, err
	}

	sink, err := e.pageSink()
	if err != nil {
		return report, err
	}

	e.logger.Info("run started",
		zap.Int("card_width", e.layout.Card.Width),
		zap.Int("card_height", e.layout.Card.Height),
		zap.Int("columns", e.layout.Grid.Columns),
		zap.Int("rows", e.layout.Grid.Rows),
		zap.Int("batch_size", e.settings.BatchSize),
		zap.Int("workers", max(e.settings.Workers, 1)),
	)

	manifest := NewManifest()
	tiler := NewTiler(e.layout, sink, e.logger)

	runErr := e.process(ctx, src, tiler, manifest, report)
	if runErr == nil {
		runErr = tiler.Close()
	}
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("%w: %v", ErrPageWrite, err)
	}
	report.Pages = tiler.Pages()

	if runErr != nil {
		// Cards on the unsealed page were never persisted.
		manifest = manifest.Through(tiler.Sealed())
	}
	if err := manifest.Write(report.ManifestPath, out.manifestFormat()); err != nil {
		runErr = errors.Join(runErr, err)
	}

	fields := []zap.Field{
		zap.Int("placed", report.Placed),
		zap.Int("skipped", report.SkippedTotal()),
		zap.Int("pages", len(report.Pages)),
		zap.String("manifest", report.ManifestPath),
	}
	if runErr != nil {
		e.logger.Error("run aborted", append(fields, zap.Error(runErr))...)
	} else {
		e.logger.Info("run finished", fields...)
	}
	return report, runErr
}

// process feeds every batch of src through render and placement.
// Batch boundaries never influence page sealing.
func (e *Engine) process(ctx context.Context, src IdentifierSource, tiler *Tiler, manifest *Manifest, report *Report) error {
	for batch := 1; ; batch++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, readErr := src.ReadBatch(e.settings.BatchSize)
		if len(rows) > 0 {
			e.logger.Debug("batch read", zap.Int("batch", batch), zap.Int("rows", len(rows)))
			if err := e.processBatch(ctx, rows, tiler, manifest, report); err != nil {
				return err
			}
		}

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF):
			return nil
		case errors.Is(readErr, ErrSourceUnreadable):
			return readErr
		default:
			return fmt.Errorf("%w: %v", ErrSourceUnreadable, readErr)
		}
	}
}

// processBatch renders each present row and places it before rendering
// beyond the worker window. Rows are reported in input order.
func (e *Engine) processBatch(ctx context.Context, rows []Row, tiler *Tiler, manifest *Manifest, report *Report) error {
	present := make([]Row, 0, len(rows))
	at := make([]int, 0, len(rows)) // Index in rows of each present row
	for i, row := range rows {
		if isPresent(row) {
			present = append(present, row)
			at = append(at, i)
		}
	}

	next := 0
	skipMissing := func(upto int) {
		for ; next < upto; next++ {
			row := rows[next]
			item := ItemResult{Row: row.Index, Identifier: row.ID}
			e.skip(report, item, SkipMissingIdentifier, ErrEmptyIdentifier)
		}
	}

	err := renderInOrder(ctx, e.renderer, present, e.settings.Workers, func(i int, res renderResult) error {
		skipMissing(at[i])
		next = at[i] + 1
		return e.place(present[i], res, tiler, manifest, report)
	})
	if err != nil {
		return err
	}
	skipMissing(len(rows))
	return nil
}

// place puts one rendered card on the live page. Per-card failures are
// recorded as skips; anything else stops the run.
func (e *Engine) place(row Row, res renderResult, tiler *Tiler, manifest *Manifest, report *Report) error {
	item := ItemResult{Row: row.Index, Identifier: row.ID}
	if res.err != nil {
		reason, ok := skipReasonFor(res.err)
		if !ok {
			return res.err
		}
		e.skip(report, item, reason, res.err)
		return nil
	}
	item.CardPath = res.card.Path

	placement, err := tiler.Place(res.card.Image)
	if err != nil {
		if errors.Is(err, ErrCardResize) {
			e.skip(report, item, SkipCardResize, err)
			return nil
		}
		return err
	}

	item.Outcome = OutcomePlaced
	item.Placement = placement
	report.add(item)
	manifest.Add(ManifestEntry{
		Identifier: row.ID,
		CardPath:   res.card.Path,
		Page:       placement.Page,
	})
	return nil
}

func (e *Engine) skip(report *Report, item ItemResult, reason SkipReason, err error) {
	item.Outcome = OutcomeSkipped
	item.Reason = reason
	item.Err = err
	report.add(item)

	e.logger.Warn("identifier skipped",
		zap.Int("row", item.Row),
		zap.String("identifier", item.Identifier),
		zap.String("reason", string(reason)),
		zap.Error(err),
	)
}

// pageSink returns the injected sink, or builds one from the output settings.
func (e *Engine) pageSink() (PageSink, error) {
	if e.sink != nil {
		return e.sink, nil
	}
	out := e.settings.Output
	images, err := NewImageSink(out.Dir, out.PagePrefix, out.PageFormat)
	if err != nil {
		return nil, err
	}
	if out.PDF == "" {
		return images, nil
	}
	return MultiSink{images, NewPDFSink(out.PDF, e.layout)}, nil
}

// prepareDirs creates every directory an artifact is written to.
func (e *Engine) prepareDirs() error {
	out := e.settings.Output
	dirs := []string{out.cardsDir(), filepath.Dir(out.manifestPath())}
	if e.sink == nil {
		dirs = append(dirs, out.Dir)
		if out.PDF != "" {
			dirs = append(dirs, filepath.Dir(out.PDF))
		}
	}
	for _, dir := range dirs {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputDir, err)
		}
	}
	return nil
}

func isPresent(row Row) bool {
	return row.Present && strings.TrimSpace(row.ID) != ""
}
