package cardsheet

import (
	"image"

	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Skips are logged at Warn, sealed
// pages at Info and batch progress at Debug. Default: zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSymbolRenderer replaces the renderer chosen by Settings.Symbol.Symbology.
func WithSymbolRenderer(r SymbolRenderer) Option {
	return func(e *Engine) {
		e.symbols = r
	}
}

// WithFontResolver replaces the FontChain built from Settings.Label.Font.
func WithFontResolver(f FontResolver) Option {
	return func(e *Engine) {
		e.fonts = f
	}
}

// WithPageSink replaces the sinks built from Settings.Output.
// The engine calls Close on it at the end of Run.
func WithPageSink(s PageSink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithTemplate uses img as the card background instead of resolving
// Settings.Card.Template.
func WithTemplate(img image.Image) Option {
	return func(e *Engine) {
		e.template = img
	}
}

// WithAssetPath sets a directory holding a templates/ folder searched
// before the built-in templates.
func WithAssetPath(path string) Option {
	return func(e *Engine) {
		e.assetPath = path
	}
}
