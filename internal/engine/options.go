package engine

import (
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/logging"
	"github.com/dshills/marksmith/internal/markdown"
)

// Option configures an Engine.
type Option func(*Engine)

// WithContent sets the initial document. CRLF line endings become LF.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initialContent = content
	}
}

// WithSelection sets the initial selection. It is clamped to the document.
func WithSelection(set selection.Set) Option {
	return func(e *Engine) {
		e.initialSelection = &set
	}
}

// WithReadOnly makes the engine reject text changes.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithMaxUndoEntries sets the maximum number of undo entries.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		e.maxUndoEntries = n
	}
}

// WithLogger sets the logger used for dispatch and history events.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithParser sets the parser used by Segments.
func WithParser(p *markdown.Parser) Option {
	return func(e *Engine) {
		e.parser = p
	}
}
