package engine

import (
	"log/slog"

	"github.com/dshills/linecore/internal/completion"
	"github.com/dshills/linecore/internal/engine/buffer"
	"github.com/dshills/linecore/internal/event"
	"github.com/dshills/linecore/internal/indent"
	"github.com/dshills/linecore/internal/syntax"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial content of the editor.
func WithContent(content string) Option {
	return func(e *Editor) {
		e.initContent = content
	}
}

// WithIndentWidth sets the indent width. New fails with a ConfigError if
// width is not positive.
func WithIndentWidth(width int) Option {
	return func(e *Editor) {
		e.indent.Width = width
	}
}

// WithUseTabs selects tabs or spaces as the indent unit.
func WithUseTabs(useTabs bool) Option {
	return func(e *Editor) {
		e.indent.UseTabs = useTabs
	}
}

// WithEOL sets the external line ending used by TextForSaving.
func WithEOL(le buffer.LineEnding) Option {
	return func(e *Editor) {
		e.eol = le
	}
}

// WithMaxUndoEntries sets the maximum number of undo steps.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithRegistry sets the indent policy registry. By default each editor
// gets its own indent.NewDefaultRegistry.
func WithRegistry(r *indent.Registry) Option {
	return func(e *Editor) {
		e.registry = r
	}
}

// WithPolicy sets the indent policy, overriding the registry's choice.
func WithPolicy(p indent.Policy) Option {
	return func(e *Editor) {
		e.policy = p
	}
}

// WithLanguage selects a language by name once the editor is built. The
// language chooses the syntax classifier and the indent policy.
func WithLanguage(name string) Option {
	return func(e *Editor) {
		e.initLanguage = name
	}
}

// WithClassifier sets the syntax classifier.
func WithClassifier(c syntax.Classifier) Option {
	return func(e *Editor) {
		e.classifier = c
	}
}

// WithCompleter sets the completion engine.
func WithCompleter(c *completion.Engine) Option {
	return func(e *Editor) {
		e.completer = c
	}
}

// WithCompletionThreshold sets the minimum word length for automatic
// suggestions of the default completion engine.
func WithCompletionThreshold(n int) Option {
	return func(e *Editor) {
		e.completionOpts = append(e.completionOpts, completion.WithThreshold(n))
	}
}

// WithBus sets the event bus notifications are published on.
func WithBus(b *event.Bus) Option {
	return func(e *Editor) {
		e.bus = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}
