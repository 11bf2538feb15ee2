// Package completion suggests words from the document for the word being
// typed at the cursor.
//
// The word set is rebuilt from the document text on every request. The
// word pattern is a regexp2 expression so that it can use the same syntax
// as the word patterns of existing editor configurations.
package completion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Defaults for an Engine.
const (
	DefaultWordPattern = `\w\w+`
	DefaultThreshold   = 3
)

// Source is the document read by the engine.
type Source interface {
	Text() string
	Get(index int) (string, error)
}

// Engine computes completion candidates.
type Engine struct {
	pattern   *regexp2.Regexp
	before    *regexp2.Regexp
	enabled   bool
	threshold int
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWordPattern replaces the expression that defines a word.
func WithWordPattern(expr string) Option {
	return func(e *Engine) error {
		return e.SetWordPattern(expr)
	}
}

// WithThreshold sets the minimum typed word length for automatic
// suggestions.
func WithThreshold(n int) Option {
	return func(e *Engine) error {
		e.threshold = n
		return nil
	}
}

// WithEnabled turns automatic suggestions on or off.
func WithEnabled(enabled bool) Option {
	return func(e *Engine) error {
		e.enabled = enabled
		return nil
	}
}

// New creates an engine using the default word pattern.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{enabled: true, threshold: DefaultThreshold}
	if err := e.SetWordPattern(DefaultWordPattern); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SetWordPattern compiles expr as the word pattern.
func (e *Engine) SetWordPattern(expr string) error {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return fmt.Errorf("completion: word pattern %q: %w", expr, err)
	}
	// Anchored at the end of the text before the cursor, the same
	// expression finds the word being typed.
	before, err := regexp2.Compile("(?:"+expr+`)\z`, regexp2.None)
	if err != nil {
		return fmt.Errorf("completion: word pattern %q: %w", expr, err)
	}
	e.pattern = re
	e.before = before
	return nil
}

// WordPattern returns the current word expression.
func (e *Engine) WordPattern() string {
	return e.pattern.String()
}

// Enabled reports whether automatic suggestions are on.
func (e *Engine) Enabled() bool { return e.enabled }

// SetEnabled turns automatic suggestions on or off.
func (e *Engine) SetEnabled(enabled bool) { e.enabled = enabled }

// Threshold returns the minimum word length for automatic suggestions.
func (e *Engine) Threshold() int { return e.threshold }

// SetThreshold sets the minimum word length for automatic suggestions.
func (e *Engine) SetThreshold(n int) { e.threshold = n }

// WordSet returns every distinct word in text.
func (e *Engine) WordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	m, err := e.pattern.FindStringMatch(text)
	for err == nil && m != nil {
		words[m.String()] = struct{}{}
		m, err = e.pattern.FindNextMatch(m)
	}
	return words
}

// WordBeforeCursor returns the word that ends at column col of line, or
// "" if the character before the cursor is not part of a word.
func (e *Engine) WordBeforeCursor(line string, col int) string {
	runes := []rune(line)
	if col <= 0 || col > len(runes) {
		return ""
	}
	m, err := e.before.FindStringMatch(string(runes[:col]))
	if err != nil || m == nil {
		return ""
	}
	return m.String()
}

// Candidates returns the sorted words of text that start with prefix and
// differ from it. An empty prefix selects every word.
func (e *Engine) Candidates(text, prefix string) []string {
	var out []string
	for w := range e.WordSet(text) {
		if w != prefix && strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// Suggest returns the word at the cursor and its candidates for automatic
// completion. Nothing is suggested when the engine is disabled or the
// word is shorter than the threshold.
func (e *Engine) Suggest(src Source, line, col int) (word string, candidates []string) {
	if !e.enabled {
		return "", nil
	}
	text, err := src.Get(line)
	if err != nil {
		return "", nil
	}
	word = e.WordBeforeCursor(text, col)
	if len([]rune(word)) < e.threshold {
		return word, nil
	}
	return word, e.Candidates(src.Text(), word)
}

// Complete is Suggest without the enabled and threshold checks, for an
// explicit completion request.
func (e *Engine) Complete(src Source, line, col int) (word string, candidates []string) {
	text, err := src.Get(line)
	if err != nil {
		return "", nil
	}
	word = e.WordBeforeCursor(text, col)
	return word, e.Candidates(src.Text(), word)
}
