package engine

import (
	"fmt"

	"github.com/dshills/linecore/internal/completion"
	"github.com/dshills/linecore/internal/event/events"
	"github.com/dshills/linecore/internal/indent"
	"github.com/dshills/linecore/internal/syntax"
)

// ============================================================================
// Syntax Queries
// ============================================================================

// IsCode reports whether (line, col) is code, not a comment or string.
func (e *Editor) IsCode(line, col int) bool {
	return e.classifier.IsCode(line, col)
}

// IsComment reports whether (line, col) is inside a comment.
func (e *Editor) IsComment(line, col int) bool {
	return e.classifier.IsComment(line, col)
}

// IsBlockComment reports whether (line, col) is inside a block comment.
func (e *Editor) IsBlockComment(line, col int) bool {
	return e.classifier.IsBlockComment(line, col)
}

// IsHereDoc reports whether (line, col) is inside a here-document.
func (e *Editor) IsHereDoc(line, col int) bool {
	return e.classifier.IsHereDoc(line, col)
}

// SetClassifier replaces the syntax classifier. nil selects one that
// treats everything as code.
func (e *Editor) SetClassifier(c syntax.Classifier) {
	if c == nil {
		c = syntax.NullClassifier{}
	}
	e.classifier = c
}

// ============================================================================
// Language and Indent Policy
// ============================================================================

// Language returns the selected language name, or "" if none.
func (e *Editor) Language() string {
	return e.language
}

// Policy returns the active indent policy.
func (e *Editor) Policy() indent.Policy {
	return e.policy
}

// Registry returns the indent policy registry.
func (e *Editor) Registry() *indent.Registry {
	return e.registry
}

// SetLanguage selects a language by name or alias. A language chroma
// knows gets a lexer-backed classifier; any other name falls back to
// the null classifier. The indent policy comes from the registry, which
// falls back to the normal policy.
func (e *Editor) SetLanguage(name string) {
	if lexer, ok := syntax.Lookup(name); ok {
		e.classifier = syntax.NewChromaClassifier(e.buf, lexer, syntax.WithLogger(e.logger))
		name = syntax.LanguageName(lexer)
	} else {
		e.classifier = syntax.NullClassifier{}
	}
	e.language = name
	e.policy = e.registry.ForLanguage(name)
	e.languageChanged()
}

// DetectLanguage picks the language from a file name and the document
// content, and returns its name. A registry rule matching the file name
// takes precedence over the language's own policy.
func (e *Editor) DetectLanguage(filename string) string {
	lexer := syntax.Detect(filename, e.buf.Text())
	if lexer != nil {
		e.classifier = syntax.NewChromaClassifier(e.buf, lexer, syntax.WithLogger(e.logger))
	} else {
		e.classifier = syntax.NullClassifier{}
	}
	e.language = syntax.LanguageName(lexer)
	if p, ok := e.registry.ForFile(filename); ok {
		e.policy = p
	} else {
		e.policy = e.registry.ForLanguage(e.language)
	}
	e.languageChanged()
	return e.language
}

// SetPolicy selects a registered indent policy by name.
func (e *Editor) SetPolicy(name string) error {
	p, ok := e.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPolicyNotFound, name)
	}
	e.policy = p
	e.languageChanged()
	return nil
}

// UsePolicy installs a policy that need not be registered, such as a
// scripted one.
func (e *Editor) UsePolicy(p indent.Policy) {
	e.policy = p
	e.languageChanged()
}

func (e *Editor) languageChanged() {
	e.logger.Debug("language selected", "language", e.language, "policy", e.policy.Name())
	publish(e, events.TopicLanguageChanged, events.LanguageChanged{Language: e.language, Policy: e.policy.Name()})
}

// ============================================================================
// Completion
// ============================================================================

// Completer returns the completion engine.
func (e *Editor) Completer() *completion.Engine {
	return e.completer
}

// WordSet returns every distinct word in the document.
func (e *Editor) WordSet() map[string]struct{} {
	return e.completer.WordSet(e.buf.Text())
}

// WordBeforeCursor returns the word ending at the cursor, or "".
func (e *Editor) WordBeforeCursor() string {
	p := e.sel.Head
	text, _ := e.buf.Get(p.Line)
	return e.completer.WordBeforeCursor(text, p.Column)
}

// Candidates returns the document's words that extend prefix, sorted.
func (e *Editor) Candidates(prefix string) []string {
	return e.completer.Candidates(e.buf.Text(), prefix)
}

// Suggest returns the word before the cursor and its candidates for
// automatic completion, honoring the enabled flag and the threshold.
func (e *Editor) Suggest() (word string, candidates []string) {
	p := e.sel.Head
	return e.completer.Suggest(e.buf, p.Line, p.Column)
}

// Complete is Suggest for an explicit request: it ignores the enabled
// flag and the threshold.
func (e *Editor) Complete() (word string, candidates []string) {
	p := e.sel.Head
	return e.completer.Complete(e.buf, p.Line, p.Column)
}
