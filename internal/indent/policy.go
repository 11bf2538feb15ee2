package indent

import (
	"strings"

	"github.com/dshills/linecore/internal/syntax"
)

// Trigger values passed to Policy.ComputeIndent besides typed characters.
const (
	// TriggerNewline is passed when a line was just created by Enter.
	TriggerNewline = "\n"
	// TriggerReindent is passed when existing lines are re-indented.
	TriggerReindent = ""
)

// Lines is read access to the document.
type Lines interface {
	Len() int
	Get(index int) (string, error)
}

// Context is what a policy sees when computing a line's indentation.
type Context struct {
	Lines      Lines
	Line       int
	Config     Config
	Classifier syntax.Classifier
}

// Text returns the text of the line being indented.
func (c *Context) Text() string {
	return c.LineText(c.Line)
}

// LineText returns the text of line i, or "" if i is out of range.
func (c *Context) LineText(i int) string {
	s, err := c.Lines.Get(i)
	if err != nil {
		return ""
	}
	return s
}

// PrevLine returns the text of the line above, if any.
func (c *Context) PrevLine() (string, bool) {
	if c.Line <= 0 {
		return "", false
	}
	return c.LineText(c.Line - 1), true
}

// PrevNonBlank returns the closest line above that is not blank.
func (c *Context) PrevNonBlank() (int, string, bool) {
	for i := c.Line - 1; i >= 0; i-- {
		s := c.LineText(i)
		if !IsBlank(s) {
			return i, s, true
		}
	}
	return -1, "", false
}

// IsCode asks the classifier whether (line, col) is code. Without a
// classifier everything is code.
func (c *Context) IsCode(line, col int) bool {
	if c.Classifier == nil {
		return true
	}
	return c.Classifier.IsCode(line, col)
}

// lastCodeChar returns the last non-whitespace character of line i and
// whether it lies in code.
func (c *Context) lastCodeChar(i int) (rune, bool) {
	runes := []rune(strings.TrimRightFunc(c.LineText(i), isSpace))
	if len(runes) == 0 {
		return 0, false
	}
	col := len(runes) - 1
	return runes[col], c.IsCode(i, col)
}

// Policy computes language-specific indentation.
type Policy interface {
	// Name identifies the policy in a Registry.
	Name() string

	// ComputeIndent returns the indentation the current line should have.
	// trigger is TriggerNewline, TriggerReindent, or the character just
	// typed at the end of the line. ok is false when the policy has no
	// opinion and the line should be left alone.
	ComputeIndent(ctx *Context, trigger string) (indent string, ok bool)

	// TriggerCharacters lists the characters that re-indent a line when
	// typed at its end.
	TriggerCharacters() string
}

// IsTrigger reports whether ch is one of p's trigger characters.
func IsTrigger(p Policy, ch string) bool {
	if ch == "" || ch == TriggerNewline {
		return false
	}
	return strings.Contains(p.TriggerCharacters(), ch)
}
