package indent

import (
	"strings"
	"unicode"
)

// Names of the built-in policies.
const (
	PolicyNormal   = "normal"
	PolicyBrackets = "brackets"
	PolicyPython   = "python"
)

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// NormalPolicy copies the leading whitespace of the previous line.
// It is the fallback when no language policy applies.
type NormalPolicy struct{}

// Name returns "normal".
func (NormalPolicy) Name() string { return PolicyNormal }

// TriggerCharacters returns no characters.
func (NormalPolicy) TriggerCharacters() string { return "" }

// ComputeIndent returns the previous line's indentation. The first line
// has no indentation.
func (NormalPolicy) ComputeIndent(ctx *Context, trigger string) (string, bool) {
	prev, ok := ctx.PrevLine()
	if !ok {
		return "", true
	}
	return LeadingWhitespace(prev), true
}

// BracketsPolicy indents after an opening bracket at the end of a line
// and dedents lines that start with a closing bracket, as in C-like
// languages. Brackets inside comments and strings are ignored.
type BracketsPolicy struct{}

// Name returns "brackets".
func (BracketsPolicy) Name() string { return PolicyBrackets }

// TriggerCharacters returns the closing brackets.
func (BracketsPolicy) TriggerCharacters() string { return "}])" }

// ComputeIndent implements Policy.
func (BracketsPolicy) ComputeIndent(ctx *Context, trigger string) (string, bool) {
	text := ctx.Text()
	content := strings.TrimLeftFunc(text, isSpace)

	if trigger != TriggerNewline && trigger != TriggerReindent {
		// A closing bracket only re-indents when it is the first thing on
		// the line.
		if content != trigger {
			return "", false
		}
	}

	prevIdx, prev, ok := ctx.PrevNonBlank()
	if !ok {
		return "", true
	}
	indent := LeadingWhitespace(prev)
	if ch, code := ctx.lastCodeChar(prevIdx); code && strings.ContainsRune("{[(", ch) {
		indent += ctx.Config.Unit()
	}

	if content != "" && strings.ContainsRune("}])", []rune(content)[0]) {
		col := FirstNonWhitespace(text)
		if ctx.IsCode(ctx.Line, col) {
			indent = Unindent(indent, ctx.Config)
		}
	}
	return indent, true
}

// PythonPolicy indents after a line ending with a colon and dedents after
// statements that end a block.
type PythonPolicy struct{}

// Name returns "python".
func (PythonPolicy) Name() string { return PolicyPython }

// TriggerCharacters returns no characters.
func (PythonPolicy) TriggerCharacters() string { return "" }

var blockEnders = []string{"return", "pass", "break", "continue", "raise"}

// ComputeIndent implements Policy.
func (PythonPolicy) ComputeIndent(ctx *Context, trigger string) (string, bool) {
	prevIdx, prev, ok := ctx.PrevNonBlank()
	if !ok {
		return "", true
	}
	indent := LeadingWhitespace(prev)

	if ch, code := ctx.lastCodeChar(prevIdx); code && ch == ':' {
		return indent + ctx.Config.Unit(), true
	}

	stmt := strings.TrimSpace(prev)
	for _, kw := range blockEnders {
		if stmt == kw || strings.HasPrefix(stmt, kw+" ") || strings.HasPrefix(stmt, kw+"(") {
			return Unindent(indent, ctx.Config), true
		}
	}
	return indent, true
}
