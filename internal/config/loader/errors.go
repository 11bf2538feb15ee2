package loader

import (
	"fmt"
	"strings"
)

// ParseError reports a settings file that could not be parsed. Line and
// Column are 1-based and zero when the parser did not report a position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error formats the error as path:line:column: message, leaving out the
// parts of the position that are unknown.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }
