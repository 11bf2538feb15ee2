// Package indent computes indentation: indent units, unindent rules, tab
// and backspace behavior, smart home, and language indent policies.
//
// Every function here is pure. The engine package applies the results to
// the buffer inside transactions.
package indent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LeadingWhitespace returns the leading whitespace of s.
func LeadingWhitespace(s string) string {
	for i, r := range s {
		if !unicode.IsSpace(r) {
			return s[:i]
		}
	}
	return s
}

// FirstNonWhitespace returns the column of the first non-whitespace
// character of s, or its length if s is blank.
func FirstNonWhitespace(s string) int {
	return utf8.RuneCountInString(LeadingWhitespace(s))
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Indent returns text with one indent unit inserted at column 0.
func Indent(text string, cfg Config) string {
	return cfg.Unit() + text
}

// UnindentCount returns how many leading characters one unindent removes:
//  1. the full indent unit, if text starts with it;
//  2. otherwise a single tab, if text starts with one;
//  3. otherwise up to Width leading spaces.
func UnindentCount(text string, cfg Config) int {
	unit := cfg.Unit()
	if strings.HasPrefix(text, unit) {
		return cfg.UnitLen()
	}
	if strings.HasPrefix(text, "\t") {
		return 1
	}
	n := 0
	for n < len(text) && n < cfg.Width && text[n] == ' ' {
		n++
	}
	return n
}

// Unindent returns text with at most one indent unit removed.
func Unindent(text string, cfg Config) string {
	// Removed characters are ASCII, so the count is also a byte count.
	return text[UnindentCount(text, cfg):]
}

// TabText returns what the Tab key inserts when nothing is selected and
// the cursor is at column col: a tab, or enough spaces to reach the next
// multiple of Width.
func TabText(col int, cfg Config) string {
	if cfg.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", cfg.Width-col%cfg.Width)
}

// BackspaceUnindent reports how many characters before the cursor a
// backspace should remove as an unindent, or 0 if backspace should behave
// normally. text is the cursor line and col the cursor column.
//
// It applies only when nothing is selected, the cursor is exactly at the
// end of the leading whitespace, and the text before the cursor ends with
// a full indent unit.
func BackspaceUnindent(text string, col int, hasSelection bool, cfg Config) int {
	if hasSelection || col == 0 || col != FirstNonWhitespace(text) {
		return 0
	}
	before := string([]rune(text)[:col])
	if !strings.HasSuffix(before, cfg.Unit()) {
		return 0
	}
	n := col % cfg.UnitLen()
	if n == 0 {
		n = cfg.UnitLen()
	}
	return n
}

// SmartHomeColumn returns where Home moves the cursor: to column 0 when
// the cursor is already at the first non-whitespace column, otherwise to
// that column.
func SmartHomeColumn(text string, col int) int {
	first := FirstNonWhitespace(text)
	if col == first {
		return 0
	}
	return first
}
