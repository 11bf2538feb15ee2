package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LineID is the stable identity of a line.
// IDs are assigned when a line is created and are never reused by the
// buffer that issued them, so they can key per-line metadata that must
// survive reindexing.
type LineID uint64

// Line is one line of the document: its text, without a terminator, and
// its identity.
type Line struct {
	ID   LineID
	Text string
}

// Len returns the length of the line in characters.
func (l Line) Len() int {
	return utf8.RuneCountInString(l.Text)
}

// Change describes one primitive edit: the lines starting at Start that
// were removed and the lines that replaced them.
type Change struct {
	Start    int
	Removed  []Line
	Inserted []Line
}

// IsEmpty returns true if the change neither removed nor inserted lines.
func (c Change) IsEmpty() bool {
	return len(c.Removed) == 0 && len(c.Inserted) == 0
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	return Change{
		Start:    c.Start,
		Removed:  c.Inserted,
		Inserted: c.Removed,
	}
}

// LineDelta returns the change in line count caused by c.
func (c Change) LineDelta() int {
	return len(c.Inserted) - len(c.Removed)
}

// Destroyed returns the identities of removed lines that did not survive
// the change.
func (c Change) Destroyed() []LineID {
	kept := make(map[LineID]struct{}, len(c.Inserted))
	for _, l := range c.Inserted {
		kept[l.ID] = struct{}{}
	}
	var ids []LineID
	for _, l := range c.Removed {
		if _, ok := kept[l.ID]; !ok {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// SplitLines normalizes line terminators and splits text into lines.
// An empty string yields a single empty line, and a trailing terminator
// yields a trailing empty line.
func SplitLines(text string) []string {
	return strings.Split(NormalizeLineEndings(text), "\n")
}

// NormalizeLineEndings converts CRLF and CR terminators to LF, the
// document's internal terminator.
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ToTexts converts a heterogeneous slice to line texts.
// Every entry must be a string; otherwise a TypeMismatchError naming the
// first offending entry is returned.
func ToTexts(items []any) ([]string, error) {
	texts := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeMismatchError{Index: i, Got: typeName(item)}
		}
		texts[i] = s
	}
	return texts, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
