// Package marks tracks per-line bookmarks.
//
// Marks are attached to a line's stable identity, not to its index, so a
// bookmark follows its line as lines are inserted or removed above it. A
// mark is discarded when its line is destroyed and is not recreated if the
// line later comes back through undo.
package marks

import (
	"github.com/dshills/linecore/internal/engine/buffer"
)

// Tracker is a side table of bookmarked line identities.
// It holds a non-owning reference to its buffer.
type Tracker struct {
	buf   *buffer.Buffer
	marks map[buffer.LineID]struct{}
}

// NewTracker creates an empty tracker over buf.
func NewTracker(buf *buffer.Buffer) *Tracker {
	return &Tracker{
		buf:   buf,
		marks: make(map[buffer.LineID]struct{}),
	}
}

// Toggle flips the mark of the line with the given identity and returns
// the new state.
func (t *Tracker) Toggle(id buffer.LineID) bool {
	if _, ok := t.marks[id]; ok {
		delete(t.marks, id)
		return false
	}
	t.marks[id] = struct{}{}
	return true
}

// ToggleLine flips the mark of the line at index.
func (t *Tracker) ToggleLine(index int) (bool, error) {
	l, err := t.buf.Line(index)
	if err != nil {
		return false, err
	}
	return t.Toggle(l.ID), nil
}

// IsMarked reports whether the line with the given identity is marked.
func (t *Tracker) IsMarked(id buffer.LineID) bool {
	_, ok := t.marks[id]
	return ok
}

// IsLineMarked reports whether the line at index is marked. Invalid
// indices are never marked.
func (t *Tracker) IsLineMarked(index int) bool {
	l, err := t.buf.Line(index)
	if err != nil {
		return false
	}
	return t.IsMarked(l.ID)
}

// Clear unmarks every line in the inclusive range [start, end] and returns
// how many marks were removed.
func (t *Tracker) Clear(start, end int) (int, error) {
	n := t.buf.Len()
	if start < 0 || start >= n {
		return 0, &buffer.BoundsError{Op: "clearMarks", Kind: "line", Value: start, Min: 0, Max: n - 1}
	}
	if end < start || end >= n {
		return 0, &buffer.BoundsError{Op: "clearMarks", Kind: "range", Value: end, Min: start, Max: n - 1}
	}
	lines := t.buf.Lines()
	cleared := 0
	for _, l := range lines[start : end+1] {
		if _, ok := t.marks[l.ID]; ok {
			delete(t.marks, l.ID)
			cleared++
		}
	}
	return cleared, nil
}

// ClearAll removes every mark.
func (t *Tracker) ClearAll() {
	t.marks = make(map[buffer.LineID]struct{})
}

// FindNext returns the index of the first marked line after from.
// The scan stops at the end of the document without wrapping around.
// A negative from scans from the first line.
func (t *Tracker) FindNext(from int) (int, bool) {
	lines := t.buf.Lines()
	start := from + 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		if t.IsMarked(lines[i].ID) {
			return i, true
		}
	}
	return -1, false
}

// FindPrevious returns the index of the first marked line before from,
// scanning backward. The scan stops at the first line without wrapping
// around. A from past the end scans from the last line.
func (t *Tracker) FindPrevious(from int) (int, bool) {
	lines := t.buf.Lines()
	start := from - 1
	if start >= len(lines) {
		start = len(lines) - 1
	}
	for i := start; i >= 0; i-- {
		if t.IsMarked(lines[i].ID) {
			return i, true
		}
	}
	return -1, false
}

// Observe discards the marks of lines destroyed by c.
// It returns true if any mark was discarded.
func (t *Tracker) Observe(c buffer.Change) bool {
	discarded := false
	for _, id := range c.Destroyed() {
		if _, ok := t.marks[id]; ok {
			delete(t.marks, id)
			discarded = true
		}
	}
	return discarded
}

// Lines returns the indices of marked lines in ascending order.
func (t *Tracker) Lines() []int {
	if len(t.marks) == 0 {
		return nil
	}
	var out []int
	for i, l := range t.buf.Lines() {
		if t.IsMarked(l.ID) {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of marks.
func (t *Tracker) Count() int {
	return len(t.marks)
}
