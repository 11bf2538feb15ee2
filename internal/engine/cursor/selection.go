package cursor

import (
	"fmt"

	"github.com/dshills/linecore/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position
	Head   Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	if s.Anchor.After(s.Head) {
		return s.Head
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	if s.Anchor.After(s.Head) {
		return s.Anchor
	}
	return s.Head
}

// Cursor returns the head position.
func (s Selection) Cursor() Position {
	return s.Head
}

// IsForward returns true if the head is at or after the anchor.
func (s Selection) IsForward() bool {
	return !s.Anchor.After(s.Head)
}

// Lines returns the first and last line touched by the selection.
func (s Selection) Lines() (first, last int) {
	return s.Start().Line, s.End().Line
}

// Extend moves the head, keeping the anchor fixed.
func (s Selection) Extend(p Position) Selection {
	return Selection{Anchor: s.Anchor, Head: p}
}

// MoveTo collapses the selection to a cursor at p.
func (s Selection) MoveTo(p Position) Selection {
	return NewCursorSelection(p)
}

// Collapse collapses the selection to its head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// Flip swaps anchor and head.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Clamp limits both ends to valid positions of the mapped buffer.
func (s Selection) Clamp(m *buffer.Mapper) Selection {
	return Selection{Anchor: m.Clamp(s.Anchor), Head: m.Clamp(s.Head)}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection[%s->%s]", s.Anchor, s.Head)
}
