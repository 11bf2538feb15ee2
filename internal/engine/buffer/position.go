package buffer

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// Position is a line and column in the document.
// Both are 0-indexed. Column counts characters (runes) and may equal the
// line length, which denotes the end of the line.
type Position struct {
	Line   int
	Column int
}

// Pos is shorthand for Position{Line: line, Column: col}.
func Pos(line, col int) Position {
	return Position{Line: line, Column: col}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders positions by line, then column.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
