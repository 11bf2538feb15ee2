package cursor

import (
	"github.com/dshills/linecore/internal/engine/buffer"
)

// TransformPosition updates a position after a line change.
//
// Transformation rules:
//   - Lines before the change are unaffected
//   - Lines after the changed region shift by the change's line delta
//   - A position on a line that was replaced in place keeps its line and
//     has its column clamped to the new text
//   - A position on a line that was removed moves to the end of the last
//     inserted line, or to the start of the line now following the change
func TransformPosition(p Position, c buffer.Change) Position {
	if c.IsEmpty() || p.Line < c.Start {
		return p
	}
	end := c.Start + len(c.Removed)
	if p.Line >= end {
		p.Line += c.LineDelta()
		return p
	}

	rel := p.Line - c.Start
	if rel < len(c.Inserted) {
		if n := c.Inserted[rel].Len(); p.Column > n {
			p.Column = n
		}
		return p
	}
	if len(c.Inserted) > 0 {
		last := c.Inserted[len(c.Inserted)-1]
		return Position{Line: c.Start + len(c.Inserted) - 1, Column: last.Len()}
	}
	return Position{Line: c.Start, Column: 0}
}

// TransformSelection updates both ends of a selection after a line change.
func TransformSelection(sel Selection, c buffer.Change) Selection {
	return Selection{
		Anchor: TransformPosition(sel.Anchor, c),
		Head:   TransformPosition(sel.Head, c),
	}
}
