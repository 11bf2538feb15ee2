package engine

import (
	"github.com/dshills/linecore/internal/engine/cursor"
	"github.com/dshills/linecore/internal/event/events"
)

// Bookmarks are attached to line identity: a mark follows its line when
// lines are inserted or removed above it, and disappears with its line.

// ToggleMark flips the bookmark of the cursor line and returns the new
// state.
func (e *Editor) ToggleMark() bool {
	marked, _ := e.ToggleMarkAt(e.sel.Head.Line)
	return marked
}

// ToggleMarkAt flips the bookmark of line.
func (e *Editor) ToggleMarkAt(line int) (bool, error) {
	marked, err := e.marks.ToggleLine(line)
	if err != nil {
		return false, err
	}
	e.marksChanged()
	return marked, nil
}

// IsMarked reports whether line is bookmarked.
func (e *Editor) IsMarked(line int) bool {
	return e.marks.IsLineMarked(line)
}

// MarkedLines returns the bookmarked line indices in ascending order.
func (e *Editor) MarkedLines() []int {
	return e.marks.Lines()
}

// NextMark moves the cursor to the start of the next bookmarked line
// below the cursor. It reports false, leaving the cursor alone, when
// there is none; the search does not wrap.
func (e *Editor) NextMark() bool {
	line, ok := e.marks.FindNext(e.sel.Head.Line)
	if !ok {
		return false
	}
	e.setSelection(cursor.NewCursorSelection(Pos(line, 0)), "Next mark")
	return true
}

// PrevMark moves the cursor to the start of the previous bookmarked line
// above the cursor.
func (e *Editor) PrevMark() bool {
	line, ok := e.marks.FindPrevious(e.sel.Head.Line)
	if !ok {
		return false
	}
	e.setSelection(cursor.NewCursorSelection(Pos(line, 0)), "Previous mark")
	return true
}

// ClearMarks removes the bookmarks of lines [start, end], inclusive.
func (e *Editor) ClearMarks(start, end int) error {
	n, err := e.marks.Clear(start, end)
	if err != nil {
		return err
	}
	if n > 0 {
		e.marksChanged()
	}
	return nil
}

// ClearAllMarks removes every bookmark.
func (e *Editor) ClearAllMarks() {
	if e.marks.Count() == 0 {
		return
	}
	e.marks.ClearAll()
	e.marksChanged()
}

func (e *Editor) marksChanged() {
	publish(e, events.TopicMarksChanged, events.MarksChanged{Lines: e.marks.Lines()})
}
