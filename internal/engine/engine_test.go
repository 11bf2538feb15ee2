package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linecore/internal/config"
	"github.com/dshills/linecore/internal/event"
	"github.com/dshills/linecore/internal/event/events"
	"github.com/dshills/linecore/internal/indent"
)

// ============================================================================
// Helpers
// ============================================================================

func newEditor(t *testing.T, content string, opts ...Option) *Editor {
	t.Helper()
	e, err := New(append([]Option{WithContent(content)}, opts...)...)
	require.NoError(t, err)
	return e
}

// collect records every event published on the editor's bus.
func collect(t *testing.T, e *Editor) *[]any {
	t.Helper()
	var got []any
	_, err := e.Bus().SubscribeFunc("**", func(_ context.Context, ev any) error {
		got = append(got, ev)
		return nil
	})
	require.NoError(t, err)
	return &got
}

func payloads[T any](evs []any) []T {
	var out []T
	for _, ev := range evs {
		if e, ok := ev.(event.Event[T]); ok {
			out = append(out, e.Payload)
		}
	}
	return out
}

// ============================================================================
// Construction
// ============================================================================

func TestNewDefaults(t *testing.T) {
	e := newEditor(t, "")
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 4, e.IndentWidth())
	assert.False(t, e.UseTabs())
	assert.Equal(t, LineEndingLF, e.EOL())
	assert.Equal(t, indent.PolicyNormal, e.Policy().Name())
	assert.Equal(t, Pos(0, 0), e.CursorPosition())
	assert.False(t, e.CanUndo())
}

func TestNewRejectsInvalidWidth(t *testing.T) {
	_, err := New(WithIndentWidth(0))
	require.ErrorIs(t, err, ErrInvalidConfig)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "indent.width", ce.Setting)
}

// ============================================================================
// Line Operations
// ============================================================================

func TestLineView(t *testing.T) {
	e := newEditor(t, "a\nb\nc")

	last, err := e.Line(-1)
	require.NoError(t, err)
	assert.Equal(t, "c", last)

	require.NoError(t, e.InsertLine(1, "x"))
	assert.Equal(t, []string{"a", "x", "b", "c"}, e.Texts())

	got, err := e.Lines(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "b"}, got)

	require.NoError(t, e.SetLine(-2, "B"))
	require.NoError(t, e.AppendLine("d"))
	assert.Equal(t, []string{"a", "x", "B", "c", "d"}, e.Texts())

	_, err = e.Line(5)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, e.DeleteLine(9), ErrOutOfBounds)
	assert.Len(t, e.Texts(), 5, "failed calls must not mutate")
}

func TestInsertionShift(t *testing.T) {
	e := newEditor(t, "l0\nl1\nl2\nl3")
	before := e.Texts()

	require.NoError(t, e.InsertLine(2, "new"))
	got, _ := e.Line(2)
	assert.Equal(t, "new", got)
	for i := 2; i < len(before); i++ {
		moved, _ := e.Line(i + 1)
		assert.Equal(t, before[i], moved)
	}
}

func TestDeleteEverythingLeavesOneEmptyLine(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	require.NoError(t, e.DeleteRange(0, e.Len()))
	assert.Equal(t, []string{""}, e.Texts())

	require.NoError(t, e.SetLines(nil))
	assert.Equal(t, 1, e.Len())
}

func TestSetRangeTypeMismatch(t *testing.T) {
	e := newEditor(t, "a\nb")
	err := e.SetRange(0, 2, []any{"x", 3})
	require.ErrorIs(t, err, ErrTypeMismatch)

	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, 1, tm.Index)
	assert.Equal(t, []string{"a", "b"}, e.Texts())
	assert.False(t, e.CanUndo())

	require.NoError(t, e.SetLines([]any{"one", "two", "three"}))
	assert.Equal(t, []string{"one", "two", "three"}, e.Texts())
}

func TestSetTextIsOneStep(t *testing.T) {
	e := newEditor(t, "old")
	e.SetCursorPosition(0, 3)
	require.NoError(t, e.SetText("x\r\ny"))
	assert.Equal(t, []string{"x", "y"}, e.Texts())
	assert.Equal(t, Pos(0, 0), e.CursorPosition())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, "old", e.Text())
	assert.Equal(t, Pos(0, 3), e.CursorPosition())
}

func TestSetTextDropsMarks(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	_, err := e.ToggleMarkAt(0)
	require.NoError(t, err)

	require.NoError(t, e.SetText("x\ny\nz"))
	assert.Empty(t, e.MarkedLines(), "no line survives a whole-document replace")

	require.NoError(t, e.Undo())
	assert.Equal(t, []string{"a", "b", "c"}, e.Texts())
}

// ============================================================================
// Position Conversion
// ============================================================================

func TestCoordinateRoundTrip(t *testing.T) {
	e := newEditor(t, "fn main() {\n\tx := \"héllo\"\n\n}")
	for line := 0; line < e.Len(); line++ {
		text, _ := e.Line(line)
		for col := 0; col <= len([]rune(text)); col++ {
			off, err := e.ToAbsolute(line, col)
			require.NoError(t, err)
			l, c, err := e.ToLineCol(off)
			require.NoError(t, err)
			assert.Equal(t, Pos(line, col), Pos(l, c))
		}
	}

	_, _, err := e.ToLineCol(e.TotalLength() + 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = e.ToAbsolute(0, 99)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

// ============================================================================
// Cursor and Selection
// ============================================================================

func TestSetCursorPositionClamps(t *testing.T) {
	e := newEditor(t, "ab\ncde")

	e.SetCursorPosition(10, 10)
	assert.Equal(t, Pos(1, 3), e.CursorPosition())
	assert.Equal(t, 6, e.AbsCursorPosition())

	e.SetCursorPosition(-1, -5)
	assert.Equal(t, Pos(0, 0), e.CursorPosition())

	e.SetAbsCursorPosition(100)
	assert.Equal(t, Pos(1, 3), e.CursorPosition())
	e.SetAbsCursorPosition(1)
	assert.Equal(t, Pos(0, 1), e.CursorPosition())
}

func TestSetCursorToTextStart(t *testing.T) {
	e := newEditor(t, "x\n  \tfoo")
	e.SetCursorToTextStart(1)
	assert.Equal(t, Pos(1, 3), e.CursorPosition())
	e.SetCursorToTextStart(7)
	assert.Equal(t, Pos(1, 3), e.CursorPosition())
}

func TestSelectedTextAndReplace(t *testing.T) {
	e := newEditor(t, "one\ntwo\nthree")
	e.SetSelection(Pos(2, 2), Pos(0, 1))
	assert.Equal(t, "ne\ntwo\nth", e.SelectedText())

	require.NoError(t, e.ReplaceSelection("X"))
	assert.Equal(t, []string{"oXree"}, e.Texts())
	assert.Equal(t, Pos(0, 2), e.CursorPosition())
	assert.True(t, e.Selection().IsEmpty())
}

func TestSelectLinesBounds(t *testing.T) {
	e := newEditor(t, "a\nbb")
	require.NoError(t, e.SelectLines(0, 1))
	assert.Equal(t, Selection{Anchor: Pos(0, 0), Head: Pos(1, 2)}, e.Selection())
	assert.ErrorIs(t, e.SelectLines(1, 0), ErrOutOfBounds)
	assert.ErrorIs(t, e.SelectLines(0, 2), ErrOutOfBounds)
}

// ============================================================================
// Offset Edits
// ============================================================================

func TestReplaceTextStrictBounds(t *testing.T) {
	e := newEditor(t, "abc")
	assert.ErrorIs(t, e.ReplaceText(2, 5, "x"), ErrOutOfBounds)
	assert.ErrorIs(t, e.ReplaceText(-1, 0, "x"), ErrOutOfBounds)
	assert.ErrorIs(t, e.ReplaceText(4, 0, "x"), ErrOutOfBounds)
	assert.Equal(t, "abc", e.Text())

	require.NoError(t, e.ReplaceText(1, 1, "XY"))
	assert.Equal(t, "aXYc", e.Text())

	require.NoError(t, e.InsertText(0, "z\n"))
	assert.Equal(t, []string{"z", "aXYc"}, e.Texts())

	require.NoError(t, e.DeleteText(1, 2))
	assert.Equal(t, []string{"zXYc"}, e.Texts())
}

func TestReplaceTextShiftsCursor(t *testing.T) {
	e := newEditor(t, "hello world")

	e.SetCursorPosition(0, 2)
	require.NoError(t, e.ReplaceText(6, 5, "there"))
	assert.Equal(t, Pos(0, 2), e.CursorPosition(), "edits after the cursor leave it alone")

	e.SetCursorPosition(0, 11)
	require.NoError(t, e.ReplaceText(0, 5, "hi"))
	assert.Equal(t, "hi there", e.Text())
	assert.Equal(t, Pos(0, 8), e.CursorPosition())
}

func TestEditKeepsInvalidUTF8(t *testing.T) {
	e := newEditor(t, "a\xffb")
	require.NoError(t, e.InsertText(1, "x"))
	assert.Equal(t, "ax\xffb", e.Text())

	e.SetSelection(Pos(0, 2), Pos(0, 3))
	assert.Equal(t, "\xff", e.SelectedText())
}

func TestReplaceKeepsLineIdentity(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	_, err := e.ToggleMarkAt(1)
	require.NoError(t, err)

	require.NoError(t, e.ReplaceRange(Pos(1, 0), Pos(1, 1), "B"))
	assert.Equal(t, []int{1}, e.MarkedLines())
}

// ============================================================================
// Transactions
// ============================================================================

func TestTransactionNestingEquivalence(t *testing.T) {
	run := func(nested bool) *Editor {
		e := newEditor(t, "a\nb")
		outer := e.Begin("outer")
		var inner *Scope
		if nested {
			inner = e.Begin("inner")
		}
		require.NoError(t, e.SetLine(0, "x"))
		require.NoError(t, e.SetLine(1, "y"))
		if nested {
			inner.End()
			assert.Equal(t, 1, e.TransactionDepth())
			assert.Equal(t, 0, e.UndoCount())
		}
		outer.End()
		return e
	}

	flat, nested := run(false), run(true)
	assert.Equal(t, 1, nested.UndoCount())
	assert.Equal(t, flat.UndoCount(), nested.UndoCount())

	require.NoError(t, flat.Undo())
	require.NoError(t, nested.Undo())
	assert.Equal(t, []string{"a", "b"}, nested.Texts())
	assert.Equal(t, flat.Texts(), nested.Texts())
}

func TestTransactionClosesOnError(t *testing.T) {
	e := newEditor(t, "a\nb")
	boom := errors.New("boom")

	err := e.Transaction("failing", func() error {
		if err := e.SetLine(0, "x"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, e.TransactionDepth())
	assert.Equal(t, []string{"x", "b"}, e.Texts())
	assert.Equal(t, 1, e.UndoCount())
}

func TestTransactionClosesOnPanic(t *testing.T) {
	e := newEditor(t, "a")
	assert.Panics(t, func() {
		_ = e.Transaction("panicking", func() error {
			_ = e.SetLine(0, "x")
			panic("boom")
		})
	})
	assert.Equal(t, 0, e.TransactionDepth())
	assert.Equal(t, 1, e.UndoCount())
}

func TestScopeEndIdempotent(t *testing.T) {
	e := newEditor(t, "a")
	s := e.Begin("once")
	s.End()
	s.End()
	assert.Equal(t, 0, e.TransactionDepth())
}

func TestUndoRefusedInsideTransaction(t *testing.T) {
	e := newEditor(t, "a")
	require.NoError(t, e.SetLine(0, "b"))

	s := e.Begin("open")
	assert.ErrorIs(t, e.Undo(), ErrTransactionOpen)
	s.End()
	assert.NoError(t, e.Undo())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	assert.NoError(t, e.Redo())
	assert.ErrorIs(t, e.Redo(), ErrNothingToRedo)
}

func TestUndoRestoresSelection(t *testing.T) {
	e := newEditor(t, "abc")
	e.SetCursorPosition(0, 3)
	require.NoError(t, e.TypeText("d"))
	assert.Equal(t, "abcd", e.Text())
	assert.Equal(t, Pos(0, 4), e.CursorPosition())

	require.NoError(t, e.Undo())
	assert.Equal(t, "abc", e.Text())
	assert.Equal(t, Pos(0, 3), e.CursorPosition())

	require.NoError(t, e.Redo())
	assert.Equal(t, Pos(0, 4), e.CursorPosition())
}

// ============================================================================
// Indentation
// ============================================================================

func TestIndentUnindentInverse(t *testing.T) {
	e := newEditor(t, "foo")
	require.NoError(t, e.IndentLine(0))
	assert.Equal(t, "    foo", e.Text())
	require.NoError(t, e.UnindentLine(0))
	assert.Equal(t, "foo", e.Text())

	require.NoError(t, e.UnindentLine(0))
	assert.Equal(t, 2, e.UndoCount(), "unindenting an unindented line records nothing")
}

func TestUnindentNothingRecordsNothing(t *testing.T) {
	e := newEditor(t, "abc\ndef")
	e.SetSelection(Pos(0, 1), Pos(1, 1))
	require.NoError(t, e.IndentSelection(false))
	assert.Equal(t, []string{"abc", "def"}, e.Texts())
	assert.Equal(t, Selection{Anchor: Pos(0, 0), Head: Pos(1, 3)}, e.Selection())
	assert.Equal(t, 0, e.UndoCount())
	assert.False(t, e.CanUndo())
}

func TestUnindentPrecedenceWithTabs(t *testing.T) {
	e := newEditor(t, "    x\n\t  y\n  \tz", WithUseTabs(true))
	for line := 0; line < 3; line++ {
		require.NoError(t, e.UnindentLine(line))
	}
	assert.Equal(t, []string{"x", "  y", "\tz"}, e.Texts())
}

func TestIndentSelectionThreeLines(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	e.SetSelection(Pos(0, 1), Pos(2, 1))

	require.NoError(t, e.IndentSelection(true))
	assert.Equal(t, []string{"    a", "    b", "    c"}, e.Texts())
	assert.Equal(t, Selection{Anchor: Pos(0, 0), Head: Pos(2, 5)}, e.Selection())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, []string{"a", "b", "c"}, e.Texts())
	assert.Equal(t, Selection{Anchor: Pos(0, 1), Head: Pos(2, 1)}, e.Selection())
}

func TestUnindentSelection(t *testing.T) {
	e := newEditor(t, "    a\n\tb\n  c\nd")
	e.SetSelection(Pos(2, 0), Pos(0, 0))

	require.NoError(t, e.IndentSelection(false))
	assert.Equal(t, []string{"a", "b", "c", "d"}, e.Texts())
	assert.Equal(t, Selection{Anchor: Pos(0, 0), Head: Pos(2, 1)}, e.Selection())
}

func TestTab(t *testing.T) {
	e := newEditor(t, "ab")
	e.SetCursorPosition(0, 2)

	require.NoError(t, e.Tab())
	assert.Equal(t, "ab  ", e.Text())
	assert.Equal(t, Pos(0, 4), e.CursorPosition())

	require.NoError(t, e.Tab())
	assert.Equal(t, "ab      ", e.Text())

	require.NoError(t, e.SetText("x"))
	e.SetUseTabs(true)
	e.SetCursorPosition(0, 1)
	require.NoError(t, e.Tab())
	assert.Equal(t, "x\t", e.Text())
}

func TestTabWithSelectionIndents(t *testing.T) {
	e := newEditor(t, "a\nb")
	e.SetSelection(Pos(0, 0), Pos(1, 1))
	require.NoError(t, e.Tab())
	assert.Equal(t, []string{"    a", "    b"}, e.Texts())
}

func TestBackspaceUnindent(t *testing.T) {
	e := newEditor(t, "    foo")
	e.SetCursorPosition(0, 4)
	require.NoError(t, e.Backspace())
	assert.Equal(t, "foo", e.Text())
	assert.Equal(t, Pos(0, 0), e.CursorPosition())

	require.NoError(t, e.SetText("      foo"))
	e.SetCursorPosition(0, 6)
	require.NoError(t, e.Backspace())
	assert.Equal(t, "    foo", e.Text())
	assert.Equal(t, Pos(0, 4), e.CursorPosition())
}

func TestBackspaceDeletes(t *testing.T) {
	e := newEditor(t, "ab\ncd")
	e.SetCursorPosition(0, 2)
	require.NoError(t, e.Backspace())
	assert.Equal(t, []string{"a", "cd"}, e.Texts())

	e.SetCursorPosition(1, 0)
	require.NoError(t, e.Backspace())
	assert.Equal(t, []string{"acd"}, e.Texts())
	assert.Equal(t, Pos(0, 1), e.CursorPosition())

	e.SetSelection(Pos(0, 0), Pos(0, 2))
	require.NoError(t, e.Backspace())
	assert.Equal(t, "d", e.Text())

	e.SetCursorPosition(0, 0)
	require.NoError(t, e.Backspace())
	assert.Equal(t, "d", e.Text())
}

func TestHome(t *testing.T) {
	e := newEditor(t, "    foo")
	e.SetCursorPosition(0, 6)

	e.Home(false)
	assert.Equal(t, Pos(0, 4), e.CursorPosition())
	e.Home(false)
	assert.Equal(t, Pos(0, 0), e.CursorPosition())
	e.Home(false)
	assert.Equal(t, Pos(0, 4), e.CursorPosition())

	e.SetCursorPosition(0, 6)
	e.Home(true)
	assert.Equal(t, Selection{Anchor: Pos(0, 6), Head: Pos(0, 4)}, e.Selection())
}

func TestInsertNewlineCopiesIndent(t *testing.T) {
	e := newEditor(t, "    foo")
	e.SetCursorPosition(0, 7)

	require.NoError(t, e.InsertNewline())
	assert.Equal(t, []string{"    foo", "    "}, e.Texts())
	assert.Equal(t, Pos(1, 4), e.CursorPosition())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, "    foo", e.Text())
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	e := newEditor(t, "  ab")
	e.SetCursorPosition(0, 3)
	require.NoError(t, e.InsertNewline())
	assert.Equal(t, []string{"  a", "  b"}, e.Texts())
	assert.Equal(t, Pos(1, 2), e.CursorPosition())
}

func TestBracketsPolicyThroughEditor(t *testing.T) {
	e := newEditor(t, "if x {")
	require.NoError(t, e.SetPolicy(indent.PolicyBrackets))
	e.SetCursorPosition(0, 6)

	require.NoError(t, e.InsertNewline())
	assert.Equal(t, []string{"if x {", "    "}, e.Texts())

	steps := e.UndoCount()
	require.NoError(t, e.TypeText("}"))
	assert.Equal(t, []string{"if x {", "}"}, e.Texts())
	assert.Equal(t, Pos(1, 1), e.CursorPosition())
	assert.Equal(t, steps+1, e.UndoCount())
}

func TestAutoIndentIgnoresBracketInComment(t *testing.T) {
	e := newEditor(t, "    x := 1 // {", WithLanguage("go"))
	assert.Equal(t, indent.PolicyBrackets, e.Policy().Name())
	e.SetCursorPosition(0, 15)
	require.NoError(t, e.InsertNewline())
	assert.Equal(t, "    ", e.Texts()[1])

	require.NoError(t, e.SetText("    if x {"))
	e.SetCursorPosition(0, 10)
	require.NoError(t, e.InsertNewline())
	assert.Equal(t, "        ", e.Texts()[1])
}

func TestAutoIndentSelection(t *testing.T) {
	e := newEditor(t, "a\n  b\n\t\tc")
	e.SetSelection(Pos(0, 0), Pos(2, 0))
	require.NoError(t, e.AutoIndentSelection())
	assert.Equal(t, []string{"a", "b", "c"}, e.Texts())
	assert.Equal(t, 1, e.UndoCount())
}

func TestSetIndentSettings(t *testing.T) {
	e := newEditor(t, "")
	err := e.SetIndentWidth(0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, 4, e.IndentWidth())

	require.NoError(t, e.SetIndentWidth(2))
	assert.Equal(t, "  ", e.IndentUnit())
	assert.Equal(t, []int{2, 4, 6}, e.TabStops(7))

	e.SetUseTabs(true)
	assert.Equal(t, "\t", e.IndentUnit())

	require.NoError(t, e.SetText("\tx"))
	col, err := e.VisualColumn(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, col)
}

// ============================================================================
// Line Commands
// ============================================================================

func TestMoveLines(t *testing.T) {
	e := newEditor(t, "a\nb\nc\nd")
	e.SetCursorPosition(1, 0)

	require.NoError(t, e.MoveLinesDown())
	assert.Equal(t, []string{"a", "c", "b", "d"}, e.Texts())
	assert.Equal(t, Selection{Anchor: Pos(2, 0), Head: Pos(2, 1)}, e.Selection())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.MoveLinesUp())
	assert.Equal(t, []string{"a", "b", "c", "d"}, e.Texts())
	assert.Equal(t, Selection{Anchor: Pos(1, 0), Head: Pos(1, 1)}, e.Selection())

	e.SetSelection(Pos(0, 0), Pos(1, 0))
	require.NoError(t, e.MoveLinesUp())
	assert.Equal(t, []string{"a", "b", "c", "d"}, e.Texts(), "top block cannot move up")

	e.SetCursorPosition(3, 0)
	require.NoError(t, e.MoveLinesDown())
	assert.Equal(t, 2, e.UndoCount())
}

func TestMoveLinesClearsMarks(t *testing.T) {
	e := newEditor(t, "a\nb\nc\nd")
	_, _ = e.ToggleMarkAt(1)
	_, _ = e.ToggleMarkAt(3)
	e.SetCursorPosition(1, 0)

	require.NoError(t, e.MoveLinesDown())
	assert.Equal(t, []int{3}, e.MarkedLines())

	require.NoError(t, e.Undo())
	assert.Equal(t, []string{"a", "b", "c", "d"}, e.Texts())
	assert.Equal(t, []int{3}, e.MarkedLines())
}

func TestDeleteLines(t *testing.T) {
	e := newEditor(t, "a\nb\nc\nd")
	e.SetSelection(Pos(1, 1), Pos(2, 0))
	require.NoError(t, e.DeleteLines())
	assert.Equal(t, []string{"a", "d"}, e.Texts())
	assert.Equal(t, Pos(1, 0), e.CursorPosition())
}

func TestDuplicate(t *testing.T) {
	e := newEditor(t, "a\nb")
	require.NoError(t, e.Duplicate())
	assert.Equal(t, []string{"a", "a", "b"}, e.Texts())
	assert.Equal(t, Pos(0, 0), e.CursorPosition())

	require.NoError(t, e.SetText("hello"))
	e.SetSelection(Pos(0, 0), Pos(0, 2))
	require.NoError(t, e.Duplicate())
	assert.Equal(t, "hehello", e.Text())
	assert.Equal(t, Selection{Anchor: Pos(0, 0), Head: Pos(0, 2)}, e.Selection())

	require.NoError(t, e.Undo())
	assert.Equal(t, "hello", e.Text())
}

// ============================================================================
// Bookmarks
// ============================================================================

func TestMarksFollowLines(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	_, err := e.ToggleMarkAt(2)
	require.NoError(t, err)

	require.NoError(t, e.InsertLine(0, "z"))
	assert.Equal(t, []int{3}, e.MarkedLines())

	e.SetCursorPosition(0, 0)
	assert.True(t, e.NextMark())
	assert.Equal(t, Pos(3, 0), e.CursorPosition())
	assert.False(t, e.NextMark(), "scan must not wrap")
	assert.False(t, e.PrevMark())
	assert.Equal(t, Pos(3, 0), e.CursorPosition())
}

func TestToggleMarkIdempotence(t *testing.T) {
	e := newEditor(t, "a\nb")
	e.SetCursorPosition(1, 0)
	assert.True(t, e.ToggleMark())
	assert.False(t, e.ToggleMark())
	assert.False(t, e.IsMarked(1))

	_, err := e.ToggleMarkAt(7)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestMarkDiscardedWithDeletedLine(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	_, _ = e.ToggleMarkAt(1)
	require.NoError(t, e.DeleteLine(1))
	assert.Empty(t, e.MarkedLines())

	require.NoError(t, e.Undo())
	assert.Equal(t, []string{"a", "b", "c"}, e.Texts())
	assert.False(t, e.IsMarked(1))
}

func TestClearMarks(t *testing.T) {
	e := newEditor(t, "a\nb\nc")
	for i := 0; i < 3; i++ {
		_, _ = e.ToggleMarkAt(i)
	}
	require.NoError(t, e.ClearMarks(0, 1))
	assert.Equal(t, []int{2}, e.MarkedLines())
	assert.ErrorIs(t, e.ClearMarks(2, 5), ErrOutOfBounds)

	e.ClearAllMarks()
	assert.Empty(t, e.MarkedLines())
}

// ============================================================================
// Line Endings
// ============================================================================

func TestSetEOL(t *testing.T) {
	e := newEditor(t, "a\nb")
	require.NoError(t, e.SetEOL("\r\n"))
	assert.Equal(t, "a\r\nb", e.TextForSaving())

	err := e.SetEOL("x")
	require.ErrorIs(t, err, ErrInvalidConfig)
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "eol", ce.Setting)
	assert.Equal(t, LineEndingCRLF, e.EOL())
}

// ============================================================================
// Syntax and Completion
// ============================================================================

func TestSyntaxQueries(t *testing.T) {
	e := newEditor(t, "x = 1  # note")
	assert.True(t, e.IsCode(0, 8))
	assert.False(t, e.IsComment(0, 8))

	e.SetLanguage("python")
	assert.Equal(t, "Python", e.Language())
	assert.Equal(t, indent.PolicyPython, e.Policy().Name())
	assert.True(t, e.IsComment(0, 8))
	assert.False(t, e.IsCode(0, 8))
	assert.True(t, e.IsCode(0, 0))
	assert.False(t, e.IsBlockComment(0, 8))
	assert.False(t, e.IsHereDoc(0, 8))

	e.SetLanguage("no-such-language")
	assert.Equal(t, indent.PolicyNormal, e.Policy().Name())
	assert.False(t, e.IsComment(0, 8))
}

func TestDetectLanguageRules(t *testing.T) {
	reg := indent.NewDefaultRegistry()
	require.NoError(t, reg.AddRule("SConstruct", indent.PolicyPython))
	e := newEditor(t, "package main\n", WithRegistry(reg))

	assert.Equal(t, "Go", e.DetectLanguage("main.go"))
	assert.Equal(t, indent.PolicyBrackets, e.Policy().Name())

	e.DetectLanguage("SConstruct")
	assert.Equal(t, indent.PolicyPython, e.Policy().Name())
}

func TestSetPolicyUnknown(t *testing.T) {
	e := newEditor(t, "")
	assert.ErrorIs(t, e.SetPolicy("nope"), ErrPolicyNotFound)
	assert.Equal(t, indent.PolicyNormal, e.Policy().Name())
}

func TestCompletionExample(t *testing.T) {
	e := newEditor(t, "hello help held")
	e.SetCursorPosition(0, 2)

	assert.Equal(t, "he", e.WordBeforeCursor())
	assert.Equal(t, []string{"held", "hello", "help"}, e.Candidates("he"))

	word, got := e.Complete()
	assert.Equal(t, "he", word)
	assert.Equal(t, []string{"held", "hello", "help"}, got)

	_, got = e.Suggest()
	assert.Empty(t, got, "two characters are below the default threshold")
	assert.Len(t, e.WordSet(), 3)
}

func TestCompletionThresholdOption(t *testing.T) {
	e := newEditor(t, "hello help held", WithCompletionThreshold(2))
	e.SetCursorPosition(0, 2)
	_, got := e.Suggest()
	assert.Equal(t, []string{"held", "hello", "help"}, got)

	e.Completer().SetEnabled(false)
	_, got = e.Suggest()
	assert.Empty(t, got)

	word, got := e.Complete()
	assert.Equal(t, "he", word)
	assert.Len(t, got, 3)
}

// ============================================================================
// Settings
// ============================================================================

func TestApplySettings(t *testing.T) {
	e := newEditor(t, "")
	s := config.Default()
	s.Indent.Width = 2
	s.Indent.UseTabs = true
	s.EOL = "crlf"
	s.Completion.Threshold = 1

	require.NoError(t, e.ApplySettings(s))
	assert.Equal(t, 2, e.IndentWidth())
	assert.True(t, e.UseTabs())
	assert.Equal(t, LineEndingCRLF, e.EOL())
	assert.Equal(t, 1, e.Completer().Threshold())

	s.Indent.Width = 0
	assert.ErrorIs(t, e.ApplySettings(s), ErrInvalidConfig)
	assert.Equal(t, 2, e.IndentWidth())
}

// ============================================================================
// Notifications
// ============================================================================

func TestNotifications(t *testing.T) {
	e := newEditor(t, "a")
	got := collect(t, e)

	require.NoError(t, e.AppendLine("b"))
	_, _ = e.ToggleMarkAt(1)
	require.NoError(t, e.DeleteLine(1))
	require.NoError(t, e.SetIndentWidth(2))
	require.NoError(t, e.SetIndentWidth(2))
	require.NoError(t, e.SetEOL("\r"))
	e.SetLanguage("python")
	e.SetCursorPosition(0, 1)

	assert.Equal(t, []events.LineCountChanged{{Old: 1, New: 2}, {Old: 2, New: 1}},
		payloads[events.LineCountChanged](*got))
	assert.Equal(t, []events.MarksChanged{{Lines: []int{1}}, {Lines: nil}},
		payloads[events.MarksChanged](*got))
	assert.Equal(t, []events.IndentChanged{{Width: 2, UseTabs: false}},
		payloads[events.IndentChanged](*got))
	assert.Equal(t, []events.EOLChanged{{Old: LineEndingLF, New: LineEndingCR}},
		payloads[events.EOLChanged](*got))
	assert.Equal(t, []events.LanguageChanged{{Language: "Python", Policy: indent.PolicyPython}},
		payloads[events.LanguageChanged](*got))

	sel := payloads[events.SelectionChanged](*got)
	require.NotEmpty(t, sel)
	assert.Equal(t, Pos(0, 1), sel[len(sel)-1].Selection.Head)
	assert.Equal(t, "Move cursor", sel[len(sel)-1].Command)
}

func TestUndoPublishesLineCount(t *testing.T) {
	e := newEditor(t, "a")
	require.NoError(t, e.AppendLine("b"))
	got := collect(t, e)

	require.NoError(t, e.Undo())
	assert.Equal(t, []events.LineCountChanged{{Old: 2, New: 1}}, payloads[events.LineCountChanged](*got))
}

func TestFailingSubscriberDoesNotFailEdit(t *testing.T) {
	e := newEditor(t, "a")
	_, err := e.Bus().SubscribeFunc(events.TopicLineCountChanged, func(context.Context, any) error {
		return errors.New("renderer down")
	})
	require.NoError(t, err)

	require.NoError(t, e.AppendLine("b"))
	assert.Equal(t, 2, e.Len())
	_, failures := e.Bus().Stats()
	assert.Equal(t, uint64(1), failures)
}

func TestWithSettings(t *testing.T) {
	s := config.Default()
	s.Indent.UseTabs = true
	s.EOL = "cr"
	s.Completion.Threshold = 2
	s.Languages = []config.LanguageRule{{Pattern: "*.tmpl", Policy: indent.PolicyBrackets}}

	e := newEditor(t, "hello help", WithSettings(s))
	assert.Equal(t, "\t", e.IndentUnit())
	assert.Equal(t, LineEndingCR, e.EOL())
	assert.Equal(t, 2, e.Completer().Threshold())

	e.DetectLanguage("page.tmpl")
	assert.Equal(t, indent.PolicyBrackets, e.Policy().Name())

	s.Indent.Width = -1
	_, err := New(WithSettings(s))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
