package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dshills/linecore/internal/completion"
	"github.com/dshills/linecore/internal/engine/buffer"
	"github.com/dshills/linecore/internal/engine/cursor"
	"github.com/dshills/linecore/internal/engine/history"
	"github.com/dshills/linecore/internal/engine/marks"
	"github.com/dshills/linecore/internal/event"
	"github.com/dshills/linecore/internal/event/events"
	"github.com/dshills/linecore/internal/event/topic"
	"github.com/dshills/linecore/internal/indent"
	"github.com/dshills/linecore/internal/syntax"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line and column in the document.
	Position = buffer.Position

	// Selection is an anchor and a head position.
	Selection = cursor.Selection

	// LineEnding specifies the external line ending style.
	LineEnding = buffer.LineEnding

	// BoundsError reports an index, column, or offset outside its range.
	BoundsError = buffer.BoundsError

	// ConfigError reports a rejected setting value.
	ConfigError = buffer.ConfigError

	// TypeMismatchError reports a non-text entry in a bulk replacement.
	TypeMismatchError = buffer.TypeMismatchError
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Pos is shorthand for Position{Line: line, Column: col}.
func Pos(line, col int) Position {
	return buffer.Pos(line, col)
}

// eventSource identifies the engine in published event metadata.
const eventSource = "engine"

// Editor is the editing core: a line buffer with coordinate mapping,
// one selection, grouped undo history, indentation commands, bookmarks
// and completion.
//
// Every mutating method is one undo step unless it runs inside an open
// transaction, in which case it joins that transaction's step.
//
// Editor is not safe for concurrent use. All calls must come from the
// goroutine that owns it.
type Editor struct {
	// Core components
	buf     *buffer.Buffer
	mapper  *buffer.Mapper
	history *history.History
	marks   *marks.Tracker
	sel     cursor.Selection

	// Indentation
	indent   indent.Config
	registry *indent.Registry
	policy   indent.Policy
	language string

	// Collaborators
	classifier syntax.Classifier
	completer  *completion.Engine
	bus        *event.Bus
	logger     *slog.Logger

	// Configuration
	eol            buffer.LineEnding
	maxUndoEntries int

	// Initialization
	initContent    string
	initLanguage   string
	completionOpts []completion.Option
	initErr        error
}

// New creates an Editor with the given options.
// It fails with a ConfigError when an option carries an invalid value.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		indent:         indent.DefaultConfig(),
		eol:            buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(e)
	}

	if e.initErr != nil {
		return nil, e.initErr
	}
	if err := e.indent.Validate(); err != nil {
		return nil, err
	}

	e.buf = buffer.NewBufferFromString(e.initContent)
	e.mapper = buffer.NewMapper(e.buf)
	e.history = history.NewHistory(e.maxUndoEntries)
	e.marks = marks.NewTracker(e.buf)

	if e.registry == nil {
		e.registry = indent.NewDefaultRegistry()
	}
	if e.policy == nil {
		e.policy = e.registry.ForLanguage(indent.PolicyNormal)
	}
	if e.classifier == nil {
		e.classifier = syntax.NullClassifier{}
	}
	if e.bus == nil {
		e.bus = event.NewBus(event.WithLogger(e.logger))
	}
	if e.completer == nil {
		c, err := completion.New(e.completionOpts...)
		if err != nil {
			return nil, err
		}
		e.completer = c
	}
	if e.initLanguage != "" {
		e.SetLanguage(e.initLanguage)
	}
	return e, nil
}

// ============================================================================
// Change Pipeline
// ============================================================================

// historyTarget replays undo and redo through the editor, so replayed
// changes reach the mark tracker and subscribers like fresh edits do.
type historyTarget struct {
	e *Editor
}

func (t historyTarget) Apply(c buffer.Change) error {
	if err := t.e.buf.Apply(c); err != nil {
		return err
	}
	t.e.changed(c)
	return nil
}

func (t historyTarget) SetSelection(sel Selection) {
	t.e.sel = sel.Clamp(t.e.mapper)
}

// apply records the result of a line-level buffer edit. The selection
// follows the change.
func (e *Editor) apply(name string, c buffer.Change, err error) error {
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return nil
	}
	e.record(name, c, cursor.TransformSelection(e.sel, c))
	return nil
}

// record pushes an applied change with the selection it leaves behind.
func (e *Editor) record(name string, c buffer.Change, after Selection) {
	before := e.sel
	after = after.Clamp(e.mapper)
	e.sel = after
	e.history.Push(history.NewOperation(name, c, before, after))
	e.changed(c)
	if after != before {
		publish(e, events.TopicSelectionChanged, events.SelectionChanged{Selection: after, Command: name})
	}
}

// changed notifies observers of an applied change.
func (e *Editor) changed(c buffer.Change) {
	if d := c.LineDelta(); d != 0 {
		n := e.buf.Len()
		publish(e, events.TopicLineCountChanged, events.LineCountChanged{Old: n - d, New: n})
	}
	if e.marks.Observe(c) {
		e.marksChanged()
	}
}

// publish sends a notification. Handler failures are logged by the bus
// and never fail the edit that caused them.
func publish[T any](e *Editor, t topic.Topic, payload T) {
	_ = e.bus.Publish(context.Background(), event.NewEvent(t, payload, eventSource))
}

// replaceRange replaces the characters between two valid positions with
// text in one primitive edit. Positions at or after start are shifted the
// way a document shifts a cursor it did not edit through: positions
// inside the replaced span move to the end of the new text.
func (e *Editor) replaceRange(name string, start, end Position, text string) error {
	if end.Before(start) {
		start, end = end, start
	}
	startOff, err := e.mapper.PositionToOffset(start)
	if err != nil {
		return err
	}
	endOff, err := e.mapper.PositionToOffset(end)
	if err != nil {
		return err
	}
	anchor, _ := e.mapper.PositionToOffset(e.sel.Anchor)
	head, _ := e.mapper.PositionToOffset(e.sel.Head)

	first, _ := e.buf.Get(start.Line)
	last, _ := e.buf.Get(end.Line)
	text = buffer.NormalizeLineEndings(text)
	joined := buffer.Slice(first, 0, start.Column) + text + buffer.Slice(last, end.Column, utf8.RuneCountInString(last))

	c, err := e.buf.Replace(start.Line, end.Line+1, buffer.SplitLines(joined))
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return nil
	}

	removed, inserted := endOff-startOff, utf8.RuneCountInString(text)
	shift := func(off int) Position {
		if off >= startOff {
			off = max(off-removed, startOff) + inserted
		}
		p, _ := e.mapper.OffsetToPosition(e.mapper.ClampOffset(off))
		return p
	}
	e.record(name, c, cursor.NewSelection(shift(anchor), shift(head)))
	return nil
}

// ============================================================================
// Line Operations
// ============================================================================

// Len returns the number of lines. It is always at least 1.
func (e *Editor) Len() int {
	return e.buf.Len()
}

// Line returns the text of the line at index. Negative indices count
// from the end.
func (e *Editor) Line(index int) (string, error) {
	return e.buf.Get(index)
}

// Lines returns copies of the texts of lines [start, end).
func (e *Editor) Lines(start, end int) ([]string, error) {
	return e.buf.GetRange(start, end)
}

// Texts returns copies of all line texts.
func (e *Editor) Texts() []string {
	return e.buf.Texts()
}

// SetLine replaces the text of the line at index.
func (e *Editor) SetLine(index int, text string) error {
	c, err := e.buf.Set(index, text)
	return e.apply("Set line", c, err)
}

// SetRange replaces lines [start, end) with items, which must all be
// strings. A non-string entry fails with a TypeMismatchError before
// anything is modified.
func (e *Editor) SetRange(start, end int, items []any) error {
	c, err := e.buf.SetRangeAny(start, end, items)
	return e.apply("Set lines", c, err)
}

// SetLines replaces every line with items.
func (e *Editor) SetLines(items []any) error {
	return e.SetRange(0, e.buf.Len(), items)
}

// InsertLine inserts a line before index. An index equal to Len appends.
func (e *Editor) InsertLine(index int, text string) error {
	c, err := e.buf.Insert(index, text)
	return e.apply("Insert line", c, err)
}

// AppendLine adds a line at the end of the document.
func (e *Editor) AppendLine(text string) error {
	c, err := e.buf.Append(text)
	return e.apply("Append line", c, err)
}

// DeleteLine removes the line at index.
func (e *Editor) DeleteLine(index int) error {
	c, err := e.buf.Delete(index)
	return e.apply("Delete line", c, err)
}

// DeleteRange removes lines [start, end). Removing every line leaves one
// empty line.
func (e *Editor) DeleteRange(start, end int) error {
	c, err := e.buf.DeleteRange(start, end)
	return e.apply("Delete lines", c, err)
}

// resolveLine validates a possibly negative line index and returns it
// counted from the start, with the line's text.
func (e *Editor) resolveLine(line int) (int, string, error) {
	text, err := e.buf.Get(line)
	if err != nil {
		return 0, "", err
	}
	if line < 0 {
		line += e.buf.Len()
	}
	return line, text, nil
}

// Buffer returns the underlying buffer for read-only collaborators such
// as syntax classifiers. Mutating it directly bypasses undo history.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// ============================================================================
// Position Conversion
// ============================================================================

// ToAbsolute converts (line, col) to an absolute character offset.
func (e *Editor) ToAbsolute(line, col int) (int, error) {
	return e.mapper.ToAbsolute(line, col)
}

// ToLineCol converts an absolute character offset to (line, col).
func (e *Editor) ToLineCol(offset int) (line, col int, err error) {
	return e.mapper.ToLineCol(offset)
}

// TotalLength returns the document length in characters, one per line
// terminator included.
func (e *Editor) TotalLength() int {
	return e.mapper.TotalLength()
}

// ============================================================================
// Text Operations
// ============================================================================

// Text returns the document with lines joined by "\n".
func (e *Editor) Text() string {
	return e.buf.Text()
}

// SetText replaces the whole document as one undo step and moves the
// cursor to the start. Every line is new afterwards, so bookmarks are
// dropped.
func (e *Editor) SetText(text string) error {
	c := e.buf.Reset(buffer.SplitLines(text))
	if !c.IsEmpty() {
		e.record("Set text", c, cursor.NewCursorSelection(Pos(0, 0)))
	}
	return nil
}

// TextForSaving returns the document joined with the external line
// ending.
func (e *Editor) TextForSaving() string {
	return strings.Join(e.buf.Texts(), e.eol.Sequence())
}

// EOL returns the external line ending.
func (e *Editor) EOL() LineEnding {
	return e.eol
}

// SetEOL sets the external line ending from its sequence. Only "\n",
// "\r\n" and "\r" are accepted; anything else is a ConfigError.
func (e *Editor) SetEOL(seq string) error {
	le, err := buffer.ParseLineEnding(seq)
	if err != nil {
		return err
	}
	e.SetLineEnding(le)
	return nil
}

// SetLineEnding sets the external line ending.
func (e *Editor) SetLineEnding(le LineEnding) {
	if le == e.eol {
		return
	}
	old := e.eol
	e.eol = le
	publish(e, events.TopicEOLChanged, events.EOLChanged{Old: old, New: le})
}

// ReplaceText replaces length characters starting at an absolute offset.
// The whole span must lie inside the document.
func (e *Editor) ReplaceText(offset, length int, text string) error {
	total := e.mapper.TotalLength()
	if offset < 0 || offset > total {
		return &BoundsError{Op: "replaceText", Kind: "offset", Value: offset, Min: 0, Max: total}
	}
	if length < 0 || offset+length > total {
		return &BoundsError{Op: "replaceText", Kind: "offset", Value: offset + length, Min: offset, Max: total}
	}
	start, _ := e.mapper.OffsetToPosition(offset)
	end, _ := e.mapper.OffsetToPosition(offset + length)
	return e.replaceRange("Replace", start, end, text)
}

// InsertText inserts text at an absolute offset.
func (e *Editor) InsertText(offset int, text string) error {
	return e.ReplaceText(offset, 0, text)
}

// DeleteText removes length characters starting at an absolute offset.
func (e *Editor) DeleteText(offset, length int) error {
	return e.ReplaceText(offset, length, "")
}

// ReplaceRange replaces the text between two positions. Either may come
// first; both must be valid.
func (e *Editor) ReplaceRange(start, end Position, text string) error {
	return e.replaceRange("Replace", start, end, text)
}

// ============================================================================
// Cursor Operations
// ============================================================================

// CursorPosition returns the cursor (selection head).
func (e *Editor) CursorPosition() Position {
	return e.sel.Head
}

// SetCursorPosition moves the cursor and clears the selection.
// Out-of-range values are clamped instead of failing.
func (e *Editor) SetCursorPosition(line, col int) {
	e.setSelection(cursor.NewCursorSelection(Pos(line, col)), "Move cursor")
}

// SetCursorToTextStart moves the cursor to the first non-whitespace
// column of line. The line is clamped.
func (e *Editor) SetCursorToTextStart(line int) {
	p := e.mapper.Clamp(Pos(line, 0))
	text, _ := e.buf.Get(p.Line)
	p.Column = indent.FirstNonWhitespace(text)
	e.setSelection(cursor.NewCursorSelection(p), "Move cursor")
}

// AbsCursorPosition returns the cursor as an absolute offset.
func (e *Editor) AbsCursorPosition() int {
	off, _ := e.mapper.PositionToOffset(e.sel.Head)
	return off
}

// SetAbsCursorPosition moves the cursor to an absolute offset, clamped to
// the document.
func (e *Editor) SetAbsCursorPosition(offset int) {
	p, _ := e.mapper.OffsetToPosition(e.mapper.ClampOffset(offset))
	e.setSelection(cursor.NewCursorSelection(p), "Move cursor")
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.sel
}

// SetSelection selects from anchor to head. Both are clamped.
func (e *Editor) SetSelection(anchor, head Position) {
	e.setSelection(cursor.NewSelection(anchor, head), "Select")
}

// SelectLines selects whole lines from the start of first to the end of
// last.
func (e *Editor) SelectLines(first, last int) error {
	n := e.buf.Len()
	if first < 0 || first >= n {
		return &BoundsError{Op: "selectLines", Kind: "line", Value: first, Min: 0, Max: n - 1}
	}
	if last < first || last >= n {
		return &BoundsError{Op: "selectLines", Kind: "range", Value: last, Min: first, Max: n - 1}
	}
	e.selectLines(first, last, "Select lines")
	return nil
}

func (e *Editor) selectLines(first, last int, command string) {
	end, _ := e.buf.LineLen(last)
	e.setSelection(cursor.NewSelection(Pos(first, 0), Pos(last, end)), command)
}

// SelectedText returns the selected text, with "\n" between lines.
func (e *Editor) SelectedText() string {
	if e.sel.IsEmpty() {
		return ""
	}
	start, end := e.sel.Start(), e.sel.End()
	texts, _ := e.buf.GetRange(start.Line, end.Line+1)
	last := len(texts) - 1
	texts[last] = buffer.Slice(texts[last], 0, end.Column)
	texts[0] = buffer.Slice(texts[0], start.Column, utf8.RuneCountInString(texts[0]))
	return strings.Join(texts, "\n")
}

// ReplaceSelection replaces the selected text, or inserts at the cursor
// when nothing is selected. The cursor ends after the new text.
func (e *Editor) ReplaceSelection(text string) error {
	return e.replaceRange("Replace selection", e.sel.Start(), e.sel.End(), text)
}

// setSelection clamps and installs a selection. Inside a transaction the
// change is recorded so undo and redo restore it.
func (e *Editor) setSelection(sel Selection, command string) {
	sel = sel.Clamp(e.mapper)
	if sel == e.sel {
		return
	}
	if e.history.IsGrouping() {
		e.history.Push(history.NewOperation(command, buffer.Change{}, e.sel, sel))
	}
	e.sel = sel
	publish(e, events.TopicSelectionChanged, events.SelectionChanged{Selection: sel, Command: command})
}

// ============================================================================
// Transactions
// ============================================================================

// Scope is an open transaction. End closes it; further calls do nothing.
type Scope struct {
	e     *Editor
	group *history.GroupScope
}

// Begin opens a transaction. Transactions nest: only the outermost
// Begin/End pair opens and closes an undo step, and every edit made in
// between is undone and redone together.
//
//	defer e.Begin("Reformat").End()
func (e *Editor) Begin(name string) *Scope {
	if !e.history.IsGrouping() {
		e.logger.Debug("transaction open", "name", name)
	}
	return &Scope{e: e, group: e.history.GroupScope(name)}
}

// End closes the transaction.
func (s *Scope) End() {
	if !s.group.Active() {
		return
	}
	s.group.End()
	if !s.e.history.IsGrouping() {
		s.e.logger.Debug("transaction closed", "undo_steps", s.e.history.UndoCount())
	}
}

// Transaction runs fn inside a transaction that is closed however fn
// exits. Edits made before an error stay applied.
func (e *Editor) Transaction(name string, fn func() error) error {
	defer e.Begin(name).End()
	return fn()
}

// TransactionDepth returns the number of open transaction levels.
func (e *Editor) TransactionDepth() int {
	return e.history.Depth()
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverts the last undo step. It fails with ErrNothingToUndo, or
// with ErrTransactionOpen while a transaction is open.
func (e *Editor) Undo() error {
	info, _ := e.history.PeekUndo()
	before := e.sel
	if err := e.history.Undo(historyTarget{e}); err != nil {
		return err
	}
	e.logger.Debug("undo", "operation", info.Description)
	if e.sel != before {
		publish(e, events.TopicSelectionChanged, events.SelectionChanged{Selection: e.sel, Command: "Undo"})
	}
	return nil
}

// Redo re-applies the last undone step.
func (e *Editor) Redo() error {
	before := e.sel
	if err := e.history.Redo(historyTarget{e}); err != nil {
		return err
	}
	info, _ := e.history.PeekUndo()
	e.logger.Debug("redo", "operation", info.Description)
	if e.sel != before {
		publish(e, events.TopicSelectionChanged, events.SelectionChanged{Selection: e.sel, Command: "Redo"})
	}
	return nil
}

// CanUndo returns true if there is a step to undo.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there is a step to redo.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo steps.
func (e *Editor) UndoCount() int {
	return e.history.UndoCount()
}

// ClearHistory drops every undo and redo step.
func (e *Editor) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// Notifications
// ============================================================================

// Bus returns the event bus change notifications are published on.
func (e *Editor) Bus() *event.Bus {
	return e.bus
}

// Logger returns the editor's logger.
func (e *Editor) Logger() *slog.Logger {
	return e.logger
}
