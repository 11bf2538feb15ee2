package engine

import (
	"unicode/utf8"

	"github.com/dshills/linecore/internal/engine/cursor"
	"github.com/dshills/linecore/internal/event/events"
	"github.com/dshills/linecore/internal/indent"
)

// ============================================================================
// Indentation Settings
// ============================================================================

// IndentWidth returns the indent width.
func (e *Editor) IndentWidth() int {
	return e.indent.Width
}

// UseTabs reports whether the indent unit is a tab.
func (e *Editor) UseTabs() bool {
	return e.indent.UseTabs
}

// IndentConfig returns the indentation settings.
func (e *Editor) IndentConfig() indent.Config {
	return e.indent
}

// IndentUnit returns one level of indentation.
func (e *Editor) IndentUnit() string {
	return e.indent.Unit()
}

// SetIndentWidth sets the indent width. A width that is not positive is
// a ConfigError.
func (e *Editor) SetIndentWidth(width int) error {
	cfg := e.indent
	cfg.Width = width
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.setIndent(cfg)
	return nil
}

// SetUseTabs selects tabs or spaces as the indent unit.
func (e *Editor) SetUseTabs(useTabs bool) {
	cfg := e.indent
	cfg.UseTabs = useTabs
	e.setIndent(cfg)
}

func (e *Editor) setIndent(cfg indent.Config) {
	if cfg == e.indent {
		return
	}
	e.indent = cfg
	publish(e, events.TopicIndentChanged, events.IndentChanged{Width: cfg.Width, UseTabs: cfg.UseTabs})
}

// TabStops returns the tab stop columns up to limit for the current width.
func (e *Editor) TabStops(limit int) []int {
	return indent.TabStops(e.indent.Width, limit)
}

// VisualColumn returns the display column of (line, col), expanding tabs
// to the indent width.
func (e *Editor) VisualColumn(line, col int) (int, error) {
	if _, err := e.mapper.ToAbsolute(line, col); err != nil {
		return 0, err
	}
	text, _ := e.buf.Get(line)
	return indent.VisualColumn(text, col, e.indent.Width), nil
}

// ============================================================================
// Indentation Commands
// ============================================================================

// IndentLine inserts one indent unit at the start of line.
func (e *Editor) IndentLine(line int) error {
	line, _, err := e.resolveLine(line)
	if err != nil {
		return err
	}
	return e.replaceRange("Indent", Pos(line, 0), Pos(line, 0), e.indent.Unit())
}

// UnindentLine removes at most one indent unit from the start of line:
// the full unit if present, else one tab, else up to width spaces.
func (e *Editor) UnindentLine(line int) error {
	line, text, err := e.resolveLine(line)
	if err != nil {
		return err
	}
	n := indent.UnindentCount(text, e.indent)
	if n == 0 {
		return nil
	}
	return e.replaceRange("Unindent", Pos(line, 0), Pos(line, n), "")
}

// IndentSelection indents or unindents every line the selection touches
// as one undo step, then selects from the start of the first of those
// lines to the end of the last.
func (e *Editor) IndentSelection(increase bool) error {
	name, fn := "Unindent", e.UnindentLine
	if increase {
		name, fn = "Indent", e.IndentLine
	}
	first, last := e.sel.Lines()
	return e.Transaction(name, func() error {
		for line := first; line <= last; line++ {
			if err := fn(line); err != nil {
				return err
			}
		}
		e.selectLines(first, last, name)
		return nil
	})
}

// Tab indents the selected lines when there is a selection. Otherwise it
// inserts a tab, or spaces up to the next multiple of the indent width.
func (e *Editor) Tab() error {
	if !e.sel.IsEmpty() {
		return e.IndentSelection(true)
	}
	p := e.sel.Head
	return e.replaceRange("Tab", p, p, indent.TabText(p.Column, e.indent))
}

// Backspace deletes backward. When the cursor sits at the end of the
// leading whitespace and that whitespace ends with a full indent unit it
// unindents instead: it removes the part of the indentation beyond the
// previous indent level.
func (e *Editor) Backspace() error {
	p := e.sel.Head
	text, _ := e.buf.Get(p.Line)
	if n := indent.BackspaceUnindent(text, p.Column, !e.sel.IsEmpty(), e.indent); n > 0 {
		return e.replaceRange("Unindent", Pos(p.Line, p.Column-n), p, "")
	}

	switch {
	case !e.sel.IsEmpty():
		return e.replaceRange("Delete", e.sel.Start(), e.sel.End(), "")
	case p.Column > 0:
		return e.replaceRange("Delete", Pos(p.Line, p.Column-1), p, "")
	case p.Line > 0:
		prev, _ := e.buf.LineLen(p.Line - 1)
		return e.replaceRange("Delete", Pos(p.Line-1, prev), p, "")
	}
	return nil
}

// Home moves the cursor to the first non-whitespace column, or to column
// 0 if it is already there. With extend the anchor stays where it is.
func (e *Editor) Home(extend bool) {
	p := e.sel.Head
	text, _ := e.buf.Get(p.Line)
	target := Pos(p.Line, indent.SmartHomeColumn(text, p.Column))
	if extend {
		e.setSelection(e.sel.Extend(target), "Home")
		return
	}
	e.setSelection(cursor.NewCursorSelection(target), "Home")
}

// ComputeIndent asks the indent policy what indentation line should have
// for trigger. ok is false when the policy leaves the line alone.
func (e *Editor) ComputeIndent(line int, trigger string) (string, bool, error) {
	line, _, err := e.resolveLine(line)
	if err != nil {
		return "", false, err
	}
	ctx := &indent.Context{
		Lines:      e.buf,
		Line:       line,
		Config:     e.indent,
		Classifier: e.classifier,
	}
	ind, ok := e.policy.ComputeIndent(ctx, trigger)
	return ind, ok, nil
}

// AutoIndentLine replaces the leading whitespace of line with the
// indentation computed by the policy, if it differs.
func (e *Editor) AutoIndentLine(line int, trigger string) error {
	line, text, err := e.resolveLine(line)
	if err != nil {
		return err
	}
	ind, ok, _ := e.ComputeIndent(line, trigger)
	current := indent.LeadingWhitespace(text)
	if !ok || ind == current {
		return nil
	}
	return e.replaceRange("Auto indent", Pos(line, 0), Pos(line, utf8.RuneCountInString(current)), ind)
}

// AutoIndentSelection re-indents every line the selection touches as one
// undo step.
func (e *Editor) AutoIndentSelection() error {
	first, last := e.sel.Lines()
	return e.Transaction("Auto indent", func() error {
		for line := first; line <= last; line++ {
			if err := e.AutoIndentLine(line, indent.TriggerReindent); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertNewline replaces the selection with a line break and indents the
// new line, as one undo step.
func (e *Editor) InsertNewline() error {
	return e.Transaction("New line", func() error {
		if err := e.ReplaceSelection("\n"); err != nil {
			return err
		}
		return e.AutoIndentLine(e.sel.Head.Line, indent.TriggerNewline)
	})
}

// TypeText replaces the selection with typed text. Typing one of the
// policy's trigger characters at the end of a line re-indents the line
// in the same undo step.
func (e *Editor) TypeText(text string) error {
	return e.Transaction("Type", func() error {
		if err := e.ReplaceSelection(text); err != nil {
			return err
		}
		if utf8.RuneCountInString(text) != 1 || !indent.IsTrigger(e.policy, text) {
			return nil
		}
		p := e.sel.Head
		if n, _ := e.buf.LineLen(p.Line); p.Column != n {
			return nil
		}
		return e.AutoIndentLine(p.Line, text)
	})
}
