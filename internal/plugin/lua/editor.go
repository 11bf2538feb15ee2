package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/linecore/internal/engine"
)

// EditorModule is the name of the global table OpenEditor installs.
const EditorModule = "editor"

// OpenEditor exposes e to scripts running in s as the global table
// "editor". Lines and columns are 0-based, as in the engine. Engine
// errors are raised as Lua errors.
//
//	editor.transaction("Comment out", function()
//	  for i = 0, editor.len() - 1 do
//	    editor.set_line(i, "-- " .. editor.line(i))
//	  end
//	end)
func OpenEditor(s *State, e *engine.Editor) {
	m := &editorModule{e: e}
	s.RegisterModule(EditorModule, map[string]lua.LGFunction{
		// lines
		"len":         m.len,
		"line":        m.line,
		"lines":       m.lines,
		"set_line":    m.setLine,
		"set_lines":   m.setLines,
		"insert_line": m.insertLine,
		"append_line": m.appendLine,
		"delete_line": m.deleteLine,
		"text":        m.text,
		"set_text":    m.setText,

		// cursor and selection
		"cursor":            m.cursor,
		"set_cursor":        m.setCursor,
		"select":            m.selectRange,
		"select_lines":      m.selectLines,
		"selected_text":     m.selectedText,
		"replace_selection": m.replaceSelection,

		// commands
		"type":         m.typeText,
		"newline":      m.newline,
		"tab":          m.tab,
		"backspace":    m.backspace,
		"home":         m.home,
		"indent":       m.indentSelection,
		"auto_indent":  m.autoIndent,
		"move_up":      m.moveUp,
		"move_down":    m.moveDown,
		"duplicate":    m.duplicate,
		"delete_lines": m.deleteLines,

		// marks
		"toggle_mark": m.toggleMark,
		"marks":       m.marks,
		"next_mark":   m.nextMark,
		"prev_mark":   m.prevMark,

		// history
		"undo":        m.undo,
		"redo":        m.redo,
		"transaction": m.transaction,

		// language and completion
		"language":     m.language,
		"set_language": m.setLanguage,
		"set_policy":   m.setPolicy,
		"is_code":      m.isCode,
		"is_comment":   m.isComment,
		"complete":     m.complete,
	})
}

type editorModule struct {
	e *engine.Editor
}

func raise(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

func (m *editorModule) len(L *lua.LState) int {
	L.Push(lua.LNumber(m.e.Len()))
	return 1
}

func (m *editorModule) line(L *lua.LState) int {
	text, err := m.e.Line(L.CheckInt(1))
	raise(L, err)
	L.Push(lua.LString(text))
	return 1
}

func (m *editorModule) lines(L *lua.LState) int {
	L.Push(StringsToTable(L, m.e.Texts()))
	return 1
}

func (m *editorModule) setLine(L *lua.LState) int {
	raise(L, m.e.SetLine(L.CheckInt(1), L.CheckString(2)))
	return 0
}

func (m *editorModule) setLines(L *lua.LState) int {
	raise(L, m.e.SetLines(ToSlice(L.CheckTable(1))))
	return 0
}

func (m *editorModule) insertLine(L *lua.LState) int {
	raise(L, m.e.InsertLine(L.CheckInt(1), L.CheckString(2)))
	return 0
}

func (m *editorModule) appendLine(L *lua.LState) int {
	raise(L, m.e.AppendLine(L.CheckString(1)))
	return 0
}

func (m *editorModule) deleteLine(L *lua.LState) int {
	raise(L, m.e.DeleteLine(L.CheckInt(1)))
	return 0
}

func (m *editorModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.e.Text()))
	return 1
}

func (m *editorModule) setText(L *lua.LState) int {
	raise(L, m.e.SetText(L.CheckString(1)))
	return 0
}

func (m *editorModule) cursor(L *lua.LState) int {
	p := m.e.CursorPosition()
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column))
	return 2
}

func (m *editorModule) setCursor(L *lua.LState) int {
	m.e.SetCursorPosition(L.CheckInt(1), L.CheckInt(2))
	return 0
}

func (m *editorModule) selectRange(L *lua.LState) int {
	m.e.SetSelection(
		engine.Pos(L.CheckInt(1), L.CheckInt(2)),
		engine.Pos(L.CheckInt(3), L.CheckInt(4)),
	)
	return 0
}

func (m *editorModule) selectLines(L *lua.LState) int {
	first := L.CheckInt(1)
	raise(L, m.e.SelectLines(first, L.OptInt(2, first)))
	return 0
}

func (m *editorModule) selectedText(L *lua.LState) int {
	L.Push(lua.LString(m.e.SelectedText()))
	return 1
}

func (m *editorModule) replaceSelection(L *lua.LState) int {
	raise(L, m.e.ReplaceSelection(L.CheckString(1)))
	return 0
}

func (m *editorModule) typeText(L *lua.LState) int {
	raise(L, m.e.TypeText(L.CheckString(1)))
	return 0
}

func (m *editorModule) newline(L *lua.LState) int {
	raise(L, m.e.InsertNewline())
	return 0
}

func (m *editorModule) tab(L *lua.LState) int {
	raise(L, m.e.Tab())
	return 0
}

func (m *editorModule) backspace(L *lua.LState) int {
	raise(L, m.e.Backspace())
	return 0
}

func (m *editorModule) home(L *lua.LState) int {
	m.e.Home(OptBool(L, 1, false))
	return 0
}

// indent(increase) indents the selected lines, or unindents them when
// increase is false.
func (m *editorModule) indentSelection(L *lua.LState) int {
	raise(L, m.e.IndentSelection(OptBool(L, 1, true)))
	return 0
}

func (m *editorModule) autoIndent(L *lua.LState) int {
	raise(L, m.e.AutoIndentSelection())
	return 0
}

func (m *editorModule) moveUp(L *lua.LState) int {
	raise(L, m.e.MoveLinesUp())
	return 0
}

func (m *editorModule) moveDown(L *lua.LState) int {
	raise(L, m.e.MoveLinesDown())
	return 0
}

func (m *editorModule) duplicate(L *lua.LState) int {
	raise(L, m.e.Duplicate())
	return 0
}

func (m *editorModule) deleteLines(L *lua.LState) int {
	raise(L, m.e.DeleteLines())
	return 0
}

// toggle_mark([line]) toggles the mark of line, or of the cursor line.
func (m *editorModule) toggleMark(L *lua.LState) int {
	if L.Get(1) == lua.LNil {
		L.Push(lua.LBool(m.e.ToggleMark()))
		return 1
	}
	marked, err := m.e.ToggleMarkAt(L.CheckInt(1))
	raise(L, err)
	L.Push(lua.LBool(marked))
	return 1
}

func (m *editorModule) marks(L *lua.LState) int {
	L.Push(IntsToTable(L, m.e.MarkedLines()))
	return 1
}

func (m *editorModule) nextMark(L *lua.LState) int {
	L.Push(lua.LBool(m.e.NextMark()))
	return 1
}

func (m *editorModule) prevMark(L *lua.LState) int {
	L.Push(lua.LBool(m.e.PrevMark()))
	return 1
}

func (m *editorModule) undo(L *lua.LState) int {
	raise(L, m.e.Undo())
	return 0
}

func (m *editorModule) redo(L *lua.LState) int {
	raise(L, m.e.Redo())
	return 0
}

// transaction(name, fn) runs fn as one undo step. An error raised by fn
// propagates after the transaction is closed.
func (m *editorModule) transaction(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	err := m.e.Transaction(name, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
	raise(L, err)
	return 0
}

func (m *editorModule) language(L *lua.LState) int {
	L.Push(lua.LString(m.e.Language()))
	return 1
}

func (m *editorModule) setLanguage(L *lua.LState) int {
	m.e.SetLanguage(L.CheckString(1))
	return 0
}

func (m *editorModule) setPolicy(L *lua.LState) int {
	raise(L, m.e.SetPolicy(L.CheckString(1)))
	return 0
}

func (m *editorModule) isCode(L *lua.LState) int {
	L.Push(lua.LBool(m.e.IsCode(L.CheckInt(1), L.CheckInt(2))))
	return 1
}

func (m *editorModule) isComment(L *lua.LState) int {
	L.Push(lua.LBool(m.e.IsComment(L.CheckInt(1), L.CheckInt(2))))
	return 1
}

// complete() returns the word before the cursor and its candidates.
func (m *editorModule) complete(L *lua.LState) int {
	word, candidates := m.e.Complete()
	L.Push(lua.LString(word))
	L.Push(StringsToTable(L, candidates))
	return 2
}
