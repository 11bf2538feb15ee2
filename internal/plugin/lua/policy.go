package lua

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/linecore/internal/indent"
)

// Script globals a policy script defines.
const (
	computeIndentFunc = "compute_indent"
	triggerCharsVar   = "trigger_characters"
)

// Policy is an indent policy implemented by a Lua script.
//
// The script defines compute_indent(ctx) and, optionally, a string
// trigger_characters. compute_indent returns the indentation as a
// string, a number of indent levels, or nil to leave the line alone.
// ctx carries:
//
//	line        index of the line being indented, 0-based
//	text        its text
//	trigger     "\n", "" or the character just typed
//	width       indent width
//	use_tabs    whether the unit is a tab
//	unit        one indent level
//	line_count  number of lines
//	line_text(i)      text of line i, or "" out of range
//	prev_non_blank()  index and text of the closest non-blank line above, or nil
//	is_code(l, c)     whether (l, c) is code
//
// A script error or an invalid result is logged and treated as no
// opinion, so a broken script never blocks editing.
type Policy struct {
	name     string
	state    *State
	compute  lua.LValue
	triggers string
}

// NewPolicy runs code in s and builds a policy from what it defines.
func NewPolicy(s *State, name, code string) (*Policy, error) {
	if err := s.DoString(code); err != nil {
		return nil, fmt.Errorf("load indent policy %q: %w", name, err)
	}
	return policyFromGlobals(s, name)
}

// LoadPolicy runs the script at path in s and builds a policy from it.
func LoadPolicy(s *State, name, path string) (*Policy, error) {
	if err := s.DoFile(path); err != nil {
		return nil, fmt.Errorf("load indent policy %q: %w", name, err)
	}
	return policyFromGlobals(s, name)
}

func policyFromGlobals(s *State, name string) (*Policy, error) {
	fn := s.GetGlobal(computeIndentFunc)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("indent policy %q: %w: %s", name, ErrNotFunction, computeIndentFunc)
	}
	p := &Policy{name: name, state: s, compute: fn}
	if tc, ok := s.GetGlobal(triggerCharsVar).(lua.LString); ok {
		p.triggers = string(tc)
	}
	return p, nil
}

// Name returns the name the policy was loaded under.
func (p *Policy) Name() string {
	return p.name
}

// TriggerCharacters returns the script's trigger_characters.
func (p *Policy) TriggerCharacters() string {
	return p.triggers
}

// ComputeIndent calls the script's compute_indent.
func (p *Policy) ComputeIndent(ctx *indent.Context, trigger string) (string, bool) {
	L := p.state.L
	results, err := p.state.Call(p.compute, 1, p.contextTable(L, ctx, trigger))
	if err != nil {
		p.state.Logger().Warn("indent script failed", "policy", p.name, "line", ctx.Line, "error", err)
		return "", false
	}

	switch v := results[0].(type) {
	case lua.LString:
		s := string(v)
		if strings.TrimSpace(s) != "" {
			p.state.Logger().Warn("indent script returned non-whitespace", "policy", p.name, "value", s)
			return "", false
		}
		return s, true
	case lua.LNumber:
		levels := max(int(v), 0)
		return strings.Repeat(ctx.Config.Unit(), levels), true
	default:
		return "", false
	}
}

func (p *Policy) contextTable(L *lua.LState, ctx *indent.Context, trigger string) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "line", lua.LNumber(ctx.Line))
	L.SetField(t, "text", lua.LString(ctx.Text()))
	L.SetField(t, "trigger", lua.LString(trigger))
	L.SetField(t, "width", lua.LNumber(ctx.Config.Width))
	L.SetField(t, "use_tabs", lua.LBool(ctx.Config.UseTabs))
	L.SetField(t, "unit", lua.LString(ctx.Config.Unit()))
	L.SetField(t, "line_count", lua.LNumber(ctx.Lines.Len()))

	L.SetField(t, "line_text", L.NewFunction(func(L *lua.LState) int {
		i := L.CheckInt(1)
		if i < 0 {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(ctx.LineText(i)))
		return 1
	}))
	L.SetField(t, "prev_non_blank", L.NewFunction(func(L *lua.LState) int {
		i, text, ok := ctx.PrevNonBlank()
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(i))
		L.Push(lua.LString(text))
		return 2
	}))
	L.SetField(t, "is_code", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(ctx.IsCode(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	return t
}
