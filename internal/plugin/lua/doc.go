// Package lua runs user scripts against the editor core with gopher-lua.
//
// # State
//
// A State opens only the base, table, string and math libraries and
// removes the base functions that load code or touch the file system.
// Every top-level run is bounded by an execution timeout:
//
//	s := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	defer s.Close()
//
// # Editor Module
//
// OpenEditor installs a global "editor" table whose functions call the
// engine. Lines and columns are 0-based:
//
//	lua.OpenEditor(s, ed)
//	err := s.DoString(`editor.set_cursor(0, 0); editor.newline()`)
//
// # Indent Policies
//
// A script defining compute_indent(ctx) becomes an indent.Policy:
//
//	p, err := lua.NewPolicy(s, "lisp", `
//	  trigger_characters = ")"
//	  function compute_indent(ctx)
//	    local _, prev = ctx.prev_non_blank()
//	    if prev and prev:match("%($") then return 1 end
//	    return 0
//	  end`)
//	ed.UsePolicy(p)
package lua
