package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// ToGoValue converts a Lua value to a Go value. Integral numbers become
// int, sequences become []any, other tables map[string]any. Functions
// and cycles convert to nil.
func ToGoValue(lv lua.LValue) any {
	return toGoValue(lv, make(map[*lua.LTable]bool))
}

func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoValue(v, visited)
	})
	return m
}

// ToSlice converts a Lua sequence to []any. Non-table values and empty
// tables give an empty slice.
func ToSlice(lv lua.LValue) []any {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]any, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		out = append(out, ToGoValue(t.RawGetInt(i)))
	}
	return out
}

// StringsToTable converts a string slice to a Lua sequence.
func StringsToTable(L *lua.LState, s []string) *lua.LTable {
	t := L.CreateTable(len(s), 0)
	for _, v := range s {
		t.Append(lua.LString(v))
	}
	return t
}

// IntsToTable converts an int slice to a Lua sequence.
func IntsToTable(L *lua.LState, s []int) *lua.LTable {
	t := L.CreateTable(len(s), 0)
	for _, v := range s {
		t.Append(lua.LNumber(v))
	}
	return t
}

// OptBool returns the boolean at stack index n, or def when it is absent.
func OptBool(L *lua.LState, n int, def bool) bool {
	if L.Get(n) == lua.LNil {
		return def
	}
	return lua.LVAsBool(L.Get(n))
}
