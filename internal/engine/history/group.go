package history

// GroupScope is an open transaction level whose End closes it.
// Usage:
//
//	func doComplexEdit(h *History) {
//	    defer h.GroupScope("Complex Edit").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope opens a transaction level.
// Call End(), usually with defer, to close it.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End closes the transaction level.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.active = false
		g.history.EndGroup()
	}
}

// Active returns true until End has been called.
func (g *GroupScope) Active() bool {
	return g.active
}

// Transaction runs fn inside a transaction level.
// The level is closed however fn exits, including by panic; edits made
// before an error remain applied and undo as one step.
func (h *History) Transaction(name string, fn func() error) error {
	scope := h.GroupScope(name)
	defer scope.End()
	return fn()
}
