// Package history provides undo/redo and transaction grouping for the
// editor engine.
//
// The history system uses the Command pattern to encapsulate edits,
// enabling them to be executed, undone, and redone.
//
// # Operations
//
// An Operation records one primitive line edit that has already been
// applied to the buffer:
//   - The buffer.Change describing removed and inserted lines
//   - The selection before and after the edit
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	h.Push(op)
//	h.Undo(target)
//	h.Redo(target)
//
// # Transactions
//
// Commands pushed while a group is open are combined into one undo unit.
// Groups nest: only the outermost BeginGroup opens a boundary and only the
// matching outermost EndGroup closes it, so
//
//	h.BeginGroup("outer")
//	h.BeginGroup("inner")
//	// ... edits ...
//	h.EndGroup()
//	h.EndGroup()
//
// yields exactly one undo step. GroupScope and Transaction guarantee the
// closing EndGroup runs on every exit path:
//
//	scope := h.GroupScope("Indent")
//	defer scope.End()
//
// A failure inside a transaction does not roll back edits already made;
// the group is still closed and those edits undo as one unit.
package history
