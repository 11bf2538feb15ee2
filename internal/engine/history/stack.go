package history

import (
	"errors"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrGroupOpen indicates undo or redo was requested while a transaction
	// is still open.
	ErrGroupOpen = errors.New("transaction in progress")
)

// DefaultMaxEntries is used when a non-positive limit is given.
const DefaultMaxEntries = 1000

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a buffer.
// History is not safe for concurrent use.
type History struct {
	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	depth     int
	groupName string
	groupCmds []Command

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Execute runs a command and adds it to the undo stack.
func (h *History) Execute(cmd Command, t Target) error {
	if err := cmd.Execute(t); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push adds a command that has already been applied.
// While a group is open the command joins the group; otherwise it becomes
// its own undo step. Either way the redo stack is cleared.
func (h *History) Push(cmd Command) {
	if edits(cmd) {
		h.redoStack = nil
	}
	if h.depth > 0 {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushEntry(cmd)
}

func (h *History) pushEntry(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo undoes the last undo step.
func (h *History) Undo(t Target) error {
	if h.depth > 0 {
		return ErrGroupOpen
	}
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	if err := entry.command.Undo(t); err != nil {
		return err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return nil
}

// Redo redoes the last undone step.
func (h *History) Redo(t Target) error {
	if h.depth > 0 {
		return ErrGroupOpen
	}
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	if err := entry.command.Execute(t); err != nil {
		return err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// BeginGroup opens a transaction level.
// Only the outermost call (depth 0 to 1) opens an undo boundary; nested
// calls just increase the depth. It returns the new depth.
func (h *History) BeginGroup(name string) int {
	h.depth++
	if h.depth == 1 {
		h.groupName = name
		h.groupCmds = nil
	}
	return h.depth
}

// EndGroup closes a transaction level.
// When the depth returns to 0, every command pushed since the outermost
// BeginGroup becomes a single undo step. Calling EndGroup with no open
// group does nothing. It returns the new depth.
func (h *History) EndGroup() int {
	if h.depth == 0 {
		return 0
	}
	h.depth--
	if h.depth > 0 {
		return h.depth
	}

	cmds := h.groupCmds
	h.groupCmds = nil
	if !anyEdits(cmds) {
		// Selection moves alone are not worth an undo step.
		return 0
	}
	switch len(cmds) {
	case 1:
		h.pushEntry(cmds[0])
	default:
		h.pushEntry(&Step{Name: h.groupName, Commands: cmds})
	}
	return 0
}

// Depth returns the current transaction nesting depth.
func (h *History) Depth() int {
	return h.depth
}

// IsGrouping returns true if a transaction is open.
func (h *History) IsGrouping() bool {
	return h.depth > 0
}

// Clear removes all undo/redo history.
// An open transaction keeps its depth but loses the commands collected so
// far.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.groupCmds = nil
}

// UndoInfo returns info about available undo steps, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	return entryInfo(h.undoStack)
}

// RedoInfo returns info about available redo steps, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	return entryInfo(h.redoStack)
}

func entryInfo(entries []*undoEntry) []OperationInfo {
	result := make([]OperationInfo, len(entries))
	for i, entry := range entries {
		result[i] = OperationInfo{
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
		}
	}
	return result
}

// PeekUndo returns info about the next undo step without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	entry := h.undoStack[len(h.undoStack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.maxEntries = max
	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// edits reports whether cmd changes text, as opposed to only moving the
// selection.
func edits(cmd Command) bool {
	op, ok := cmd.(*Operation)
	return !ok || !op.Change.IsEmpty()
}

func anyEdits(cmds []Command) bool {
	for _, c := range cmds {
		if edits(c) {
			return true
		}
	}
	return false
}
