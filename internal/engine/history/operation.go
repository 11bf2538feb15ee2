package history

import (
	"fmt"
	"time"

	"github.com/dshills/linecore/internal/engine/buffer"
	"github.com/dshills/linecore/internal/engine/cursor"
)

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Operation is a primitive line edit that has already been applied.
// It captures all information needed to undo or redo the edit.
type Operation struct {
	Change buffer.Change

	// Selection state for restore
	SelectionBefore Selection
	SelectionAfter  Selection

	Name      string
	Timestamp time.Time
}

// NewOperation creates an operation for an applied change.
func NewOperation(name string, c buffer.Change, before, after Selection) *Operation {
	return &Operation{
		Change:          c,
		SelectionBefore: before,
		SelectionAfter:  after,
		Name:            name,
		Timestamp:       time.Now(),
	}
}

// Execute re-applies the change (used for redo).
func (op *Operation) Execute(t Target) error {
	if err := t.Apply(op.Change); err != nil {
		return fmt.Errorf("redo %s: %w", op.Description(), err)
	}
	t.SetSelection(op.SelectionAfter)
	return nil
}

// Undo reverses the change.
func (op *Operation) Undo(t Target) error {
	if err := t.Apply(op.Change.Invert()); err != nil {
		return fmt.Errorf("undo %s: %w", op.Description(), err)
	}
	t.SetSelection(op.SelectionBefore)
	return nil
}

// Description returns a human-readable description.
func (op *Operation) Description() string {
	if op.Name != "" {
		return op.Name
	}
	c := op.Change
	switch {
	case len(c.Removed) == 0:
		return fmt.Sprintf("Insert %d lines", len(c.Inserted))
	case len(c.Inserted) == 0:
		return fmt.Sprintf("Delete %d lines", len(c.Removed))
	default:
		return fmt.Sprintf("Replace %d with %d lines", len(c.Removed), len(c.Inserted))
	}
}

// OperationInfo provides information about an undo/redo entry.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}
