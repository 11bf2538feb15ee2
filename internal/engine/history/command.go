package history

import (
	"fmt"

	"github.com/dshills/linecore/internal/engine/buffer"
)

// Target receives replayed changes. The engine implements it so that
// marks and notifications follow undo and redo like any other edit.
type Target interface {
	Apply(c buffer.Change) error
	SetSelection(sel Selection)
}

// Command is one undoable entry.
type Command interface {
	Execute(t Target) error
	Undo(t Target) error
	Description() string
}

// Step is the commands recorded while a transaction was open. It undoes
// and redoes as a unit.
type Step struct {
	Name     string
	Commands []Command
}

// Execute redoes the commands in order. If one fails, those already
// redone are undone again so the step is never left half applied.
func (s *Step) Execute(t Target) error {
	for i, cmd := range s.Commands {
		if err := cmd.Execute(t); err != nil {
			for _, done := range reversed(s.Commands[:i]) {
				_ = done.Undo(t)
			}
			return fmt.Errorf("redo %q, operation %d: %w", s.Description(), i, err)
		}
	}
	return nil
}

// Undo undoes the commands in reverse order.
func (s *Step) Undo(t Target) error {
	for i, cmd := range reversed(s.Commands) {
		if err := cmd.Undo(t); err != nil {
			return fmt.Errorf("undo %q, operation %d: %w", s.Description(), len(s.Commands)-1-i, err)
		}
	}
	return nil
}

// Description is the transaction name, or a summary for unnamed steps.
func (s *Step) Description() string {
	switch {
	case s.Name != "":
		return s.Name
	case len(s.Commands) == 1:
		return s.Commands[0].Description()
	default:
		return fmt.Sprintf("%d operations", len(s.Commands))
	}
}

func reversed(cmds []Command) []Command {
	out := make([]Command, len(cmds))
	for i, c := range cmds {
		out[len(cmds)-1-i] = c
	}
	return out
}
