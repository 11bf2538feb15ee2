package engine

import (
	"github.com/dshills/linecore/internal/engine/buffer"
	"github.com/dshills/linecore/internal/engine/history"
	"github.com/dshills/linecore/internal/indent"
)

// Errors returned by engine operations. Typed errors from the buffer
// (BoundsError, ConfigError, TypeMismatchError) unwrap to the first three.
var (
	// ErrOutOfBounds indicates a line, column, or offset outside the document.
	ErrOutOfBounds = buffer.ErrOutOfBounds

	// ErrInvalidConfig indicates a rejected setting value.
	ErrInvalidConfig = buffer.ErrInvalidConfig

	// ErrTypeMismatch indicates a bulk line replacement with non-text entries.
	ErrTypeMismatch = buffer.ErrTypeMismatch

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrTransactionOpen indicates undo or redo was requested inside a
	// transaction.
	ErrTransactionOpen = history.ErrGroupOpen

	// ErrPolicyNotFound indicates no indent policy has the requested name.
	ErrPolicyNotFound = indent.ErrPolicyNotFound
)
