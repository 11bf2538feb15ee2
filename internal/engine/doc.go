// Package engine provides the editing core of linecore.
//
// The Editor facade combines a line buffer, coordinate mapping, a single
// selection, grouped undo history, indentation commands, bookmarks and
// word completion behind one API.
//
// # Architecture
//
// The editor is built on several sub-packages:
//
//   - buffer: ordered lines with stable identities, and the Mapper that
//     converts (line, column) positions to absolute offsets
//   - cursor: selections and how they follow line changes
//   - history: undo/redo of line changes with nestable transactions
//   - marks: bookmarks keyed by line identity
//
// Indentation rules live in package indent, lexical classification in
// package syntax, and completion in package completion. The editor owns
// all of its state; collaborators such as the syntax classifier hold only
// read access to the buffer.
//
// # Basic Usage
//
//	e, err := engine.New(engine.WithContent("alpha\nbeta"))
//	if err != nil {
//	    return err
//	}
//	e.InsertLine(1, "middle")
//	e.Line(-1) // "beta"
//	e.Undo()   // removes "middle"
//
// # Transactions
//
// Group edits into one undo step. Begin returns a scope whose End must
// run on every path, so it is normally deferred:
//
//	func reformat(e *engine.Editor) error {
//	    defer e.Begin("Reformat").End()
//	    // ... several edits ...
//	}
//
// Transactions nest. Only the outermost End closes the undo step.
//
// # Errors
//
// Invalid lines, columns and offsets fail with *BoundsError, rejected
// settings with *ConfigError, and bulk line replacements holding
// non-strings with *TypeMismatchError. Each unwraps to ErrOutOfBounds,
// ErrInvalidConfig or ErrTypeMismatch. The cursor setters are the one
// exception: they clamp instead of failing.
//
// # Notifications
//
// Line count, bookmark, selection, indentation, line ending and language
// changes are published synchronously on the editor's event bus. The
// topics are listed in package events.
package engine
