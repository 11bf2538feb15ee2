// Package buffer provides the line-addressable text buffer at the core of
// the editor engine.
//
// The buffer package provides:
//
//   - An ordered sequence of lines, never empty
//   - Stable line identities (LineID) that survive reindexing
//   - Primitive splice edits that report a reversible Change
//   - Coordinate conversion between (line, column) and absolute offsets
//   - Line ending parsing and normalization
//   - The error taxonomy shared by the engine (BoundsError, ConfigError,
//     TypeMismatchError)
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("one\ntwo")
//
//	// Insert before the last line
//	buf.Insert(-1, "one and a half")
//
//	// Convert coordinates
//	m := buffer.NewMapper(buf)
//	off, _ := m.ToAbsolute(1, 3)
//	line, col, _ := m.ToLineCol(off)
//
// Coordinates:
//
// Columns and offsets count characters (runes), not bytes. Internally the
// document always uses a single "\n" between lines regardless of the line
// ending used when the document is stored; an absolute offset therefore
// counts one character per line break.
//
// Validation:
//
// Every index, range, column and offset is validated. Invalid arguments
// produce a *BoundsError and leave the buffer untouched. Negative line
// indices address lines from the end (-1 is the last line) for the
// list-like operations; coordinate conversion does not accept them.
package buffer
