// Package cursor provides the selection model of the editor.
//
// Selections use an anchor/cursor model where:
//   - Anchor: the position where the selection started
//   - Head: the cursor position, where typing occurs
//
// When Anchor == Head, the selection is just a cursor with no selected
// text. Either end may precede the other, preserving the direction in
// which the user selected.
//
// Positions are (line, column) pairs in characters. Selections are kept
// valid across line edits with TransformSelection, which maps positions
// through a buffer.Change.
package cursor
