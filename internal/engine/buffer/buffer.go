package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Buffer is an ordered sequence of lines.
//
// A buffer always holds at least one line; an empty document is a single
// empty line. Every content-changing method performs exactly one splice
// and returns the Change it made, which can later be re-applied or
// inverted with Apply.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	lines      []Line
	nextID     LineID
	revisionID RevisionID
}

// NewBuffer creates a buffer holding one empty line.
func NewBuffer() *Buffer {
	b := &Buffer{revisionID: NewRevisionID()}
	b.lines = []Line{b.newLine("")}
	return b
}

// NewBufferFromString creates a buffer with initial content.
// CRLF and CR terminators are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	b := &Buffer{revisionID: NewRevisionID()}
	b.lines = b.newLines(SplitLines(s))
	return b
}

// NewBufferFromLines creates a buffer with one line per entry.
// Entries containing terminators are split into several lines.
func NewBufferFromLines(texts []string) *Buffer {
	b := &Buffer{revisionID: NewRevisionID()}
	b.lines = b.newLines(expandTexts(texts))
	if len(b.lines) == 0 {
		b.lines = []Line{b.newLine("")}
	}
	return b
}

func (b *Buffer) newLine(text string) Line {
	b.nextID++
	return Line{ID: b.nextID, Text: text}
}

func (b *Buffer) newLines(texts []string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = b.newLine(t)
	}
	return lines
}

// expandTexts splits entries holding terminators into separate lines.
func expandTexts(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.ContainsAny(t, "\r\n") {
			out = append(out, SplitLines(t)...)
			continue
		}
		out = append(out, t)
	}
	return out
}

// Read Operations

// Len returns the number of lines. It is always at least 1.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// RevisionID returns the current revision. It changes on every mutation.
func (b *Buffer) RevisionID() RevisionID {
	return b.revisionID
}

// Text returns the document joined with "\n".
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text)
	}
	return sb.String()
}

// Line returns the line at index. Negative indices count from the end.
func (b *Buffer) Line(index int) (Line, error) {
	i, err := b.normIndex("get", index)
	if err != nil {
		return Line{}, err
	}
	return b.lines[i], nil
}

// Get returns the text of the line at index.
func (b *Buffer) Get(index int) (string, error) {
	l, err := b.Line(index)
	return l.Text, err
}

// LineLen returns the length in characters of the line at index.
func (b *Buffer) LineLen(index int) (int, error) {
	l, err := b.Line(index)
	if err != nil {
		return 0, err
	}
	return l.Len(), nil
}

// GetRange returns a copy of the texts of lines [start, end).
func (b *Buffer) GetRange(start, end int) ([]string, error) {
	s, e, err := b.normRange("getRange", start, end)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, e-s)
	for _, l := range b.lines[s:e] {
		texts = append(texts, l.Text)
	}
	return texts, nil
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Texts returns a copy of all line texts.
func (b *Buffer) Texts() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.Text
	}
	return out
}

// IndexOf returns the current index of the line with the given identity.
func (b *Buffer) IndexOf(id LineID) (int, bool) {
	for i, l := range b.lines {
		if l.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Write Operations

// Set replaces the text of the line at index. The line keeps its identity.
func (b *Buffer) Set(index int, text string) (Change, error) {
	i, err := b.normIndex("set", index)
	if err != nil {
		return Change{}, err
	}
	return b.Replace(i, i+1, []string{text})
}

// SetRange replaces lines [start, end) with texts.
func (b *Buffer) SetRange(start, end int, texts []string) (Change, error) {
	s, e, err := b.normRange("setRange", start, end)
	if err != nil {
		return Change{}, err
	}
	return b.Replace(s, e, texts)
}

// SetRangeAny replaces lines [start, end) with items, which must all be
// strings. Nothing is modified when an entry is not a string.
func (b *Buffer) SetRangeAny(start, end int, items []any) (Change, error) {
	s, e, err := b.normRange("setRange", start, end)
	if err != nil {
		return Change{}, err
	}
	texts, err := ToTexts(items)
	if err != nil {
		return Change{}, err
	}
	return b.Replace(s, e, texts)
}

// Insert inserts a line before index. An index equal to Len appends.
// Negative indices count from the end, so -1 inserts before the last line.
func (b *Buffer) Insert(index int, text string) (Change, error) {
	n := len(b.lines)
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i > n {
		return Change{}, boundsErr("insert", "line", index, -n, n)
	}
	return b.Replace(i, i, []string{text})
}

// Append adds a line at the end of the buffer.
func (b *Buffer) Append(text string) (Change, error) {
	n := len(b.lines)
	return b.Replace(n, n, []string{text})
}

// Delete removes the line at index.
func (b *Buffer) Delete(index int) (Change, error) {
	i, err := b.normIndex("delete", index)
	if err != nil {
		return Change{}, err
	}
	return b.Replace(i, i+1, nil)
}

// DeleteRange removes lines [start, end). If every line is removed the
// buffer collapses to a single, new, empty line.
func (b *Buffer) DeleteRange(start, end int) (Change, error) {
	s, e, err := b.normRange("deleteRange", start, end)
	if err != nil {
		return Change{}, err
	}
	return b.Replace(s, e, nil)
}

// Replace is the primitive splice: lines [start, end) are replaced by
// texts. Indices must already be non-negative. Replaced lines keep their
// identities pairwise, in order; surplus old lines are destroyed and
// surplus new lines get fresh identities.
func (b *Buffer) Replace(start, end int, texts []string) (Change, error) {
	n := len(b.lines)
	if start < 0 || start > n {
		return Change{}, boundsErr("replace", "line", start, 0, n)
	}
	if end < start || end > n {
		return Change{}, boundsErr("replace", "range", end, start, n)
	}

	texts = expandTexts(texts)
	if start == 0 && end == n && len(texts) == 0 {
		// Never leave the buffer without a line.
		removed := b.Lines()
		fresh := b.newLine("")
		return b.splice(Change{Start: 0, Removed: removed, Inserted: []Line{fresh}}), nil
	}

	old := b.lines[start:end]
	inserted := make([]Line, len(texts))
	for i, t := range texts {
		if i < len(old) {
			inserted[i] = Line{ID: old[i].ID, Text: t}
			continue
		}
		inserted[i] = b.newLine(t)
	}

	removed := make([]Line, len(old))
	copy(removed, old)

	c := Change{Start: start, Removed: removed, Inserted: inserted}
	if unchanged(c) {
		return Change{Start: start}, nil
	}
	return b.splice(c), nil
}

// Reset replaces the whole buffer with texts. Unlike Replace, every line
// gets a fresh identity, so nothing attached to an old line survives.
// Identical content leaves the buffer alone and returns an empty change.
func (b *Buffer) Reset(texts []string) Change {
	texts = expandTexts(texts)
	if len(texts) == 0 {
		texts = []string{""}
	}
	if slices.Equal(texts, b.Texts()) {
		return Change{}
	}
	return b.splice(Change{Start: 0, Removed: b.Lines(), Inserted: b.newLines(texts)})
}

// Apply re-applies a change previously returned by this buffer, or its
// inverse. The lines at c.Start must be exactly c.Removed.
func (b *Buffer) Apply(c Change) error {
	if c.IsEmpty() {
		return nil
	}
	if c.Start < 0 || c.Start+len(c.Removed) > len(b.lines) {
		return ErrChangeMismatch
	}
	for i, l := range c.Removed {
		if b.lines[c.Start+i] != l {
			return ErrChangeMismatch
		}
	}
	if len(b.lines)-len(c.Removed)+len(c.Inserted) < 1 {
		return ErrChangeMismatch
	}
	for _, l := range c.Inserted {
		if l.ID > b.nextID {
			b.nextID = l.ID
		}
	}
	b.splice(c)
	return nil
}

func (b *Buffer) splice(c Change) Change {
	end := c.Start + len(c.Removed)
	lines := make([]Line, 0, len(b.lines)-len(c.Removed)+len(c.Inserted))
	lines = append(lines, b.lines[:c.Start]...)
	lines = append(lines, c.Inserted...)
	lines = append(lines, b.lines[end:]...)
	b.lines = lines
	b.revisionID = NewRevisionID()
	return c
}

func unchanged(c Change) bool {
	if len(c.Removed) != len(c.Inserted) {
		return false
	}
	for i := range c.Removed {
		if c.Removed[i] != c.Inserted[i] {
			return false
		}
	}
	return true
}

// normIndex resolves a possibly negative line index.
func (b *Buffer) normIndex(op string, index int) (int, error) {
	n := len(b.lines)
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, boundsErr(op, "line", index, -n, n-1)
	}
	return i, nil
}

// normRange resolves a possibly negative [start, end) line range.
func (b *Buffer) normRange(op string, start, end int) (int, int, error) {
	n := len(b.lines)
	s, e := start, end
	if s < 0 {
		s += n
	}
	if e < 0 {
		e += n
	}
	if s < 0 || s > n {
		return 0, 0, boundsErr(op, "line", start, -n, n)
	}
	if e < s || e > n {
		return 0, 0, boundsErr(op, "range", end, s, n)
	}
	return s, e, nil
}

// Slice returns the characters [from, to) of s, clamped to its length.
func Slice(s string, from, to int) string {
	n := utf8.RuneCountInString(s)
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return ""
	}
	if from == 0 && to == n {
		return s
	}
	return s[byteOffset(s, from):byteOffset(s, to)]
}

// byteOffset returns the byte index of character col in s. Each invalid
// UTF-8 byte counts as one character, as in utf8.RuneCountInString, so
// slicing never rewrites bytes outside the slice.
func byteOffset(s string, col int) int {
	i := 0
	for ; col > 0 && i < len(s); col-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
