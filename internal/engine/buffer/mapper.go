package buffer

import (
	"sort"
	"unicode/utf8"
)

// Mapper converts between (line, column) positions and absolute offsets.
//
// An absolute offset counts characters from the start of the document,
// with one character for every line terminator. Line start offsets are
// cached and rebuilt when the buffer revision changes.
type Mapper struct {
	buf    *Buffer
	rev    RevisionID
	starts []int // start offset of each line
	total  int
}

// NewMapper creates a mapper over buf. The mapper holds a non-owning
// reference and must not outlive the buffer.
func NewMapper(buf *Buffer) *Mapper {
	return &Mapper{buf: buf}
}

func (m *Mapper) refresh() {
	if m.starts != nil && m.rev == m.buf.RevisionID() {
		return
	}
	lines := m.buf.lines
	if cap(m.starts) >= len(lines) {
		m.starts = m.starts[:len(lines)]
	} else {
		m.starts = make([]int, len(lines))
	}
	off := 0
	for i, l := range lines {
		m.starts[i] = off
		off += utf8.RuneCountInString(l.Text) + 1
	}
	m.total = off - 1
	m.rev = m.buf.RevisionID()
}

// TotalLength returns the document length in characters, terminators
// included.
func (m *Mapper) TotalLength() int {
	m.refresh()
	return m.total
}

// LineStart returns the absolute offset of the first character of line.
func (m *Mapper) LineStart(line int) (int, error) {
	m.refresh()
	if line < 0 || line >= len(m.starts) {
		return 0, boundsErr("lineStart", "line", line, 0, len(m.starts)-1)
	}
	return m.starts[line], nil
}

// ToAbsolute converts (line, col) to an absolute offset.
// col may equal the line length.
func (m *Mapper) ToAbsolute(line, col int) (int, error) {
	m.refresh()
	if line < 0 || line >= len(m.starts) {
		return 0, boundsErr("toAbsolute", "line", line, 0, len(m.starts)-1)
	}
	n := m.lineLen(line)
	if col < 0 || col > n {
		return 0, boundsErr("toAbsolute", "column", col, 0, n)
	}
	return m.starts[line] + col, nil
}

// ToLineCol converts an absolute offset to (line, col).
// An offset equal to TotalLength is the end of the last line.
func (m *Mapper) ToLineCol(offset int) (line, col int, err error) {
	m.refresh()
	if offset < 0 || offset > m.total {
		return 0, 0, boundsErr("toLineCol", "offset", offset, 0, m.total)
	}
	// Last line whose start is <= offset.
	line = sort.Search(len(m.starts), func(i int) bool {
		return m.starts[i] > offset
	}) - 1
	return line, offset - m.starts[line], nil
}

// PositionToOffset converts a Position to an absolute offset.
func (m *Mapper) PositionToOffset(p Position) (int, error) {
	return m.ToAbsolute(p.Line, p.Column)
}

// OffsetToPosition converts an absolute offset to a Position.
func (m *Mapper) OffsetToPosition(offset int) (Position, error) {
	line, col, err := m.ToLineCol(offset)
	if err != nil {
		return Position{}, err
	}
	return Position{Line: line, Column: col}, nil
}

// Clamp returns the closest valid position to p.
func (m *Mapper) Clamp(p Position) Position {
	m.refresh()
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(m.starts) {
		p.Line = len(m.starts) - 1
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := m.lineLen(p.Line); p.Column > n {
		p.Column = n
	}
	return p
}

// ClampOffset returns offset limited to [0, TotalLength].
func (m *Mapper) ClampOffset(offset int) int {
	m.refresh()
	if offset < 0 {
		return 0
	}
	if offset > m.total {
		return m.total
	}
	return offset
}

// lineLen derives a line's length from the cached starts.
func (m *Mapper) lineLen(line int) int {
	if line+1 < len(m.starts) {
		return m.starts[line+1] - m.starts[line] - 1
	}
	return m.total - m.starts[line]
}
