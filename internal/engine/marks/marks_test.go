package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linecore/internal/engine/buffer"
)

func TestToggleIdempotence(t *testing.T) {
	buf := buffer.NewBufferFromString("a\nb\nc")
	tr := NewTracker(buf)
	l, _ := buf.Line(1)

	for _, initial := range []bool{false, true} {
		if tr.IsMarked(l.ID) != initial {
			tr.Toggle(l.ID)
		}
		tr.Toggle(l.ID)
		tr.Toggle(l.ID)
		assert.Equal(t, initial, tr.IsMarked(l.ID))
	}
}

func TestMarkFollowsLineIdentity(t *testing.T) {
	buf := buffer.NewBufferFromString("a\nb\nc")
	tr := NewTracker(buf)
	_, err := tr.ToggleLine(1)
	require.NoError(t, err)

	_, err = buf.Insert(0, "new")
	require.NoError(t, err)

	assert.False(t, tr.IsLineMarked(1))
	assert.True(t, tr.IsLineMarked(2))
	assert.Equal(t, []int{2}, tr.Lines())
}

func TestMarkDiscardedWithLine(t *testing.T) {
	buf := buffer.NewBufferFromString("a\nb\nc")
	tr := NewTracker(buf)
	_, _ = tr.ToggleLine(1)

	c, err := buf.Delete(1)
	require.NoError(t, err)
	assert.True(t, tr.Observe(c))
	assert.Equal(t, 0, tr.Count())

	// Bringing the line back does not bring its mark back.
	require.NoError(t, buf.Apply(c.Invert()))
	assert.False(t, tr.IsLineMarked(1))
}

func TestMarkSurvivesLineEdit(t *testing.T) {
	buf := buffer.NewBufferFromString("a\nb")
	tr := NewTracker(buf)
	_, _ = tr.ToggleLine(0)

	c, err := buf.Set(0, "edited")
	require.NoError(t, err)
	assert.False(t, tr.Observe(c))
	assert.True(t, tr.IsLineMarked(0))
}

func TestClearInclusive(t *testing.T) {
	buf := buffer.NewBufferFromString("0\n1\n2\n3\n4")
	tr := NewTracker(buf)
	for _, i := range []int{0, 1, 3, 4} {
		_, _ = tr.ToggleLine(i)
	}

	n, err := tr.Clear(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{0, 4}, tr.Lines())

	_, err = tr.Clear(3, 5)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)
	_, err = tr.Clear(3, 2)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)
}

func TestFindNextPrevious(t *testing.T) {
	buf := buffer.NewBufferFromString("0\n1\n2\n3\n4")
	tr := NewTracker(buf)
	_, _ = tr.ToggleLine(1)
	_, _ = tr.ToggleLine(3)

	tests := []struct {
		name     string
		forward  bool
		from     int
		want     int
		wantFind bool
	}{
		{"next from start", true, 0, 1, true},
		{"next excludes from", true, 1, 3, true},
		{"next past last mark", true, 3, -1, false},
		{"next from last line", true, 4, -1, false},
		{"next from before start", true, -1, 1, true},
		{"previous from end", false, 4, 3, true},
		{"previous excludes from", false, 3, 1, true},
		{"previous before first mark", false, 1, -1, false},
		{"previous from first line", false, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int
			var ok bool
			if tt.forward {
				got, ok = tr.FindNext(tt.from)
			} else {
				got, ok = tr.FindPrevious(tt.from)
			}
			assert.Equal(t, tt.wantFind, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindNextFromLastLineNoWrap(t *testing.T) {
	buf := buffer.NewBufferFromString("a\nb\nc")
	tr := NewTracker(buf)
	_, _ = tr.ToggleLine(0)

	_, ok := tr.FindNext(buf.Len() - 1)
	assert.False(t, ok)
}
