package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linecore/internal/engine/buffer"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func TestWordSet(t *testing.T) {
	e := newEngine(t)
	words := e.WordSet("a bb ccc bb_2 (x) y9")
	assert.Equal(t, map[string]struct{}{
		"bb":   {},
		"ccc":  {},
		"bb_2": {},
		"y9":   {},
	}, words)
}

func TestCandidates(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, []string{"held", "hello", "help"}, e.Candidates("hello help held he", "he"))
	assert.Equal(t, []string{"hello"}, e.Candidates("hello help hel", "hell"))
	assert.Empty(t, e.Candidates("hello", "hello"))
	assert.Equal(t, []string{"held", "hello", "help"}, e.Candidates("hello help held", ""))
}

func TestWordBeforeCursor(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, "bar", e.WordBeforeCursor("foo bar", 7))
	assert.Equal(t, "ba", e.WordBeforeCursor("foo bar", 6))
	assert.Equal(t, "", e.WordBeforeCursor("foo bar", 5))
	assert.Equal(t, "", e.WordBeforeCursor("foo bar", 4))
	assert.Equal(t, "xbar", e.WordBeforeCursor("(xbar", 5))
	assert.Equal(t, "", e.WordBeforeCursor("foo", 0))
	assert.Equal(t, "", e.WordBeforeCursor("foo", 9))
	assert.Equal(t, "héllo", e.WordBeforeCursor("héllo world", 5))
}

func TestSuggestThreshold(t *testing.T) {
	buf := buffer.NewBufferFromString("hello help held\nhe")
	e := newEngine(t)

	word, cands := e.Suggest(buf, 1, 2)
	assert.Equal(t, "he", word)
	assert.Nil(t, cands)

	word, cands = e.Complete(buf, 1, 2)
	assert.Equal(t, "he", word)
	assert.Equal(t, []string{"held", "hello", "help"}, cands)

	e.SetThreshold(2)
	_, cands = e.Suggest(buf, 1, 2)
	assert.Equal(t, []string{"held", "hello", "help"}, cands)

	e.SetEnabled(false)
	word, cands = e.Suggest(buf, 1, 2)
	assert.Equal(t, "", word)
	assert.Nil(t, cands)
}

func TestSuggestSeesEdits(t *testing.T) {
	buf := buffer.NewBufferFromString("alpha\nalp")
	e := newEngine(t)

	_, cands := e.Suggest(buf, 1, 3)
	assert.Equal(t, []string{"alpha"}, cands)

	_, err := buf.Insert(0, "alphabet")
	require.NoError(t, err)
	_, cands = e.Suggest(buf, 2, 3)
	assert.Equal(t, []string{"alpha", "alphabet"}, cands)
}

func TestCustomWordPattern(t *testing.T) {
	e := newEngine(t, WithWordPattern(`[\w-]{2,}`), WithThreshold(1))
	assert.Equal(t, `[\w-]{2,}`, e.WordPattern())
	assert.Equal(t, []string{"foo-bar"}, e.Candidates("foo-bar foo", "foo"))

	_, err := New(WithWordPattern(`(`))
	assert.Error(t, err)
}
