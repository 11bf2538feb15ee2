package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linecore/internal/engine/buffer"
)

var (
	spaces4 = Config{Width: 4}
	tabs4   = Config{Width: 4, UseTabs: true}
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	for _, w := range []int{0, -2} {
		err := Config{Width: w}.Validate()
		assert.ErrorIs(t, err, buffer.ErrInvalidConfig)
	}
}

func TestConfigUnit(t *testing.T) {
	assert.Equal(t, "    ", spaces4.Unit())
	assert.Equal(t, "\t", tabs4.Unit())
	assert.Equal(t, 2, Config{Width: 2}.UnitLen())
	assert.Equal(t, 1, tabs4.UnitLen())
}

func TestUnindentPrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		cfg  Config
		want string
	}{
		{"full unit", "      x", spaces4, "  x"},
		{"single tab", "\t    x", spaces4, "    x"},
		{"fewer spaces", "  x", spaces4, "x"},
		{"spaces then tab", "  \tx", spaces4, "\tx"},
		{"no indent", "x", spaces4, "x"},
		{"tabs mode tab", "\t\tx", tabs4, "\tx"},
		{"tabs mode spaces", "      x", tabs4, "  x"},
		{"tabs mode few spaces", " \tx", tabs4, "\tx"},
		{"blank line", "", spaces4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unindent(tt.text, tt.cfg))
		})
	}
}

func TestIndentUnindentInverse(t *testing.T) {
	for _, cfg := range []Config{spaces4, tabs4, {Width: 2}, {Width: 8}} {
		for _, text := range []string{"", "foo", "a b\tc", "}"} {
			assert.Equal(t, text, Unindent(Indent(text, cfg), cfg))
		}
	}
}

func TestTabText(t *testing.T) {
	assert.Equal(t, "\t", TabText(3, tabs4))
	assert.Equal(t, "    ", TabText(0, spaces4))
	assert.Equal(t, "   ", TabText(1, spaces4))
	assert.Equal(t, " ", TabText(3, spaces4))
	assert.Equal(t, "    ", TabText(4, spaces4))
}

func TestBackspaceUnindent(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		col    int
		sel    bool
		cfg    Config
		remove int
	}{
		{"full unit", "    foo", 4, false, spaces4, 4},
		{"two units", "        foo", 8, false, spaces4, 4},
		{"partial unit", "      foo", 6, false, spaces4, 2},
		{"inside whitespace", "        foo", 4, false, spaces4, 0},
		{"with selection", "    foo", 4, true, spaces4, 0},
		{"cursor in text", "    foo", 5, false, spaces4, 0},
		{"tab", "\tfoo", 1, false, tabs4, 1},
		{"column zero", "foo", 0, false, spaces4, 0},
		{"blank line", "    ", 4, false, spaces4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.remove, BackspaceUnindent(tt.text, tt.col, tt.sel, tt.cfg))
		})
	}
}

func TestBackspaceUnindentRemainder(t *testing.T) {
	// Text before the cursor ends with a unit but is not a multiple of it.
	text := "\t    x"
	assert.Equal(t, 1, BackspaceUnindent(text, 5, false, spaces4))
}

func TestSmartHomeColumn(t *testing.T) {
	assert.Equal(t, 4, SmartHomeColumn("    foo", 7))
	assert.Equal(t, 0, SmartHomeColumn("    foo", 4))
	assert.Equal(t, 4, SmartHomeColumn("    foo", 0))
	assert.Equal(t, 0, SmartHomeColumn("foo", 2))
	assert.Equal(t, 0, SmartHomeColumn("", 0))
}

func TestLeadingWhitespace(t *testing.T) {
	assert.Equal(t, " \t ", LeadingWhitespace(" \t x "))
	assert.Equal(t, "   ", LeadingWhitespace("   "))
	assert.Equal(t, 2, FirstNonWhitespace("  héllo"))
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" x"))
}

func TestVisualColumn(t *testing.T) {
	assert.Equal(t, 0, VisualColumn("\tx", 0, 4))
	assert.Equal(t, 4, VisualColumn("\tx", 1, 4))
	assert.Equal(t, 4, VisualColumn("ab\tx", 3, 4))
	assert.Equal(t, 8, VisualColumn("ab\tx", 3, 8))
	assert.Equal(t, 4, VisualColumn("世界", 2, 4))
	assert.Equal(t, []int{4, 8}, TabStops(4, 10))
}
