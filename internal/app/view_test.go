package app

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/videre/internal/buffer"
)

func TestColumnAt(t *testing.T) {
	tests := []struct {
		name string
		line string
		x    int
		want int
	}{
		{"start", "hello", 0, 0},
		{"middle", "hello", 3, 3},
		{"past end", "hello", 20, 5},
		{"empty line", "", 4, 0},
		{"wide rune first cell", "a界b", 1, 1},
		{"wide rune second cell", "a界b", 2, 1},
		{"after wide rune", "a界b", 3, 2},
		{"inside tab", "\tx", 2, 0},
		{"after tab", "\tx", 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, columnAt([]rune(tt.line), tt.x, 4))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	require.Equal(t, "plain", expandTabs("plain", 4))
	require.Equal(t, "  a  b", expandTabs("\ta\tb", 2))
	require.Equal(t, "\x1b[31m    x\x1b[0m", expandTabs("\x1b[31m\tx\x1b[0m", 4))
}

func TestDrawCursor(t *testing.T) {
	t.Run("on a cell", func(t *testing.T) {
		got := drawCursor("abc", 0, "abc", buffer.Pos(0, 1))
		require.Equal(t, "a\x1b[7mb\x1b[27mc", got)
	})

	t.Run("past the end", func(t *testing.T) {
		got := drawCursor("abc", 0, "abc", buffer.Pos(0, 3))
		require.Equal(t, "abc\x1b[7m \x1b[27m", got)
	})

	t.Run("empty line", func(t *testing.T) {
		got := drawCursor("", 0, "", buffer.Pos(0, 0))
		require.Equal(t, "\x1b[7m \x1b[27m", got)
	})

	t.Run("colored input keeps visible text", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			raw := rapid.StringMatching(`[a-z界 ]{0,12}`).Draw(t, "raw")
			col := rapid.IntRange(0, len([]rune(raw))).Draw(t, "col")
			display := "\x1b[32m" + raw + "\x1b[0m"

			got := ansi.Strip(drawCursor(display, 0, raw, buffer.Pos(0, col)))
			if col == len([]rune(raw)) {
				require.Equal(t, raw+" ", got)
			} else {
				require.Equal(t, raw, got)
			}
		})
	})
}
