package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/register"
)

// newTwoLineSelection selects from (0,6) to (1,6) in character visual mode.
func newTwoLineSelection(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor("hello world\nsecond line")
	e.MoveCursorTo(buffer.Pos(0, 6))
	typeKeys(e, "vj")
	require.Equal(t, ModeVisual, e.Mode())
	require.Equal(t, buffer.Pos(1, 6), e.Cursor().Position)
	return e
}

func TestVisual_DeleteAcrossLines(t *testing.T) {
	for _, key := range []string{"d", "x"} {
		t.Run(key, func(t *testing.T) {
			e := newTwoLineSelection(t)

			require.True(t, e.HandleInput(Key(key)))

			assert.Equal(t, []string{"hello line"}, e.Buffer().Lines())
			assert.Equal(t, buffer.Pos(0, 6), e.Cursor().Position)
			assert.Equal(t, ModeNormal, e.Mode())
			assert.True(t, e.Dirty())

			deleted, ok := e.Registers().Get(register.SmallDelete)
			require.True(t, ok)
			assert.Equal(t, register.Characters("world\nsecond "), deleted)
		})
	}
}

func TestVisual_YankAcrossLines(t *testing.T) {
	e := newTwoLineSelection(t)

	require.True(t, e.HandleInput("y"))

	assert.Equal(t, []string{"hello world", "second line"}, e.Buffer().Lines())
	assert.Equal(t, ModeNormal, e.Mode())
	assert.False(t, e.Dirty())
	assert.Equal(t, buffer.Pos(1, 6), e.Cursor().Position)

	unnamed, ok := e.Registers().Get(register.Unnamed)
	require.True(t, ok)
	assert.Equal(t, register.Characters("world\nsecond "), unnamed)
}

func TestVisual_ChangeAcrossLines(t *testing.T) {
	e := newTwoLineSelection(t)

	require.True(t, e.HandleInput("c"))

	assert.Equal(t, []string{"hello line"}, e.Buffer().Lines())
	assert.Equal(t, buffer.Pos(0, 6), e.Cursor().Position)
	assert.Equal(t, ModeInsert, e.Mode())
	assert.True(t, e.Dirty())

	typeKeys(e, "big ")
	assert.Equal(t, "hello big line", e.Buffer().String())
}

func TestVisual_DeleteIsUndoable(t *testing.T) {
	e := newTwoLineSelection(t)
	e.HandleInput("d")

	require.True(t, e.Undo())
	assert.Equal(t, "hello world\nsecond line", e.Buffer().String())
}

func TestVisual_EscapeAndCtrlCReturnToNormal(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyCtrlC} {
		e := newTestEditor("abc")
		typeKeys(e, "v")

		assert.True(t, e.HandleInput(k))
		assert.Equal(t, ModeNormal, e.Mode())
		_, _, ok := e.Selection()
		assert.False(t, ok)
	}
}

func TestVisual_ExitClearsState(t *testing.T) {
	e := newTestEditor("abc def")
	typeKeys(e, "lv")
	v := e.Handler(ModeVisual).(*visualHandler)
	assert.Equal(t, buffer.Pos(0, 1), v.start)

	e.SetSelectionEnd(buffer.Pos(0, 5))
	e.HandleInput(KeyEscape)

	assert.Equal(t, buffer.Position{}, v.start)
	assert.Nil(t, v.forcedEnd)
}

func TestVisual_UnhandledInput(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, "v")
	assert.False(t, e.HandleInput("q"))
	assert.Equal(t, ModeVisual, e.Mode())
}

func TestVisual_SelectionFollowsCursor(t *testing.T) {
	e := newTestEditor("hello world")
	typeKeys(e, "vll")

	start, end, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 0), start)
	assert.Equal(t, buffer.Pos(0, 2), end)

	typeKeys(e, "w")
	_, end, _ = e.Selection()
	assert.Equal(t, buffer.Pos(0, 6), end)

	typeKeys(e, "$")
	_, end, _ = e.Selection()
	assert.Equal(t, buffer.Pos(0, 10), end)

	typeKeys(e, "0")
	start, end, _ = e.Selection()
	assert.Equal(t, buffer.Pos(0, 0), start)
	assert.Equal(t, buffer.Pos(0, 0), end)
}

func TestVisual_BackwardSelectionIsOrdered(t *testing.T) {
	e := newTestEditor("one\ntwo\nthree")
	e.MoveCursorTo(buffer.Pos(2, 3))
	typeKeys(e, "vkb")

	start, end, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(1, 0), start)
	assert.Equal(t, buffer.Pos(2, 3), end)
}

func TestVisual_ForcedEndIsClearedByNextKey(t *testing.T) {
	e := newTestEditor("hello world")
	typeKeys(e, "vl")

	e.SetSelectionEnd(buffer.Pos(0, 8))
	_, end, _ := e.Selection()
	assert.Equal(t, buffer.Pos(0, 8), end)

	typeKeys(e, "h")
	_, end, _ = e.Selection()
	assert.Equal(t, buffer.Pos(0, 0), end)
}

func TestVisual_ForcedEndUsedByDelete(t *testing.T) {
	e := newTestEditor("hello world")
	typeKeys(e, "v")
	e.SetSelectionEnd(buffer.Pos(0, 4))

	v := e.Handler(ModeVisual).(*visualHandler)
	v.delete()
	assert.Equal(t, " world", e.Buffer().String())
}

func TestVisual_SwapEnds(t *testing.T) {
	e := newTestEditor("hello")
	typeKeys(e, "vllo")

	assert.Equal(t, buffer.Pos(0, 0), e.Cursor().Position)
	start, end, _ := e.Selection()
	assert.Equal(t, buffer.Pos(0, 0), start)
	assert.Equal(t, buffer.Pos(0, 2), end)
}

func TestVisualLine_SelectionCoversWholeLines(t *testing.T) {
	e := newTestEditor("one\ntwo\nthree")
	e.MoveCursorTo(buffer.Pos(0, 1))
	typeKeys(e, "Vj")
	require.Equal(t, ModeVisualLine, e.Mode())

	start, end, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 0), start)
	assert.Equal(t, buffer.Pos(1, 2), end)
}

func TestVisualLine_EmptyEndLine(t *testing.T) {
	e := newTestEditor("one\n\nthree")
	typeKeys(e, "Vj")
	_, end, _ := e.Selection()
	assert.Equal(t, buffer.Pos(1, 0), end)
}

func TestVisualLine_DeleteLeavesEmptyLine(t *testing.T) {
	e := newTestEditor("one\ntwo\nthree")
	typeKeys(e, "Vjd")

	assert.Equal(t, []string{"", "three"}, e.Buffer().Lines())
	deleted, _ := e.Registers().Get(register.SmallDelete)
	assert.Equal(t, register.Lines{"one", "two"}, deleted)
}

func TestVisual_SwitchVariantKeepsAnchor(t *testing.T) {
	e := newTestEditor("abc\ndef")
	typeKeys(e, "lvj")

	typeKeys(e, "V")
	require.Equal(t, ModeVisualLine, e.Mode())
	start, end, _ := e.Selection()
	assert.Equal(t, buffer.Pos(0, 0), start)
	assert.Equal(t, buffer.Pos(1, 2), end)

	typeKeys(e, "v")
	require.Equal(t, ModeVisual, e.Mode())
	start, _, _ = e.Selection()
	assert.Equal(t, buffer.Pos(0, 1), start)

	typeKeys(e, "v")
	assert.Equal(t, ModeNormal, e.Mode())
}

func TestVisualBlock_TracksCorners(t *testing.T) {
	e := newTestEditor("abcd\nefgh")
	typeKeys(e, "l")
	e.HandleInput(KeyCtrlV)
	typeKeys(e, "jl")

	require.Equal(t, ModeVisualBlock, e.Mode())
	start, end, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 1), start)
	assert.Equal(t, buffer.Pos(1, 2), end)
}

func TestVisual_GotoFileStartAndEnd(t *testing.T) {
	e := newTestEditor("one\ntwo\nthree")
	e.MoveCursorTo(buffer.Pos(1, 1))
	typeKeys(e, "vG")
	_, end, _ := e.Selection()
	assert.Equal(t, buffer.Pos(2, 0), end)

	typeKeys(e, "gg")
	start, _, _ := e.Selection()
	assert.Equal(t, buffer.Pos(0, 0), start)
}

func TestVisual_ShiftSelection(t *testing.T) {
	e := newTestEditor("a\nb\nc")
	typeKeys(e, "jVj>")
	assert.Equal(t, []string{"a", "    b", "    c"}, e.Buffer().Lines())
	assert.Equal(t, ModeNormal, e.Mode())
	assert.Equal(t, buffer.Pos(1, 4), e.Cursor().Position)

	typeKeys(e, "vk<")
	assert.Equal(t, []string{"a", "b", "    c"}, e.Buffer().Lines())

	typeKeys(e, "u")
	assert.Equal(t, []string{"a", "    b", "    c"}, e.Buffer().Lines())
}

func TestVisual_ChangeCase(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{"toggle", "vll~", "HeLlo World\nSECOND"},
		{"upper", "vwU", "HELLO World\nSECOND"},
		{"lower over lines", "Vjlu", "hello world\nsecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor("hElLo World\nSECOND")
			typeKeys(e, tt.keys)
			assert.Equal(t, tt.want, e.Buffer().String())
			assert.Equal(t, ModeNormal, e.Mode())
			assert.True(t, e.Dirty())
		})
	}

	e := newTestEditor("abc")
	typeKeys(e, "vlU")
	assert.Equal(t, "ABc", e.Buffer().String())
	assert.Equal(t, buffer.Pos(0, 0), e.Cursor().Position)
	typeKeys(e, "u")
	assert.Equal(t, "abc", e.Buffer().String())
}

func TestVisual_BigWordAndBracketMotions(t *testing.T) {
	e := newTestEditor("x.y (a b) z")
	typeKeys(e, "vW")
	start, end, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 0), start)
	assert.Equal(t, buffer.Pos(0, 4), end)

	typeKeys(e, "%")
	_, end, _ = e.Selection()
	assert.Equal(t, buffer.Pos(0, 8), end)
}

