package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/videre/internal/buffer"
)

func TestInsert_TypeAndEscape(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, "li")
	require.Equal(t, ModeInsert, e.Mode())

	typeKeys(e, "X")
	assert.Equal(t, "aXbc", e.Buffer().String())
	assert.Equal(t, buffer.Pos(0, 2), e.Cursor().Position)

	e.HandleInput(KeyEscape)
	assert.Equal(t, ModeNormal, e.Mode())
	assert.Equal(t, buffer.Pos(0, 1), e.Cursor().Position)
	assert.True(t, e.Dirty())
}

func TestInsert_AppendVariants(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, "A")
	assert.Equal(t, buffer.Pos(0, 3), e.Cursor().Position)
	typeKeys(e, "d")
	assert.Equal(t, "abcd", e.Buffer().String())
	e.HandleInput(KeyCtrlC)
	assert.Equal(t, buffer.Pos(0, 3), e.Cursor().Position)

	e = newTestEditor("abc")
	typeKeys(e, "a!")
	assert.Equal(t, "a!bc", e.Buffer().String())

	e = newTestEditor("   abc")
	typeKeys(e, "$I#")
	assert.Equal(t, "   #abc", e.Buffer().String())
}

func TestInsert_OpenLine(t *testing.T) {
	e := newTestEditor("one\ntwo")
	typeKeys(e, "ohi")
	e.HandleInput(KeyEscape)
	assert.Equal(t, []string{"one", "hi", "two"}, e.Buffer().Lines())
	assert.Equal(t, buffer.Pos(1, 1), e.Cursor().Position)

	typeKeys(e, "Otop")
	assert.Equal(t, []string{"one", "top", "hi", "two"}, e.Buffer().Lines())
}

func TestInsert_EnterSplitsLine(t *testing.T) {
	e := newTestEditor("abcd")
	typeKeys(e, "lli")
	e.HandleInput(KeyEnter)
	assert.Equal(t, []string{"ab", "cd"}, e.Buffer().Lines())
	assert.Equal(t, buffer.Pos(1, 0), e.Cursor().Position)
}

func TestInsert_BackspaceJoinsLines(t *testing.T) {
	e := newTestEditor("ab\ncd")
	typeKeys(e, "ji")
	e.HandleInput(KeyBackspace)
	assert.Equal(t, []string{"abcd"}, e.Buffer().Lines())
	assert.Equal(t, buffer.Pos(0, 2), e.Cursor().Position)

	e.HandleInput(KeyBackspace)
	assert.Equal(t, "acd", e.Buffer().String())
	assert.Equal(t, buffer.Pos(0, 1), e.Cursor().Position)
}

func TestInsert_BackspaceAtStartOfBuffer(t *testing.T) {
	e := newTestEditor("ab")
	typeKeys(e, "i")
	e.HandleInput(KeyBackspace)
	assert.Equal(t, "ab", e.Buffer().String())
	assert.False(t, e.Dirty())
}

func TestInsert_DeleteForwardJoinsLines(t *testing.T) {
	e := newTestEditor("ab\ncd")
	typeKeys(e, "A")
	e.HandleInput(KeyDelete)
	assert.Equal(t, "abcd", e.Buffer().String())
}

func TestInsert_TabInsertsSpaces(t *testing.T) {
	e := New(buffer.New("x"), nil, Options{TabWidth: 2})
	typeKeys(e, "i")
	e.HandleInput(KeyTab)
	assert.Equal(t, "  x", e.Buffer().String())
	assert.Equal(t, buffer.Pos(0, 2), e.Cursor().Position)
}

func TestInsert_ArrowKeysMoveToEndOfLine(t *testing.T) {
	e := newTestEditor("ab\nlonger")
	typeKeys(e, "i")
	e.HandleInput(KeyDown)
	e.HandleInput(KeyEnd)
	assert.Equal(t, buffer.Pos(1, 6), e.Cursor().Position)

	e.HandleInput(KeyUp)
	assert.Equal(t, buffer.Pos(0, 2), e.Cursor().Position)

	e.HandleInput(KeyHome)
	e.HandleInput(KeyRight)
	assert.Equal(t, buffer.Pos(0, 1), e.Cursor().Position)
}

func TestInsert_IgnoresControlKeys(t *testing.T) {
	e := newTestEditor("")
	typeKeys(e, "i")
	assert.False(t, e.HandleInput(KeyCtrlR))
	assert.True(t, e.HandleInput("é"))
	assert.Equal(t, "é", e.Buffer().String())
}

func TestInsert_UndoRestoresWholeSession(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, "ixyz")
	e.HandleInput(KeyEscape)
	require.Equal(t, "xyzabc", e.Buffer().String())

	typeKeys(e, "u")
	assert.Equal(t, "abc", e.Buffer().String())
}
