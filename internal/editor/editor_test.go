package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/clipboard"
	"github.com/zjrosen/videre/internal/register"
)

// newTestEditor creates an editor over content with default options.
func newTestEditor(content string) *Editor {
	return New(buffer.New(content), register.NewManager(), DefaultOptions())
}

// typeKeys sends each rune of s as its own key.
func typeKeys(e *Editor, s string) {
	for _, r := range s {
		e.HandleInput(Key(string(r)))
	}
}

func TestClampCursorToBufferForRender(t *testing.T) {
	tests := []struct {
		name    string
		content string
		at      buffer.Position
		want    buffer.Position
	}{
		{"single line past end", "only", buffer.Pos(10, 10), buffer.Pos(0, 3)},
		{"trailing empty line", "one\ntwo\n", buffer.Pos(99, 50), buffer.Pos(2, 0)},
		{"empty buffer", "", buffer.Pos(3, 3), buffer.Pos(0, 0)},
		{"already valid", "abc\ndef", buffer.Pos(1, 1), buffer.Pos(1, 1)},
		{"negative", "abc", buffer.Pos(-1, -5), buffer.Pos(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(tt.content)
			e.SetCursor(tt.at)
			e.cursor.PreferredColumn = 42

			e.ClampCursorToBufferForRender()

			assert.Equal(t, tt.want, e.Cursor().Position)
			assert.Equal(t, tt.want.Column, e.Cursor().PreferredColumn)
		})
	}
}

func TestClampCursorForInsert_AllowsEndOfLine(t *testing.T) {
	e := newTestEditor("abc")
	e.SetCursor(buffer.Pos(0, 10))
	e.ClampCursorForInsert()
	assert.Equal(t, buffer.Pos(0, 3), e.Cursor().Position)
}

func TestMoveCursorDown_StopsAtLastLine(t *testing.T) {
	e := newTestEditor("one\ntwo")
	e.SetCursor(buffer.Pos(1, 0))

	e.MoveCursorDown(1)
	assert.Equal(t, 1, e.Cursor().Position.Line)

	e.MoveCursorDown(100)
	assert.Equal(t, buffer.Pos(1, 0), e.Cursor().Position)
}

func TestMoveCursorDown_LargeCountClamps(t *testing.T) {
	e := newTestEditor("a\nb\nc")
	e.MoveCursorDown(50)
	assert.Equal(t, 2, e.Cursor().Position.Line)

	e.MoveCursorUp(50)
	assert.Equal(t, 0, e.Cursor().Position.Line)
}

func TestVerticalMovement_KeepsPreferredColumn(t *testing.T) {
	e := newTestEditor("long line\nab\nlong line")
	e.MoveCursorTo(buffer.Pos(0, 7))

	e.MoveCursorDown(1)
	assert.Equal(t, buffer.Pos(1, 1), e.Cursor().Position)
	assert.Equal(t, 7, e.Cursor().PreferredColumn)

	e.MoveCursorDown(1)
	assert.Equal(t, buffer.Pos(2, 7), e.Cursor().Position)

	e.MoveCursorLeft(1)
	assert.Equal(t, 6, e.Cursor().PreferredColumn)
}

func TestMoveCursorRight_StopsAtLastScalar(t *testing.T) {
	e := newTestEditor("abc")
	e.MoveCursorRight(10)
	assert.Equal(t, buffer.Pos(0, 2), e.Cursor().Position)

	e.MoveCursorLeft(10)
	assert.Equal(t, buffer.Pos(0, 0), e.Cursor().Position)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "INSERT", ModeInsert.String())
	assert.Equal(t, "VISUAL", ModeVisual.String())
	assert.Equal(t, "VISUAL LINE", ModeVisualLine.String())
	assert.Equal(t, "VISUAL BLOCK", ModeVisualBlock.String())
	assert.Equal(t, "UNKNOWN", Mode(99).String())
	assert.True(t, ModeVisualBlock.IsVisual())
	assert.False(t, ModeInsert.IsVisual())
}

func TestUndoRedo(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, "x")
	require.Equal(t, "bc", e.Buffer().String())

	require.True(t, e.Undo())
	assert.Equal(t, "abc", e.Buffer().String())

	require.True(t, e.Redo())
	assert.Equal(t, "bc", e.Buffer().String())

	assert.False(t, e.Redo())
}

func TestUndo_NewChangeClearsRedo(t *testing.T) {
	e := newTestEditor("abc")
	typeKeys(e, "x")
	e.Undo()
	typeKeys(e, "$x")
	assert.Equal(t, "ab", e.Buffer().String())
	assert.False(t, e.Redo())
}

func TestUndo_LevelsAreBounded(t *testing.T) {
	e := New(buffer.New("abcdef"), nil, Options{UndoLevels: 2})
	typeKeys(e, "xxxx")
	require.Equal(t, "ef", e.Buffer().String())

	assert.True(t, e.Undo())
	assert.True(t, e.Undo())
	assert.False(t, e.Undo())
	assert.Equal(t, "cdef", e.Buffer().String())
}

func TestReplaceBuffer(t *testing.T) {
	e := newTestEditor("one\ntwo\nthree")
	e.MoveCursorTo(buffer.Pos(2, 3))

	e.ReplaceBuffer(buffer.New("x"))
	assert.Equal(t, buffer.Pos(0, 0), e.Cursor().Position)

	require.True(t, e.Undo())
	assert.Equal(t, "one\ntwo\nthree", e.Buffer().String())
}

func TestSyncClipboard_CopiesYanks(t *testing.T) {
	clip := &clipboard.Mock{}
	regs := register.NewManager(register.WithClipboard(clip))
	e := New(buffer.New("hello\nworld"), regs, Options{SyncClipboard: true})

	typeKeys(e, "yy")
	assert.Equal(t, "hello", clip.Text)

	typeKeys(e, "jdd")
	assert.Equal(t, "hello", clip.Text, "deletes are not synced")
}

// Any key sequence leaves the editor with a valid buffer and, after the
// render clamp, a cursor on an existing cell.
func TestEditor_RandomKeysProperty(t *testing.T) {
	keys := []Key{
		"h", "j", "k", "l", "w", "b", "e", "0", "$", "^", "G", "g", "{", "}",
		"x", "d", "y", "c", "p", "P", "u", KeyCtrlR, "J", "D", "C", `"`, "a", "A",
		"i", "I", "o", "O", "v", "V", KeyCtrlV, "2", "3", "q", " ", "z",
		"W", "B", "E", "%", "f", "t", "F", ";", ",", "n", "N", "m", "'", "Z",
		">", "<", "~", "U", "(", ")", KeyCtrlA, KeyCtrlX, "9",
		KeyEscape, KeyCtrlC, KeyEnter, KeyBackspace, KeyTab, KeyDelete,
		KeyLeft, KeyRight, KeyUp, KeyDown,
	}

	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z .]{0,8}`), 1, 5).Draw(t, "lines")
		e := New(buffer.FromLines(lines), nil, DefaultOptions())
		seq := rapid.SliceOfN(rapid.SampledFrom(keys), 1, 60).Draw(t, "keys")

		for _, k := range seq {
			e.HandleInput(k)
			if e.Buffer().LineCount() < 1 {
				t.Fatal("buffer has no lines")
			}
			if e.Mode() == ModeInsert {
				continue
			}
			e.ClampCursorToBufferForRender()
			p := e.Cursor().Position
			if p.Line < 0 || p.Line >= e.Buffer().LineCount() {
				t.Fatalf("line %d out of range after %q", p.Line, k)
			}
			if p.Column < 0 || p.Column > max(e.Buffer().LineLength(p.Line)-1, 0) {
				t.Fatalf("column %d out of range after %q", p.Column, k)
			}
			if e.Cursor().PreferredColumn != p.Column {
				t.Fatalf("preferred column %d != %d", e.Cursor().PreferredColumn, p.Column)
			}
		}
	})
}
