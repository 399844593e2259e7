package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/videre/internal/register"
)

func TestFromRegisters_SortedWithKinds(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := map[rune]register.Content{
		'b': register.Lines{"one", "two"},
		'a': register.Characters("word"),
	}

	dtos := FromRegisters(snap, func(name rune) (time.Time, bool) {
		return ts, name == 'a'
	})

	require.Len(t, dtos, 2)
	require.Equal(t, "a", dtos[0].Name)
	require.Equal(t, "chars", dtos[0].Kind)
	require.Equal(t, "word", dtos[0].Text)
	require.Nil(t, dtos[0].Lines)
	require.NotNil(t, dtos[0].UpdatedAt)
	require.True(t, ts.Equal(*dtos[0].UpdatedAt))

	require.Equal(t, "b", dtos[1].Name)
	require.Equal(t, "lines", dtos[1].Kind)
	require.Equal(t, "one\ntwo", dtos[1].Text)
	require.Equal(t, []string{"one", "two"}, dtos[1].Lines)
	require.Nil(t, dtos[1].UpdatedAt)
}

func TestFromRegisters_NilClock(t *testing.T) {
	dtos := FromRegisters(map[rune]register.Content{'"': register.Characters("x")}, nil)
	require.Len(t, dtos, 1)
	require.Nil(t, dtos[0].UpdatedAt)
}

func TestFormatRegisters_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatRegisters([]RegisterDTO{{Name: "a", Kind: "chars", Text: "hi"}})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "a", got[0]["name"])
	require.NotContains(t, got[0], "lines")
	require.NotContains(t, got[0], "updated_at")
}

func TestFormatStyles(t *testing.T) {
	styles := FromStyles([]string{"dracula", "monokai"}, "monokai")

	var plain bytes.Buffer
	require.NoError(t, NewFormatter(&plain).FormatStylesPlain(styles))
	require.Equal(t, "  dracula\n* monokai\n", plain.String())

	var js bytes.Buffer
	require.NoError(t, NewFormatter(&js).FormatStyles(styles))
	require.Contains(t, js.String(), `"current": true`)
}
