package menu

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipqture/internal/history"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want string
	}{
		{"trims", "  hello  ", Options{MaxLineLength: 150}, "hello"},
		{"keeps newlines when not compact", "a\nb", Options{MaxLineLength: 150}, "a\nb"},
		{"compact collapses newlines", "a\nb", Options{MaxLineLength: 150, Compact: true}, "a b"},
		{"compact collapses runs", "a \t\n\n  b   c", Options{MaxLineLength: 150, Compact: true}, "a b c"},
		{"compact collapses unicode spaces", "a\v\u00a0b\u2028c\u3000d", Options{MaxLineLength: 150, Compact: true}, "a b c d"},
		{"truncates long text", "abcdefghij", Options{MaxLineLength: 4}, "abcd..."},
		{"exact length not truncated", "abcd", Options{MaxLineLength: 4}, "abcd"},
		{"truncation is trimmed", "ab  cdefgh", Options{MaxLineLength: 4}, "ab..."},
		{"length counts runes", "ééééé", Options{MaxLineLength: 4}, "éééé..."},
		{"zero length disables truncation", strings.Repeat("x", 500), Options{}, strings.Repeat("x", 500)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Label(tc.text, tc.opts))
		})
	}
}

func TestLabelLengthUsesOriginalText(t *testing.T) {
	// 6 runes once trimmed but 10 before, so it is cut
	text := "  abcdef  "
	assert.Equal(t, "abcde...", Label(text, Options{MaxLineLength: 5}))
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil, Options{MaxLineLength: 150}, nil, nil)

	require.Len(t, m.Items, 1)
	it := m.Items[0]
	assert.Equal(t, EmptyLabel, it.Label)
	assert.True(t, it.Disabled)
	assert.Equal(t, history.Icon(EmptyIcon), it.Icon)
	assert.Nil(t, it.Activate)
}

func TestBuildEntries(t *testing.T) {
	long := strings.Repeat("y", 200)
	entries := []history.Entry{
		{Text: "first", Icon: history.ThemeIcon("edit-copy")},
		{Text: long},
	}

	var selected []string
	cleared := 0
	m := Build(entries, Options{MaxLineLength: 150, Compact: true},
		func(text string) { selected = append(selected, text) },
		func() { cleared++ },
	)

	require.Len(t, m.Items, 4)
	assert.Equal(t, "first", m.Items[0].Label)
	assert.Equal(t, history.Icon(history.ThemeIcon("edit-copy")), m.Items[0].Icon)
	assert.Equal(t, strings.Repeat("y", 150)+Ellipsis, m.Items[1].Label)
	assert.Equal(t, long, m.Items[1].Text)
	assert.True(t, m.Items[2].Separator)
	assert.Equal(t, ClearLabel, m.Items[3].Label)
	assert.Equal(t, history.Icon(ClearIcon), m.Items[3].Icon)

	m.Items[1].Activate()
	m.Items[0].Activate()
	assert.Equal(t, []string{long, "first"}, selected, "selection writes the full text")

	m.Items[3].Activate()
	assert.Equal(t, 1, cleared)
}

func TestBuildAfterClearShowsPlaceholder(t *testing.T) {
	s := history.New(10)
	s.Record("a", nil)
	s.Record("b", nil)

	m := Build(s.Entries(), Options{MaxLineLength: 150}, nil, s.Clear)
	m.Items[len(m.Items)-1].Activate()

	m = Build(s.Entries(), Options{MaxLineLength: 150}, nil, s.Clear)
	assert.Equal(t, []string{EmptyLabel}, m.Labels())
}

func TestLabels(t *testing.T) {
	m := Build([]history.Entry{{Text: "a"}, {Text: "b"}}, Options{}, nil, nil)
	assert.Equal(t, []string{"a", "b", ClearLabel}, m.Labels())
}

func TestLogPresenter(t *testing.T) {
	p := NewLogPresenter()
	_, ok := p.Last()
	assert.False(t, ok)

	p.Show(Build(nil, Options{}, nil, nil))
	last, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, []string{EmptyLabel}, last.Labels())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.NoError(t, p.Run(ctx))
}
