package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dais/internal/text"
)

func splitAll(t *testing.T, chunks ...string) []text.Line {
	t.Helper()

	s := NewSplitter(text.Style{})
	var lines []text.Line
	for _, c := range chunks {
		lines = append(lines, s.Split([]byte(c))...)
	}
	if tail, ok := s.Flush(); ok {
		lines = append(lines, tail)
	}
	return lines
}

func TestSplitterChunkBoundaryRoundTrip(t *testing.T) {
	t.Parallel()

	whole := splitAll(t, "\x1b[31mfoobar\x1b[0m\n")
	split := splitAll(t, "\x1b[31mfoo", "bar\x1b[0m\n")

	require.Len(t, whole, 1)
	assert.Equal(t, whole, split)
	assert.Equal(t, "foobar", whole[0].String())
	assert.Equal(t, text.Color("1"), whole[0][0].Style.Foreground)
}

func TestSplitterCarriesStyleAcrossLines(t *testing.T) {
	t.Parallel()

	s := NewSplitter(text.Style{})
	lines := s.Split([]byte("\x1b[1mbold\nstill bold\x1b[0m\n"))

	require.Len(t, lines, 2)
	assert.True(t, lines[0][0].Style.Bold)
	assert.True(t, lines[1][0].Style.Bold)
	assert.Equal(t, text.Style{}, s.Style())
}

func TestSplitterOpenStyleReported(t *testing.T) {
	t.Parallel()

	s := NewSplitter(text.Style{})
	s.Split([]byte("\x1b[32m\x1b[4mgreen\n"))

	want := text.Style{Foreground: "2", Underline: true}
	assert.Equal(t, want, s.Style())
}

func TestSplitterStartingStyle(t *testing.T) {
	t.Parallel()

	start := text.Style{Foreground: "5", Italic: true}
	s := NewSplitter(start)
	lines := s.Split([]byte("carried\n"))

	require.Len(t, lines, 1)
	assert.Equal(t, start, lines[0][0].Style)
}

func TestSplitterPartialEscapeAcrossChunks(t *testing.T) {
	t.Parallel()

	s := NewSplitter(text.Style{})
	assert.Empty(t, s.Split([]byte("\x1b[3")))
	lines := s.Split([]byte("1mred\n"))

	require.Len(t, lines, 1)
	assert.Equal(t, "red", lines[0].String())
	assert.Equal(t, text.Color("1"), lines[0][0].Style.Foreground)
}

func TestSplitterPartialRuneAcrossChunks(t *testing.T) {
	t.Parallel()

	encoded := []byte("héllo\n")
	s := NewSplitter(text.Style{})
	assert.Empty(t, s.Split(encoded[:2]))
	lines := s.Split(encoded[2:])

	require.Len(t, lines, 1)
	assert.Equal(t, "héllo", lines[0].String())
}

func TestSplitterColors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  text.Style
	}{
		{
			name:  "basic foreground",
			input: "\x1b[34mx\n",
			want:  text.Style{Foreground: "4"},
		},
		{
			name:  "bright foreground",
			input: "\x1b[91mx\n",
			want:  text.Style{Foreground: "9"},
		},
		{
			name:  "palette foreground",
			input: "\x1b[38;5;208mx\n",
			want:  text.Style{Foreground: "208"},
		},
		{
			name:  "rgb foreground",
			input: "\x1b[38;2;255;0;128mx\n",
			want:  text.Style{Foreground: "#ff0080"},
		},
		{
			name:  "background and attributes",
			input: "\x1b[1;9;42mx\n",
			want:  text.Style{Bold: true, Strikethrough: true, Background: "2"},
		},
		{
			name:  "colon separated rgb",
			input: "\x1b[38:2:16:32:48mx\n",
			want:  text.Style{Foreground: "#102030"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := splitAll(t, tt.input)
			require.Len(t, lines, 1)
			require.Len(t, lines[0], 1)
			assert.Equal(t, tt.want, lines[0][0].Style)
		})
	}
}

func TestSplitterDropsNonStyleSequences(t *testing.T) {
	t.Parallel()

	lines := splitAll(t, "\x1b[2Jclean\x1b]0;title\x07 text\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "clean text", lines[0].String())
}

func TestSplitterControlCharacters(t *testing.T) {
	t.Parallel()

	lines := splitAll(t, "a\tb\r\nnext\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a    b", lines[0].String())
	assert.Equal(t, "next", lines[1].String())
}

func TestSplitterFlushPartialLine(t *testing.T) {
	t.Parallel()

	s := NewSplitter(text.Style{})
	assert.Empty(t, s.Split([]byte("no newline")))

	tail, ok := s.Flush()
	require.True(t, ok)
	assert.Equal(t, "no newline", tail.String())

	_, ok = s.Flush()
	assert.False(t, ok)
}

func TestSplitterEmptyLines(t *testing.T) {
	t.Parallel()

	lines := splitAll(t, "one\n\ntwo\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "one", lines[0].String())
	assert.Empty(t, lines[1].String())
	assert.Equal(t, "two", lines[2].String())
}
