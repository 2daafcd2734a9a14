package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dais/internal/text"
)

func separatorLine(t *testing.T, s Separator, size WindowSize) text.Line {
	t.Helper()
	ops := s.Operations(size)
	require.Len(t, ops, 1)
	styled, ok := ops[0].(StyledLine)
	require.True(t, ok)
	return styled.Line
}

func TestSeparatorFitsWindowWhenUnsized(t *testing.T) {
	t.Parallel()

	line := separatorLine(t, Separator{}, WindowSize{Columns: 20, Rows: 24})
	assert.Equal(t, 20, line.Width())
	assert.Equal(t, strings.Repeat("—", 20), line.String())
}

func TestSeparatorClampsToWindow(t *testing.T) {
	t.Parallel()

	line := separatorLine(t, Separator{Width: 100}, WindowSize{Columns: 40, Rows: 24})
	assert.Equal(t, 40, line.Width())
}

func TestSeparatorCentersHeading(t *testing.T) {
	t.Parallel()

	s := Separator{Heading: text.Plain("running"), Width: 33}
	line := separatorLine(t, s, WindowSize{Columns: 80, Rows: 24})

	assert.Equal(t, 33, line.Width())
	parts := strings.Split(line.String(), " running ")
	require.Len(t, parts, 2)
	left := []rune(parts[0])
	right := []rune(parts[1])
	assert.InDelta(t, len(left), len(right), 1)
}

func TestSeparatorKeepsHeadingWhenTooNarrow(t *testing.T) {
	t.Parallel()

	s := Separator{Heading: text.Plain("finished with error"), Width: 10}
	line := separatorLine(t, s, WindowSize{Columns: 80, Rows: 24})
	assert.Equal(t, "finished with error", line.String())
}

func TestSeparatorHeadingKeepsStyle(t *testing.T) {
	t.Parallel()

	style := text.Style{Foreground: "2"}
	s := Separator{Heading: text.Styled("finished", style), Width: MinSeparatorWidth}
	line := separatorLine(t, s, WindowSize{Columns: 80, Rows: 24})

	var found bool
	for _, span := range line {
		if span.Text == "finished" {
			found = true
			assert.Equal(t, style, span.Style)
		}
	}
	assert.True(t, found)
}
