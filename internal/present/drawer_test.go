package present

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dais/internal/deck"
	"dais/internal/text"
	"dais/internal/theme"
)

func TestMain(m *testing.M) {
	// Color support is autodetected from the environment and degrades
	// to plain text in a headless run; pin it so rendering assertions
	// see the same escape output everywhere.
	lipgloss.SetColorProfile(termenv.TrueColor)
	os.Exit(m.Run())
}

func testDrawer(t *testing.T) *Drawer {
	t.Helper()

	th, err := theme.ByName("dark")
	require.NoError(t, err)
	return NewDrawer(th)
}

func TestFrameRendersSlideAndFooter(t *testing.T) {
	t.Parallel()

	d := testDrawer(t)
	presentation := deck.NewPresentation([]*deck.Slide{
		textSlide("", "hello there"),
		textSlide("", "unseen"),
	})

	frame := d.Frame(presentation, deck.WindowSize{Columns: 80, Rows: 24}, nil)
	assert.Contains(t, frame, "hello there")
	assert.Contains(t, frame, "1 / 2")
	assert.NotContains(t, frame, "unseen")
}

func TestFrameClipsOverflow(t *testing.T) {
	t.Parallel()

	ops := make([]deck.Operation, 0, 30)
	for i := 0; i < 30; i++ {
		ops = append(ops, deck.StyledLine{Line: text.Plain("row")})
	}
	presentation := deck.NewPresentation([]*deck.Slide{deck.NewSlide("", ops, nil)})

	frame := testDrawer(t).Frame(presentation, deck.WindowSize{Columns: 40, Rows: 10}, nil)
	assert.Equal(t, 8, strings.Count(frame, "row"))
}

func TestFrameDrawsModalOverlay(t *testing.T) {
	t.Parallel()

	presentation := deck.NewPresentation([]*deck.Slide{textSlide("", "content")})
	modal := boxed(20, []text.Line{text.Plain("modal body")}, text.Style{})

	frame := testDrawer(t).Frame(presentation, deck.WindowSize{Columns: 80, Rows: 24}, modal)
	assert.Contains(t, frame, "modal body")
	assert.Contains(t, frame, boxTopLeft)
}

func TestFlattenExpandsDynamicOperations(t *testing.T) {
	t.Parallel()

	ops := flatten([]deck.Operation{
		deck.Separator{Heading: text.Plain("running")},
		deck.LineBreak{},
	}, deck.WindowSize{Columns: 40, Rows: 10})

	require.Len(t, ops, 2)
	styled, ok := ops[0].(deck.StyledLine)
	require.True(t, ok, "separator must flatten to a styled line")
	assert.Contains(t, styled.Line.String(), "running")
}

func TestRenderBlockLinePadsAndFillsBackground(t *testing.T) {
	t.Parallel()

	row := renderBlockLine(deck.BlockLine{
		Line:       text.Plain("out"),
		Width:      10,
		Background: "#101010",
	}, deck.WindowSize{Columns: 80, Rows: 24})

	assert.Contains(t, row, "out")
	// The fill up to the block width carries the background color.
	assert.Contains(t, row, "48;2;16;16;16")
}

func TestLeftMargin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		alignment deck.Alignment
		width     int
		columns   int
		want      int
	}{
		{name: "left", alignment: deck.Alignment{Margin: 3}, width: 10, columns: 80, want: 3},
		{name: "centered", alignment: deck.Alignment{Center: true}, width: 20, columns: 80, want: 30},
		{name: "centered with minimum margin", alignment: deck.Alignment{Center: true, Margin: 40}, width: 20, columns: 80, want: 40},
		{name: "centered wider than window", alignment: deck.Alignment{Center: true}, width: 100, columns: 80, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, leftMargin(tt.alignment, tt.width, tt.columns))
		})
	}
}

func TestFitLine(t *testing.T) {
	t.Parallel()

	padded := fitLine(text.Plain("ab"), 5)
	assert.Equal(t, 5, padded.Width())
	assert.Equal(t, "ab   ", padded.String())

	truncated := fitLine(text.Plain("abcdefgh"), 4)
	assert.Equal(t, "abcd", truncated.String())
}

func TestBoxed(t *testing.T) {
	t.Parallel()

	lines := boxed(12, []text.Line{text.Plain("hi")}, text.Style{})
	require.Len(t, lines, 3)
	assert.Equal(t, 12, lines[0].Width())
	assert.Equal(t, 12, lines[1].Width())
	assert.Contains(t, lines[1].String(), "hi")

	assert.Nil(t, boxed(3, nil, text.Style{}))
}
