package present

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"dais/internal/text"
)

// Box drawing characters.
const (
	boxTopLeft     = "┌"
	boxTopRight    = "┐"
	boxBottomLeft  = "└"
	boxBottomRight = "┘"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// boxed frames the content lines in a border, padding or truncating
// each line to the inner width. The border carries the given style.
func boxed(width int, content []text.Line, border text.Style) []text.Line {
	if width < 4 {
		return nil
	}

	inner := width - 4
	top := text.Styled(boxTopLeft+strings.Repeat(boxHorizontal, width-2)+boxTopRight, border)
	bottom := text.Styled(boxBottomLeft+strings.Repeat(boxHorizontal, width-2)+boxBottomRight, border)
	edge := text.Span{Text: boxVertical, Style: border}

	lines := make([]text.Line, 0, len(content)+2)
	lines = append(lines, top)
	for _, line := range content {
		row := text.Line{edge, {Text: " "}}
		row = append(row, fitLine(line, inner)...)
		row = append(row, text.Span{Text: " "}, edge)
		lines = append(lines, row)
	}
	lines = append(lines, bottom)
	return lines
}

// fitLine pads or truncates a styled line to exactly width cells.
func fitLine(line text.Line, width int) text.Line {
	if width <= 0 {
		return text.Line{}
	}

	var out text.Line
	used := 0
	for _, span := range line {
		w := span.Width()
		if used+w <= width {
			out = append(out, span)
			used += w
			continue
		}
		out = append(out, text.Span{Text: truncateCells(span.Text, width-used), Style: span.Style})
		used = width
		break
	}
	if used < width {
		out = append(out, text.Span{Text: strings.Repeat(" ", width-used)})
	}
	return out
}

// truncateCells cuts a string to at most width terminal cells.
func truncateCells(s string, width int) string {
	used := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			return s[:i]
		}
		used += w
	}
	return s
}
