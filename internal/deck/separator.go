package deck

import (
	"strings"

	"dais/internal/text"
)

// MinSeparatorWidth is the narrowest a separator is drawn, so short
// output blocks still get a visible rule.
const MinSeparatorWidth = 32

const separatorDash = "—"

// Separator renders a horizontal rule with an optional heading centered
// in it. A zero Width fits the rule to the window.
type Separator struct {
	Heading   text.Line
	Width     int
	Alignment Alignment
}

func (Separator) isOperation() {}

// Operations builds the rule against the current window size.
func (s Separator) Operations(size WindowSize) []Operation {
	width := s.Width
	if width == 0 || width > size.Columns {
		width = size.Columns
	}

	line := s.compose(width)
	return []Operation{StyledLine{Line: line, Alignment: s.Alignment}}
}

func (s Separator) compose(width int) text.Line {
	headingWidth := s.Heading.Width()
	if headingWidth == 0 {
		return text.Plain(strings.Repeat(separatorDash, max(width, 0)))
	}
	if headingWidth+2 >= width {
		return s.Heading
	}

	left := (width - headingWidth - 2) / 2
	right := width - headingWidth - 2 - left

	line := text.Line{{Text: strings.Repeat(separatorDash, left) + " "}}
	line = append(line, s.Heading...)
	line = append(line, text.Span{Text: " " + strings.Repeat(separatorDash, right)})
	return line
}
