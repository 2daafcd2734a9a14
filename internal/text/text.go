// Package text defines the styled text model shared by the renderer:
// spans of text tagged with terminal attributes, grouped into lines.
package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color is a terminal color in lipgloss notation: "0".."15" for ANSI
// colors, "16".."255" for the extended palette, "#rrggbb" for true color.
// The empty string means the terminal default.
type Color string

// IsSet returns true if the color is not the terminal default.
func (c Color) IsSet() bool {
	return c != ""
}

// Style describes the terminal attributes of a span of text.
// The zero value is unstyled text.
type Style struct {
	Foreground    Color
	Background    Color
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Reverse       bool
}

// IsZero returns true if the style carries no attributes.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Lipgloss converts the style for rendering.
func (s Style) Lipgloss() lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.Foreground.IsSet() {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background.IsSet() {
		style = style.Background(lipgloss.Color(s.Background))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Dim {
		style = style.Faint(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Strikethrough {
		style = style.Strikethrough(true)
	}
	if s.Reverse {
		style = style.Reverse(true)
	}
	return style
}

// Span is a run of text rendered with a single style.
type Span struct {
	Text  string
	Style Style
}

// Width returns the number of terminal cells the span occupies.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

// Line is a single row of styled spans.
type Line []Span

// Plain builds an unstyled line from a string.
func Plain(text string) Line {
	if text == "" {
		return Line{}
	}
	return Line{{Text: text}}
}

// Styled builds a line with a single styled span.
func Styled(text string, style Style) Line {
	return Line{{Text: text, Style: style}}
}

// Width returns the number of terminal cells the line occupies.
func (l Line) Width() int {
	total := 0
	for _, s := range l {
		total += s.Width()
	}
	return total
}

// String returns the line content without styling.
func (l Line) String() string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Render returns the line with ANSI styling applied.
func (l Line) Render() string {
	var sb strings.Builder
	for _, s := range l {
		if s.Style.IsZero() {
			sb.WriteString(s.Text)
			continue
		}
		sb.WriteString(s.Style.Lipgloss().Render(s.Text))
	}
	return sb.String()
}

// ApplyStyle returns a copy of the line with every span restyled.
func (l Line) ApplyStyle(style Style) Line {
	out := make(Line, len(l))
	for i, s := range l {
		out[i] = Span{Text: s.Text, Style: style}
	}
	return out
}

// Wrap splits the line into rows of at most width cells, breaking on
// spaces where possible. A non-positive width returns the line as is.
func (l Line) Wrap(width int) []Line {
	if width <= 0 || l.Width() <= width {
		return []Line{l}
	}

	var rows []Line
	var row Line
	rowWidth := 0

	flush := func() {
		rows = append(rows, row)
		row = nil
		rowWidth = 0
	}

	for _, span := range l {
		for _, word := range splitWords(span.Text) {
			w := runewidth.StringWidth(word)
			if rowWidth > 0 && rowWidth+w > width {
				flush()
				if word == " " {
					continue
				}
			}
			// Hard-break words wider than a full row.
			for w > width {
				head, tail := truncateRunes(word, width-rowWidth)
				row = append(row, Span{Text: head, Style: span.Style})
				flush()
				word = tail
				w = runewidth.StringWidth(word)
			}
			if word == "" {
				continue
			}
			row = append(row, Span{Text: word, Style: span.Style})
			rowWidth += w
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = []Line{{}}
	}
	return rows
}

// splitWords splits text into alternating words and single-space runs,
// preserving every character.
func splitWords(text string) []string {
	var parts []string
	start := 0
	for i, r := range text {
		if r == ' ' {
			if start < i {
				parts = append(parts, text[start:i])
			}
			parts = append(parts, " ")
			start = i + 1
		}
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// truncateRunes splits text so the head occupies at most width cells.
func truncateRunes(text string, width int) (head, tail string) {
	if width <= 0 {
		return "", text
	}
	used := 0
	for i, r := range text {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			return text[:i], text[i:]
		}
		used += w
	}
	return text, ""
}
