package present

import (
	"fmt"
	"strings"

	"dais/internal/input"
	"dais/internal/text"
	"dais/internal/theme"
)

// modalKind is the overlay currently shown, if any.
type modalKind int

const (
	modalNone modalKind = iota
	modalIndex
	modalBindings
)

// toggle switches a modal on, or off when it is already showing.
func (m modalKind) toggle(kind modalKind) modalKind {
	if m == kind {
		return modalNone
	}
	return kind
}

// maxModalRows bounds a modal's content height.
const maxModalRows = 16

// indexModal builds the slide index overlay: every slide title with
// the current one highlighted, windowed around it when the deck is
// long.
func indexModal(titles []string, current int, th *theme.Theme) []text.Line {
	content := make([]text.Line, 0, len(titles))
	for i, title := range titles {
		if title == "" {
			title = "(untitled)"
		}
		label := fmt.Sprintf("%2d  %s", i+1, title)
		style := text.Style{}
		if i == current {
			style = th.Modal.Selected
		}
		content = append(content, text.Styled(label, style))
	}
	content = window(content, current, maxModalRows)

	width := modalWidth(content, 24)
	return boxed(width, content, th.Modal.Border)
}

// bindingsModal builds the key bindings overlay.
func bindingsModal(entries []input.BindingEntry, th *theme.Theme) []text.Line {
	nameWidth := 0
	for _, entry := range entries {
		if len(entry.Command) > nameWidth {
			nameWidth = len(entry.Command)
		}
	}

	content := make([]text.Line, 0, len(entries)+1)
	for _, entry := range entries {
		content = append(content, text.Line{
			{Text: fmt.Sprintf("%-*s  ", nameWidth, entry.Command), Style: text.Style{Bold: true}},
			{Text: strings.Join(entry.Keys, ", ")},
		})
	}
	content = append(content, text.Line{
		{Text: fmt.Sprintf("%-*s  ", nameWidth, "go_to_slide"), Style: text.Style{Bold: true}},
		{Text: "<number>G"},
	})

	width := modalWidth(content, 32)
	return boxed(width, content, th.Modal.Border)
}

// window narrows content to at most size rows, keeping the selected
// row visible.
func window(content []text.Line, selected, size int) []text.Line {
	if len(content) <= size {
		return content
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	if start+size > len(content) {
		start = len(content) - size
	}
	return content[start : start+size]
}

// modalWidth sizes a modal to its widest line, bounded below.
func modalWidth(content []text.Line, minimum int) int {
	width := minimum
	for _, line := range content {
		if w := line.Width() + 4; w > width {
			width = w
		}
	}
	return width
}
