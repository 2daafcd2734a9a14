package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	xansi "github.com/charmbracelet/x/ansi"

	"dais/internal/deck"
	"dais/internal/terminal"
	"dais/internal/text"
	"dais/internal/theme"
)

// Drawer paints frames: the current slide's operations, the footer and
// any modal overlay.
type Drawer struct {
	theme *theme.Theme
	bar   progress.Model
}

// NewDrawer creates a drawer for the theme.
func NewDrawer(th *theme.Theme) *Drawer {
	bar := progress.New(
		progress.WithSolidFill(string(th.Footer.Progress.Foreground)),
		progress.WithoutPercentage(),
	)
	return &Drawer{theme: th, bar: bar}
}

// Draw renders one full frame to w.
func (d *Drawer) Draw(w io.Writer, presentation *deck.Presentation, size deck.WindowSize, modal []text.Line) error {
	frame := d.Frame(presentation, size, modal)
	if _, err := io.WriteString(w, frame); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

// Frame composes the frame as one write: slide content clipped to the
// window, the footer on the last row and the modal centered on top.
func (d *Drawer) Frame(presentation *deck.Presentation, size deck.WindowSize, modal []text.Line) string {
	var sb strings.Builder
	sb.WriteString(terminal.ClearScreen + terminal.CursorHome)

	rows := renderOperations(flatten(presentation.CurrentSlide().Operations(), size), size)
	maxRows := size.Rows - 2
	for i, row := range rows {
		if i >= maxRows {
			break
		}
		sb.WriteString(row)
		sb.WriteString("\r\n")
	}

	d.renderFooter(&sb, presentation, size)
	renderModal(&sb, modal, size)
	return sb.String()
}

// flatten expands dynamic operations against the window size. Dynamic
// operations may themselves emit dynamic operations, so expansion
// recurses.
func flatten(ops []deck.Operation, size deck.WindowSize) []deck.Operation {
	var out []deck.Operation
	for _, op := range ops {
		if source, ok := op.(deck.OperationSource); ok {
			out = append(out, flatten(source.Operations(size), size)...)
			continue
		}
		out = append(out, op)
	}
	return out
}

// renderOperations turns flattened operations into terminal rows.
func renderOperations(ops []deck.Operation, size deck.WindowSize) []string {
	var rows []string
	for _, op := range ops {
		switch op := op.(type) {
		case deck.StyledLine:
			rows = append(rows, renderStyledLine(op, size)...)
		case deck.BlockLine:
			rows = append(rows, renderBlockLine(op, size))
		case deck.LineBreak:
			rows = append(rows, "")
		}
	}
	return rows
}

func renderStyledLine(op deck.StyledLine, size deck.WindowSize) []string {
	width := size.Columns - op.Alignment.Margin
	if width < 1 {
		width = 1
	}

	var rows []string
	for _, row := range op.Line.Wrap(width) {
		rows = append(rows, strings.Repeat(" ", leftMargin(op.Alignment, row.Width(), size.Columns))+row.Render())
	}
	return rows
}

func renderBlockLine(op deck.BlockLine, size deck.WindowSize) string {
	width := op.Width
	if op.Alignment.MinWidth > width {
		width = op.Alignment.MinWidth
	}

	padded := fitLine(op.Line, width)
	if op.Background.IsSet() {
		for i := range padded {
			if !padded[i].Style.Background.IsSet() {
				padded[i].Style.Background = op.Background
			}
		}
	}
	return strings.Repeat(" ", leftMargin(op.Alignment, width, size.Columns)) + padded.Render()
}

// leftMargin computes the indentation for a row of the given width.
func leftMargin(alignment deck.Alignment, width, columns int) int {
	if !alignment.Center {
		return alignment.Margin
	}
	margin := (columns - width) / 2
	if margin < alignment.Margin {
		margin = alignment.Margin
	}
	if margin < 0 {
		margin = 0
	}
	return margin
}

// renderFooter draws "current / total" and the progress bar on the
// last row.
func (d *Drawer) renderFooter(sb *strings.Builder, presentation *deck.Presentation, size deck.WindowSize) {
	current, total := presentation.CurrentIndex()+1, presentation.SlideCount()
	label := text.Styled(fmt.Sprintf("%d / %d", current, total), d.theme.Footer.Text).Render()

	sb.WriteString(terminal.CursorTo(size.Rows, 1) + terminal.ClearLine)
	sb.WriteString(" " + label)

	barWidth := size.Columns / 4
	if barWidth < 8 {
		return
	}
	bar := d.bar
	bar.Width = barWidth
	rendered := bar.ViewAs(float64(current) / float64(total))
	col := size.Columns - xansi.StringWidth(rendered)
	if col < 1 {
		return
	}
	sb.WriteString(terminal.CursorTo(size.Rows, col) + rendered)
}

// renderModal overlays the modal box in the middle of the window.
func renderModal(sb *strings.Builder, modal []text.Line, size deck.WindowSize) {
	if len(modal) == 0 {
		return
	}

	width := modal[0].Width()
	startRow := (size.Rows - len(modal)) / 2
	startCol := (size.Columns-width)/2 + 1
	if startRow < 1 {
		startRow = 1
	}
	if startCol < 1 {
		startCol = 1
	}
	for i, line := range modal {
		sb.WriteString(terminal.CursorTo(startRow+i, startCol))
		sb.WriteString(line.Render())
	}
}
