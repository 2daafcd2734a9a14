package snippet

import (
	"fmt"
	"strings"
)

const tabWidth = 4

// DisplayLines returns the snippet body as it appears inside the
// rendered code block: hidden lines removed and tabs expanded. Line
// numbering stays with the renderer, which styles the numbers apart
// from the code.
func (s *Snippet) DisplayLines(hiddenPrefix string) []string {
	lines := s.VisibleLines(hiddenPrefix)
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	}
	return lines
}

// NumberPadder right-aligns line numbers against the widest one.
type NumberPadder struct {
	width int
}

// NewNumberPadder sizes the padder for numbers up to max.
func NewNumberPadder(max int) NumberPadder {
	return NumberPadder{width: len(fmt.Sprint(max))}
}

// Format renders one right-aligned line number with a trailing space.
func (p NumberPadder) Format(n int) string {
	return fmt.Sprintf("%*d ", p.width, n)
}
