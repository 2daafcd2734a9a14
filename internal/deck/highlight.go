package deck

import (
	"dais/internal/snippet"
	"dais/internal/text"
)

// HighlightState tracks which highlight group of a code block is
// active. It is shared between the block's render operation and the
// mutator that cycles it.
type HighlightState struct {
	groups  []snippet.HighlightGroup
	current int
}

// NewHighlightState starts a state at the first group.
func NewHighlightState(groups []snippet.HighlightGroup) *HighlightState {
	return &HighlightState{groups: groups}
}

// Current returns the active group.
func (s *HighlightState) Current() snippet.HighlightGroup {
	return s.groups[s.current]
}

// Index returns the active group's position.
func (s *HighlightState) Index() int {
	return s.current
}

// Len returns the number of groups.
func (s *HighlightState) Len() int {
	return len(s.groups)
}

// HighlightMutator cycles a highlight state as a slide's chunk mutator,
// consuming navigation steps while groups remain.
type HighlightMutator struct {
	state *HighlightState
}

// NewHighlightMutator creates a mutator over the given state.
func NewHighlightMutator(state *HighlightState) *HighlightMutator {
	return &HighlightMutator{state: state}
}

// Next advances to the following group. Returns false at the last one.
func (m *HighlightMutator) Next() bool {
	if m.state.current+1 >= len(m.state.groups) {
		return false
	}
	m.state.current++
	return true
}

// Previous steps back to the preceding group. Returns false at the
// first one.
func (m *HighlightMutator) Previous() bool {
	if m.state.current == 0 {
		return false
	}
	m.state.current--
	return true
}

// Reset jumps to the first group.
func (m *HighlightMutator) Reset() {
	m.state.current = 0
}

// ApplyAll jumps to the last group.
func (m *HighlightMutator) ApplyAll() {
	m.state.current = len(m.state.groups) - 1
}

// HighlightedCode renders a code block whose lines switch between a
// highlighted and a dimmed variant depending on the active highlight
// group.
type HighlightedCode struct {
	state       *HighlightState
	highlighted []text.Line
	dimmed      []text.Line
	width       int
	background  text.Color
	alignment   Alignment
}

// NewHighlightedCode creates the block operation. The dimmed slice may
// be nil when every group covers all lines.
func NewHighlightedCode(state *HighlightState, highlighted, dimmed []text.Line, width int, background text.Color, alignment Alignment) *HighlightedCode {
	return &HighlightedCode{
		state:       state,
		highlighted: highlighted,
		dimmed:      dimmed,
		width:       width,
		background:  background,
		alignment:   alignment,
	}
}

func (*HighlightedCode) isOperation() {}

// Operations emits one block line per code line, dimming the lines
// outside the active group.
func (o *HighlightedCode) Operations(size WindowSize) []Operation {
	group := o.state.Current()
	ops := make([]Operation, 0, len(o.highlighted))
	for i, line := range o.highlighted {
		if !group.Contains(i+1) && i < len(o.dimmed) {
			line = o.dimmed[i]
		}
		ops = append(ops, BlockLine{
			Line:       line,
			Width:      o.width,
			Alignment:  o.alignment,
			Background: o.background,
		})
	}
	return ops
}
