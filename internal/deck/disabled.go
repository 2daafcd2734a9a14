package deck

import "dais/internal/text"

const executionDisabledNotice = "snippet execution is disabled, run with -x to enable it"

// ExecutionDisabled stands in for an executable snippet's run operation
// when snippet execution is globally off. Triggering it reveals a
// notice instead of running anything.
type ExecutionDisabled struct {
	style text.Style
	shown bool
}

// NewExecutionDisabled creates the operation with the notice hidden.
func NewExecutionDisabled(style text.Style) *ExecutionDisabled {
	return &ExecutionDisabled{style: style}
}

func (*ExecutionDisabled) isOperation() {}

// Start reveals the notice. True on the first call only.
func (o *ExecutionDisabled) Start() bool {
	if o.shown {
		return false
	}
	o.shown = true
	return true
}

// Poll reports the operation as rendered; there is nothing to produce.
func (o *ExecutionDisabled) Poll() AsyncState {
	return AsyncState{Phase: PhaseRendered}
}

// Operations renders the notice once it has been revealed.
func (o *ExecutionDisabled) Operations(size WindowSize) []Operation {
	if !o.shown {
		return nil
	}
	return []Operation{StyledLine{Line: text.Styled(executionDisabledNotice, o.style)}}
}
