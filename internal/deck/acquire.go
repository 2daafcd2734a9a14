package deck

import (
	"dais/internal/exec"
	"dais/internal/snippet"
	"dais/internal/text"
)

// TerminalSuspender releases and reacquires the managed terminal
// session around a snippet that needs the real terminal.
type TerminalSuspender interface {
	Suspend() error
	Resume() error
}

// RunAcquireTerminal runs a snippet synchronously with exclusive use of
// the terminal. The first Start suspends the session, runs the snippet
// to completion and restores the session unconditionally; the operation
// is settled afterwards. It must only run from the presenter tick,
// never concurrently with other terminal-mode changes.
type RunAcquireTerminal struct {
	snippet  *snippet.Snippet
	executor exec.SnippetExecutor
	terminal TerminalSuspender
	style    ExecStyle

	started bool
	failure []text.Line
}

// NewRunAcquireTerminal creates the operation in the not-run state.
func NewRunAcquireTerminal(s *snippet.Snippet, executor exec.SnippetExecutor, terminal TerminalSuspender, style ExecStyle) *RunAcquireTerminal {
	return &RunAcquireTerminal{
		snippet:  s,
		executor: executor,
		terminal: terminal,
		style:    style,
	}
}

func (*RunAcquireTerminal) isOperation() {}

// Start runs the snippet once. A restore failure supersedes whatever
// the snippet itself did. Failures become the operation's rendered
// content.
func (o *RunAcquireTerminal) Start() bool {
	if o.started {
		return false
	}
	o.started = true

	if err := o.terminal.Suspend(); err != nil {
		o.failure = errorLines(err)
		return true
	}
	runErr := o.executor.ExecuteSync(o.snippet)
	if err := o.terminal.Resume(); err != nil {
		o.failure = errorLines(err)
		return true
	}
	if runErr != nil {
		o.failure = errorLines(runErr)
	}
	return true
}

// Poll reports the operation as rendered; all its work happens inside
// Start.
func (o *RunAcquireTerminal) Poll() AsyncState {
	return AsyncState{Phase: PhaseRendered}
}

// Operations renders nothing unless the run failed; the snippet's own
// output went to the real terminal.
func (o *RunAcquireTerminal) Operations(size WindowSize) []Operation {
	if o.failure == nil {
		return nil
	}

	ops := []Operation{
		Separator{Heading: text.Styled("finished with error", o.style.Failure), Width: MinSeparatorWidth},
		LineBreak{},
	}
	for _, line := range o.failure {
		ops = append(ops, StyledLine{Line: line.ApplyStyle(o.style.Failure)})
	}
	return ops
}
