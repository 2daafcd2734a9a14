package deck

import (
	"strings"

	"dais/internal/ansi"
	"dais/internal/exec"
	"dais/internal/snippet"
	"dais/internal/text"
)

// ExecStyle is the visual treatment of execution output blocks.
type ExecStyle struct {
	NotStarted text.Style
	Running    text.Style
	Success    text.Style
	Failure    text.Style
	Background text.Color
	Padding    int
}

// RunSnippet renders a snippet execution: a separator carrying the
// execution status, followed by the output captured so far. Output is
// drained from the execution handle on every poll and split into styled
// lines, with the widest line sizing the block.
type RunSnippet struct {
	snippet      *snippet.Snippet
	executor     exec.SnippetExecutor
	style        ExecStyle
	alignment    Alignment
	replaceBlock bool

	phase    RenderPhase
	status   exec.Status
	handle   *exec.Handle
	splitter *ansi.Splitter
	lines    []text.Line
	maxWidth int
}

// NewRunSnippet creates the operation in the not-started phase. With
// replaceBlock set the output renders bare, standing in for the code
// block instead of accompanying it.
func NewRunSnippet(s *snippet.Snippet, executor exec.SnippetExecutor, style ExecStyle, alignment Alignment, replaceBlock bool) *RunSnippet {
	return &RunSnippet{
		snippet:      s,
		executor:     executor,
		style:        style,
		alignment:    alignment,
		replaceBlock: replaceBlock,
		splitter:     ansi.NewSplitter(text.Style{}),
	}
}

func (*RunSnippet) isOperation() {}

// AutoStart reports whether the operation begins on first display.
// Block-replacing executions do; regular ones wait for the run command.
func (o *RunSnippet) AutoStart() bool {
	return o.replaceBlock
}

// Start spawns the snippet's process. A spawn failure becomes the
// operation's output and settles it immediately; it is never surfaced
// to the caller.
func (o *RunSnippet) Start() bool {
	if o.phase != PhaseNotStarted {
		return false
	}

	handle, err := o.executor.ExecuteAsync(o.snippet)
	if err != nil {
		o.extend(errorLines(err))
		o.status = exec.StatusFailure
		o.phase = PhaseRendered
		return true
	}
	o.handle = handle
	o.phase = PhaseRendering
	return true
}

// Poll drains newly produced output into the operation's lines. The
// poll that observes process completion reports PhaseJustFinished and
// releases the handle; every later poll reports PhaseRendered.
func (o *RunSnippet) Poll() AsyncState {
	switch o.phase {
	case PhaseNotStarted:
		return AsyncState{Phase: PhaseNotStarted}
	case PhaseRendered:
		return AsyncState{Phase: PhaseRendered}
	}

	if o.handle == nil {
		o.phase = PhaseRendered
		return AsyncState{Phase: PhaseRendered}
	}

	chunk, status := o.handle.TakeOutput()
	modified := len(chunk) > 0
	o.extend(o.splitter.Split(chunk))

	if status == exec.StatusRunning {
		o.phase = PhaseRendering
		return AsyncState{Phase: PhaseRendering, Modified: modified}
	}

	if tail, ok := o.splitter.Flush(); ok {
		o.extend([]text.Line{tail})
	}
	o.status = status
	o.handle = nil
	o.phase = PhaseJustFinished
	return AsyncState{Phase: PhaseJustFinished}
}

// Operations renders the separator and the output block.
func (o *RunSnippet) Operations(size WindowSize) []Operation {
	var ops []Operation
	if !o.replaceBlock {
		heading, style := o.heading()
		width := max(o.maxWidth+2*o.style.Padding, MinSeparatorWidth)
		ops = append(ops,
			Separator{Heading: text.Styled(heading, style), Width: width, Alignment: o.alignment},
			LineBreak{},
		)
	}

	background := o.style.Background
	if o.replaceBlock {
		background = ""
	}
	pad := strings.Repeat(" ", o.style.Padding)
	width := o.maxWidth + 2*o.style.Padding
	for _, line := range o.lines {
		padded := append(text.Line{{Text: pad}}, line...)
		ops = append(ops, BlockLine{
			Line:       padded,
			Width:      width,
			Alignment:  o.alignment,
			Background: background,
		})
	}
	return ops
}

func (o *RunSnippet) heading() (string, text.Style) {
	switch o.phase {
	case PhaseNotStarted:
		return "not started", o.style.NotStarted
	case PhaseRendering:
		return "running", o.style.Running
	default:
		if o.status == exec.StatusSuccess {
			return "finished", o.style.Success
		}
		return "finished with error", o.style.Failure
	}
}

func (o *RunSnippet) extend(lines []text.Line) {
	for _, line := range lines {
		o.lines = append(o.lines, line)
		if w := line.Width(); w > o.maxWidth {
			o.maxWidth = w
		}
	}
}

// errorLines converts an error into renderable output.
func errorLines(err error) []text.Line {
	var lines []text.Line
	for _, raw := range strings.Split(err.Error(), "\n") {
		lines = append(lines, text.Plain(raw))
	}
	return lines
}
