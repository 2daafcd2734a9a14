// Package input turns keyboard input and speaker-notes events into the
// single command stream driving the presenter loop.
package input

// CommandKind enumerates every directive the presenter understands.
type CommandKind int

const (
	// KindRedraw repaints the current slide, e.g. after a resize.
	KindRedraw CommandKind = iota
	// KindNext moves forward one reveal step or slide.
	KindNext
	// KindNextFast moves to the next slide, skipping reveal steps.
	KindNextFast
	// KindPrevious moves backward one reveal step or slide.
	KindPrevious
	// KindPreviousFast moves to the previous slide, skipping reveal
	// steps.
	KindPreviousFast
	// KindFirstSlide jumps to the first slide.
	KindFirstSlide
	// KindLastSlide jumps to the last slide.
	KindLastSlide
	// KindGoToSlide jumps to the slide carried in Command.Slide.
	KindGoToSlide
	// KindRenderAsync starts the current slide's async operations.
	KindRenderAsync
	// KindExit ends the presentation.
	KindExit
	// KindSuspend stops the process and hands the terminal back to the
	// shell.
	KindSuspend
	// KindReload rebuilds the presentation from the changed file.
	KindReload
	// KindHardReload rebuilds the presentation and re-reads external
	// resources like the theme.
	KindHardReload
	// KindToggleIndex shows or hides the slide index modal.
	KindToggleIndex
	// KindToggleBindings shows or hides the key bindings modal.
	KindToggleBindings
	// KindCloseModal hides the open modal, if any.
	KindCloseModal
)

// String returns the command name used in binding configuration.
func (k CommandKind) String() string {
	switch k {
	case KindRedraw:
		return "redraw"
	case KindNext:
		return "next"
	case KindNextFast:
		return "next_fast"
	case KindPrevious:
		return "previous"
	case KindPreviousFast:
		return "previous_fast"
	case KindFirstSlide:
		return "first_slide"
	case KindLastSlide:
		return "last_slide"
	case KindGoToSlide:
		return "go_to_slide"
	case KindRenderAsync:
		return "execute_code"
	case KindExit:
		return "exit"
	case KindSuspend:
		return "suspend"
	case KindReload:
		return "reload"
	case KindHardReload:
		return "hard_reload"
	case KindToggleIndex:
		return "toggle_index"
	case KindToggleBindings:
		return "toggle_bindings"
	case KindCloseModal:
		return "close_modal"
	default:
		return "unknown"
	}
}

// Command is one directive for the presenter. Slide is only meaningful
// for KindGoToSlide and is 1-based. The value is identical whether it
// came from the keyboard or from a speaker-notes event.
type Command struct {
	Kind  CommandKind
	Slide int
}
