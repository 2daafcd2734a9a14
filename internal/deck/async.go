package deck

// RenderPhase is the lifecycle position of an async render operation.
// Phases only move forward: polling never regresses, and the only
// transition out of PhaseJustFinished is into PhaseRendered.
type RenderPhase int

const (
	// PhaseNotStarted means Start has not been called.
	PhaseNotStarted RenderPhase = iota
	// PhaseRendering means content is still being produced.
	PhaseRendering
	// PhaseJustFinished is reported exactly once, by the first poll
	// that observes completion.
	PhaseJustFinished
	// PhaseRendered is terminal: the content is complete.
	PhaseRendered
)

// String returns a human-readable phase name.
func (p RenderPhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseRendering:
		return "rendering"
	case PhaseJustFinished:
		return "just finished"
	case PhaseRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// AsyncState is the result of polling an async operation. Modified is
// only meaningful while the phase is PhaseRendering.
type AsyncState struct {
	Phase    RenderPhase
	Modified bool
}

// NeedsRepaint reports whether the poll result requires redrawing the
// current slide.
func (s AsyncState) NeedsRepaint() bool {
	return s.Phase == PhaseJustFinished || (s.Phase == PhaseRendering && s.Modified)
}
