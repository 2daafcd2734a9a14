package deck

import "dais/internal/text"

// WindowSize is the drawable terminal area in character cells.
type WindowSize struct {
	Columns int
	Rows    int
}

// Alignment positions a line or block horizontally.
type Alignment struct {
	// Center centers the content; otherwise it is left-aligned.
	Center bool
	// Margin is the left margin, or the minimum margin when centered.
	Margin int
	// MinWidth is the minimum content width when centered.
	MinWidth int
}

// Operation is one atomic render instruction. A frame is an ordered
// list of them. The kind set is closed: the drawer switches over every
// concrete type.
type Operation interface {
	isOperation()
}

// StyledLine renders one line of styled text, wrapped to the window
// width if needed.
type StyledLine struct {
	Line      text.Line
	Alignment Alignment
}

// BlockLine renders one line inside a sized block: the line is padded
// to Width cells and drawn over the block background.
type BlockLine struct {
	Line       text.Line
	Width      int
	Alignment  Alignment
	Background text.Color
}

// LineBreak moves rendering to the next row.
type LineBreak struct{}

func (StyledLine) isOperation() {}
func (BlockLine) isOperation()  {}
func (LineBreak) isOperation()  {}

// OperationSource is a dynamic operation: it recomputes its operations
// against the current window size every frame.
type OperationSource interface {
	Operation
	Operations(size WindowSize) []Operation
}

// RenderAsync is a dynamic operation whose content arrives over time.
// Start is idempotent: it returns true only on the first call made
// while the operation is not started. Poll never blocks.
type RenderAsync interface {
	OperationSource
	Start() bool
	Poll() AsyncState
}

// AutoStarter marks async operations that begin as soon as their slide
// is visible rather than waiting for an explicit run command.
type AutoStarter interface {
	AutoStart() bool
}
