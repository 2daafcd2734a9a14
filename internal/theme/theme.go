// Package theme defines the visual treatment of a presentation: code
// block colors, execution output styling, footer and modal colors.
package theme

import (
	"fmt"

	"dais/internal/deck"
	"dais/internal/text"
)

// CodeTheme styles code blocks.
type CodeTheme struct {
	// ChromaStyle names the syntax highlighting style.
	ChromaStyle string
	// Background fills the block behind the code.
	Background text.Color
	// Padding is the horizontal padding inside the block, in cells.
	Padding int
}

// ExecutionTheme styles execution output blocks and their status line.
type ExecutionTheme struct {
	NotStarted text.Style
	Running    text.Style
	Success    text.Style
	Failure    text.Style
	Background text.Color
	Padding    int
}

// FooterTheme styles the footer row.
type FooterTheme struct {
	Text     text.Style
	Progress text.Style
}

// ModalTheme styles boxed overlays.
type ModalTheme struct {
	Border   text.Style
	Selected text.Style
}

// Theme is a complete named presentation look.
type Theme struct {
	Name string
	// MarkdownStyle is the glamour style prose renders with; "auto"
	// follows the terminal background.
	MarkdownStyle string
	Code          CodeTheme
	Execution     ExecutionTheme
	Footer        FooterTheme
	Modal         ModalTheme
	// Disabled styles the execution-disabled notice.
	Disabled text.Style
}

// ExecStyle converts the execution theme for the deck operations.
func (t *Theme) ExecStyle() deck.ExecStyle {
	return deck.ExecStyle{
		NotStarted: t.Execution.NotStarted,
		Running:    t.Execution.Running,
		Success:    t.Execution.Success,
		Failure:    t.Execution.Failure,
		Background: t.Execution.Background,
		Padding:    t.Execution.Padding,
	}
}

var themes = map[string]*Theme{
	"dark": {
		Name:          "dark",
		MarkdownStyle: "dark",
		Code: CodeTheme{
			ChromaStyle: "monokai",
			Background:  "#272822",
			Padding:     2,
		},
		Execution: ExecutionTheme{
			NotStarted: text.Style{Foreground: "8"},
			Running:    text.Style{Foreground: "3"},
			Success:    text.Style{Foreground: "2"},
			Failure:    text.Style{Foreground: "1"},
			Background: "#1c1c1c",
			Padding:    2,
		},
		Footer: FooterTheme{
			Text:     text.Style{Foreground: "8"},
			Progress: text.Style{Foreground: "5"},
		},
		Modal: ModalTheme{
			Border:   text.Style{Foreground: "4"},
			Selected: text.Style{Foreground: "0", Background: "4"},
		},
		Disabled: text.Style{Foreground: "3", Italic: true},
	},
	"light": {
		Name:          "light",
		MarkdownStyle: "light",
		Code: CodeTheme{
			ChromaStyle: "github",
			Background:  "#f5f5f5",
			Padding:     2,
		},
		Execution: ExecutionTheme{
			NotStarted: text.Style{Foreground: "8"},
			Running:    text.Style{Foreground: "3"},
			Success:    text.Style{Foreground: "2"},
			Failure:    text.Style{Foreground: "1"},
			Background: "#eeeeee",
			Padding:    2,
		},
		Footer: FooterTheme{
			Text:     text.Style{Foreground: "8"},
			Progress: text.Style{Foreground: "4"},
		},
		Modal: ModalTheme{
			Border:   text.Style{Foreground: "4"},
			Selected: text.Style{Foreground: "15", Background: "4"},
		},
		Disabled: text.Style{Foreground: "3", Italic: true},
	},
}

// ByName looks a theme up by name.
func ByName(name string) (*Theme, error) {
	t, ok := themes[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	return names
}
