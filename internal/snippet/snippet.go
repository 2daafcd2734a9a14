// Package snippet models fenced code blocks: their language, body and
// the attribute set controlling how they render and execute.
package snippet

import (
	"strings"
)

// Language identifies the language tag of a code block, as written in
// the fence info line.
type Language string

// Languages referenced elsewhere in the renderer. Any other tag is
// carried through as is.
const (
	LanguageUnknown Language = ""
	LanguageBash    Language = "bash"
	LanguageShell   Language = "sh"
	LanguagePython  Language = "python"
	LanguageGo      Language = "go"
	LanguageRust    Language = "rust"
	LanguageText    Language = "text"
)

// Attributes control rendering and execution of a snippet.
type Attributes struct {
	// Execute marks the snippet as runnable with its output rendered
	// below the block.
	Execute bool
	// ExecuteReplace marks the snippet as runnable with its output
	// replacing the block.
	ExecuteReplace bool
	// AutoRender marks the snippet for conversion at render time.
	AutoRender bool
	// AcquireTerminal marks the snippet as needing exclusive use of the
	// real terminal while it runs.
	AcquireTerminal bool
	// LineNumbers prefixes each displayed line with its number.
	LineNumbers bool
	// NoBackground renders the block without a background fill.
	NoBackground bool
	// WidthPercent sizes the rendered block relative to the window.
	// Zero means unset. Only valid together with AutoRender.
	WidthPercent int
	// HighlightGroups is the reveal sequence for the block. Never
	// empty: an unspecified sequence is one group covering all lines.
	HighlightGroups []HighlightGroup
}

// Snippet is an immutable code block extracted from slide content.
type Snippet struct {
	Body       string
	Language   Language
	Attributes Attributes
}

// New constructs a snippet, enforcing the attribute invariants: a width
// is only meaningful for auto-rendered blocks, and the highlight group
// sequence always has at least one entry.
func New(body string, language Language, attrs Attributes) (*Snippet, error) {
	if attrs.WidthPercent != 0 && !attrs.AutoRender {
		return nil, &ParseError{Token: "+width", Message: "width requires the render attribute"}
	}
	if len(attrs.HighlightGroups) == 0 {
		attrs.HighlightGroups = []HighlightGroup{{HighlightAll()}}
	}
	return &Snippet{
		Body:       body,
		Language:   language,
		Attributes: attrs,
	}, nil
}

// Executable returns true if the snippet carries an attribute that
// makes it runnable.
func (s *Snippet) Executable() bool {
	a := s.Attributes
	return a.Execute || a.ExecuteReplace || a.AcquireTerminal
}

// VisibleLines returns the body lines shown in the rendered block,
// excluding lines starting with the hidden prefix.
func (s *Snippet) VisibleLines(hiddenPrefix string) []string {
	var lines []string
	for _, line := range bodyLines(s.Body) {
		if hiddenPrefix != "" && strings.HasPrefix(line, hiddenPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ExecutableBody returns the body passed to the executor: every line,
// with the hidden prefix stripped where present.
func (s *Snippet) ExecutableBody(hiddenPrefix string) string {
	lines := bodyLines(s.Body)
	out := make([]string, len(lines))
	for i, line := range lines {
		if hiddenPrefix != "" && strings.HasPrefix(line, hiddenPrefix) {
			line = strings.TrimPrefix(line, hiddenPrefix)
		}
		out[i] = line
	}
	return strings.Join(out, "\n") + "\n"
}

// bodyLines splits a snippet body into lines, dropping the empty tail
// a trailing newline leaves behind.
func bodyLines(body string) []string {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
