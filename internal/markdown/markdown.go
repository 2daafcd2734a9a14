// Package markdown builds a renderable deck from a presentation file:
// slides split on "---" lines, prose rendered through glamour, fenced
// code blocks highlighted through chroma and, where their attributes
// ask for it, wired to execution render operations.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"dais/internal/ansi"
	"dais/internal/deck"
	"dais/internal/exec"
	"dais/internal/snippet"
	"dais/internal/text"
	"dais/internal/theme"
)

// maxProseWidth caps prose word wrap on very wide terminals.
const maxProseWidth = 100

// Options configures a Builder.
type Options struct {
	// Theme is the resolved presentation theme.
	Theme *theme.Theme
	// Executor runs executable snippets.
	Executor exec.SnippetExecutor
	// Terminal is suspended around acquire-terminal snippets.
	Terminal deck.TerminalSuspender
	// ExecutionEnabled globally enables snippet execution; off, the
	// execution operations are replaced by a notice.
	ExecutionEnabled bool
	// HiddenLinePrefix marks snippet lines that run but do not display.
	HiddenLinePrefix string
}

// Builder turns markdown into slides.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build converts the presentation body (front matter already removed)
// into slides laid out for the given window width.
func (b *Builder) Build(body []byte, columns int) ([]*deck.Slide, error) {
	renderer, err := b.newProseRenderer(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	var slides []*deck.Slide
	for _, source := range splitSlides(string(body)) {
		slide, err := b.buildSlide(source, renderer, columns)
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}
	return slides, nil
}

// IntroSlide builds the title slide front matter metadata describes,
// or nil when there is no title.
func (b *Builder) IntroSlide(meta Meta, size deck.WindowSize) *deck.Slide {
	if meta.Title == "" {
		return nil
	}

	center := deck.Alignment{Center: true}
	pad := size.Rows/2 - 2
	var ops []deck.Operation
	for i := 0; i < pad; i++ {
		ops = append(ops, deck.LineBreak{})
	}
	ops = append(ops, deck.StyledLine{
		Line:      text.Styled(meta.Title, text.Style{Bold: true}),
		Alignment: center,
	})
	if meta.Author != "" {
		ops = append(ops,
			deck.LineBreak{},
			deck.StyledLine{
				Line:      text.Styled(meta.Author, b.opts.Theme.Footer.Text),
				Alignment: center,
			},
		)
	}
	return deck.NewSlide(meta.Title, ops, nil)
}

// splitSlides cuts the body on "---" lines, ignoring separators inside
// fenced code blocks.
func splitSlides(body string) []string {
	var slides []string
	var current []string
	inFence := false

	flush := func() {
		slides = append(slides, strings.Join(current, "\n"))
		current = nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if trimmed == "---" && !inFence {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return slides
}

func (b *Builder) newProseRenderer(columns int) (*glamour.TermRenderer, error) {
	wrap := min(columns, maxProseWidth)
	style := glamour.WithStandardStyle(b.opts.Theme.MarkdownStyle)
	if b.opts.Theme.MarkdownStyle == "auto" {
		style = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap), glamour.WithEmoji())
}

func (b *Builder) buildSlide(source string, renderer *glamour.TermRenderer, columns int) (*deck.Slide, error) {
	var ops []deck.Operation
	var mutators []deck.ChunkMutator
	var prose []string
	title := ""

	flushProse := func() error {
		if len(prose) == 0 {
			return nil
		}
		proseOps, err := renderProse(renderer, strings.Join(prose, "\n"))
		if err != nil {
			return err
		}
		ops = append(ops, proseOps...)
		prose = nil
		return nil
	}

	lines := strings.Split(source, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimRight(line, " \t")

		if info, ok := strings.CutPrefix(trimmed, "```"); ok {
			if err := flushProse(); err != nil {
				return nil, err
			}
			body, next := collectFence(lines, i+1)
			i = next

			blockOps, blockMutators, err := b.codeBlock(info, body, columns)
			if err != nil {
				return nil, err
			}
			ops = append(ops, blockOps...)
			mutators = append(mutators, blockMutators...)
			continue
		}

		if title == "" {
			if heading, ok := cutHeading(trimmed); ok {
				title = heading
			}
		}
		prose = append(prose, line)
	}
	if err := flushProse(); err != nil {
		return nil, err
	}

	return deck.NewSlide(title, ops, mutators), nil
}

// collectFence gathers the block body from start until the closing
// fence and returns it with the index of the closing line.
func collectFence(lines []string, start int) (string, int) {
	var body []string
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimRight(lines[i], " \t"), "```") {
			return strings.Join(body, "\n") + "\n", i
		}
		body = append(body, lines[i])
	}
	return strings.Join(body, "\n") + "\n", len(lines)
}

func cutHeading(line string) (string, bool) {
	rest := strings.TrimLeft(line, "#")
	if rest == line || len(line)-len(rest) > 6 || !strings.HasPrefix(rest, " ") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// renderProse renders a markdown fragment through glamour and splits
// the styled output into line operations.
func renderProse(renderer *glamour.TermRenderer, prose string) ([]deck.Operation, error) {
	if strings.TrimSpace(prose) == "" {
		return nil, nil
	}

	rendered, err := renderer.Render(prose)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	splitter := ansi.NewSplitter(text.Style{})
	lines := splitter.Split([]byte(rendered))
	if tail, ok := splitter.Flush(); ok {
		lines = append(lines, tail)
	}

	// Glamour pads its output with blank lines; the slide layout owns
	// vertical spacing.
	lines = trimBlankLines(lines)

	ops := make([]deck.Operation, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			ops = append(ops, deck.LineBreak{})
			continue
		}
		ops = append(ops, deck.StyledLine{Line: line})
	}
	return ops, nil
}

func trimBlankLines(lines []text.Line) []text.Line {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start].String()) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1].String()) == "" {
		end--
	}
	return lines[start:end]
}

// codeBlock renders one fenced block: the highlighted code and, per
// its attributes, the execution operation that follows it.
func (b *Builder) codeBlock(info, body string, columns int) ([]deck.Operation, []deck.ChunkMutator, error) {
	s, err := snippet.Parse(info, body)
	if err != nil {
		return nil, nil, err
	}

	execStyle := b.opts.Theme.ExecStyle()

	if s.Attributes.ExecuteReplace && b.opts.ExecutionEnabled {
		op := deck.NewRunSnippet(s, b.opts.Executor, execStyle, deck.Alignment{}, true)
		return []deck.Operation{op, deck.LineBreak{}}, nil, nil
	}

	ops, mutators := b.displayBlock(s, columns)

	switch {
	case s.Attributes.AcquireTerminal && b.opts.ExecutionEnabled:
		op := deck.NewRunAcquireTerminal(s, b.opts.Executor, b.opts.Terminal, execStyle)
		ops = append(ops, op, deck.LineBreak{})
	case s.Attributes.Execute && b.opts.ExecutionEnabled:
		op := deck.NewRunSnippet(s, b.opts.Executor, execStyle, deck.Alignment{}, false)
		ops = append(ops, op, deck.LineBreak{})
	case s.Executable():
		ops = append(ops, deck.NewExecutionDisabled(b.opts.Theme.Disabled), deck.LineBreak{})
	}
	return ops, mutators, nil
}

// displayBlock renders the snippet's visible lines as a highlighted
// code block.
func (b *Builder) displayBlock(s *snippet.Snippet, columns int) ([]deck.Operation, []deck.ChunkMutator) {
	visible := s.DisplayLines(b.opts.HiddenLinePrefix)
	highlighted := highlightLines(visible, string(s.Language), b.opts.Theme.Code.ChromaStyle)
	dimmed := dimmedLines(visible)

	padding := b.opts.Theme.Code.Padding
	pad := text.Span{Text: strings.Repeat(" ", padding)}
	padder := snippet.NewNumberPadder(len(highlighted))
	maxWidth := 0
	for i := range highlighted {
		if s.Attributes.LineNumbers {
			number := text.Span{Text: padder.Format(i + 1), Style: dimStyle}
			highlighted[i] = append(text.Line{number}, highlighted[i]...)
			dimmed[i] = append(text.Line{number}, dimmed[i]...)
		}
		highlighted[i] = append(text.Line{pad}, highlighted[i]...)
		dimmed[i] = append(text.Line{pad}, dimmed[i]...)
		if w := highlighted[i].Width(); w > maxWidth {
			maxWidth = w
		}
	}

	width := maxWidth + padding
	if pct := s.Attributes.WidthPercent; pct != 0 {
		width = columns * pct / 100
	}

	background := b.opts.Theme.Code.Background
	if s.Attributes.NoBackground {
		background = ""
	}

	state := deck.NewHighlightState(s.Attributes.HighlightGroups)
	block := deck.NewHighlightedCode(state, highlighted, dimmed, width, background, deck.Alignment{})

	ops := []deck.Operation{block, deck.LineBreak{}}
	var mutators []deck.ChunkMutator
	if state.Len() > 1 {
		mutators = append(mutators, deck.NewHighlightMutator(state))
	}
	return ops, mutators
}
