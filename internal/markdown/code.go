package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"dais/internal/text"
)

// dimStyle renders lines outside the active highlight group.
var dimStyle = text.Style{Foreground: "8"}

// highlightLines runs the code through chroma and returns one styled
// line per input line. Unknown languages fall back to the plain text
// lexer.
func highlightLines(lines []string, language, styleName string) []text.Line {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	source := strings.Join(lines, "\n")

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		out := make([]text.Line, len(lines))
		for i, line := range lines {
			out[i] = text.Plain(line)
		}
		return out
	}

	out := []text.Line{{}}
	current := 0
	for _, token := range iterator.Tokens() {
		tokenStyle := styleFor(style, token.Type)
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if before != "" {
				out[current] = append(out[current], text.Span{Text: before, Style: tokenStyle})
			}
			if !found {
				break
			}
			out = append(out, text.Line{})
			current++
			value = after
		}
	}

	// Tokenisation can drop a trailing newline; keep the line count in
	// step with the input.
	for len(out) < len(lines) {
		out = append(out, text.Line{})
	}
	return out[:len(lines)]
}

// styleFor maps a chroma token type to the terminal style of the
// selected chroma style.
func styleFor(style *chroma.Style, tokenType chroma.TokenType) text.Style {
	entry := style.Get(tokenType)

	var s text.Style
	if entry.Colour.IsSet() {
		s.Foreground = text.Color(entry.Colour.String())
	}
	s.Bold = entry.Bold == chroma.Yes
	s.Italic = entry.Italic == chroma.Yes
	s.Underline = entry.Underline == chroma.Yes
	return s
}

// dimmedLines returns the de-emphasized variant of the code lines.
func dimmedLines(lines []string) []text.Line {
	out := make([]text.Line, len(lines))
	for i, line := range lines {
		out[i] = text.Styled(line, dimStyle)
	}
	return out
}
