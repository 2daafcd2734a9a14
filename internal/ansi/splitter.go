// Package ansi splits raw terminal output into styled lines. Process
// output arrives in arbitrary chunks: escape sequences, UTF-8 runes and
// lines can all be cut at chunk boundaries, so the splitter keeps the
// open style, any partial line and any undecoded bytes between calls.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"dais/internal/text"
)

// Splitter incrementally converts chunks of raw output into styled
// lines. Feeding it a byte stream split at any boundary produces the
// same lines as feeding the stream whole.
type Splitter struct {
	style   text.Style
	line    text.Line
	span    strings.Builder
	pending []byte
}

// NewSplitter creates a splitter whose first span starts with the given
// style.
func NewSplitter(start text.Style) *Splitter {
	return &Splitter{style: start}
}

// Style returns the style left open by the last chunk.
func (s *Splitter) Style() text.Style {
	return s.style
}

// Split consumes a chunk and returns the lines it completed. Partial
// trailing content stays buffered for the next call.
func (s *Splitter) Split(chunk []byte) []text.Line {
	data := s.pending
	s.pending = nil
	data = append(data, chunk...)

	var lines []text.Line
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == 0x1b:
			n, ok := s.consumeEscape(data[i:])
			if !ok {
				s.pending = append([]byte{}, data[i:]...)
				return lines
			}
			i += n
		case b == '\n':
			s.endSpan()
			lines = append(lines, s.takeLine())
			i++
		case b == '\r':
			i++
		case b == '\t':
			s.span.WriteString("    ")
			i++
		case b < 0x20 || b == 0x7f:
			i++
		default:
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size == 1 {
				if !utf8.FullRune(data[i:]) {
					s.pending = append([]byte{}, data[i:]...)
					return lines
				}
				i++
				continue
			}
			s.span.WriteRune(r)
			i += size
		}
	}
	return lines
}

// Flush returns the buffered partial line, if any. Called once the
// stream has ended; an unterminated escape sequence is discarded.
func (s *Splitter) Flush() (text.Line, bool) {
	s.pending = nil
	s.endSpan()
	if len(s.line) == 0 {
		return nil, false
	}
	return s.takeLine(), true
}

func (s *Splitter) endSpan() {
	if s.span.Len() == 0 {
		return
	}
	s.line = append(s.line, text.Span{Text: s.span.String(), Style: s.style})
	s.span.Reset()
}

func (s *Splitter) takeLine() text.Line {
	line := s.line
	s.line = nil
	if line == nil {
		line = text.Line{}
	}
	return line
}

// consumeEscape consumes one escape sequence from the start of data.
// Returns false if the sequence continues past the end of the chunk.
func (s *Splitter) consumeEscape(data []byte) (int, bool) {
	if len(data) < 2 {
		return 0, false
	}
	switch data[1] {
	case '[':
		for i := 2; i < len(data); i++ {
			b := data[i]
			if b >= 0x40 && b <= 0x7e {
				if b == 'm' {
					s.endSpan()
					s.applySGR(string(data[2:i]))
				}
				return i + 1, true
			}
		}
		return 0, false
	case ']':
		// OSC, terminated by BEL or ST.
		for i := 2; i < len(data); i++ {
			if data[i] == 0x07 {
				return i + 1, true
			}
			if data[i] == 0x1b && i+1 < len(data) && data[i+1] == '\\' {
				return i + 2, true
			}
		}
		return 0, false
	default:
		return 2, true
	}
}

// applySGR folds an SGR parameter list into the current style.
func (s *Splitter) applySGR(params string) {
	codes := parseSGRParams(params)
	for i := 0; i < len(codes); i++ {
		switch c := codes[i]; {
		case c == 0:
			s.style = text.Style{}
		case c == 1:
			s.style.Bold = true
		case c == 2:
			s.style.Dim = true
		case c == 3:
			s.style.Italic = true
		case c == 4:
			s.style.Underline = true
		case c == 7:
			s.style.Reverse = true
		case c == 9:
			s.style.Strikethrough = true
		case c == 22:
			s.style.Bold = false
			s.style.Dim = false
		case c == 23:
			s.style.Italic = false
		case c == 24:
			s.style.Underline = false
		case c == 27:
			s.style.Reverse = false
		case c == 29:
			s.style.Strikethrough = false
		case c >= 30 && c <= 37:
			s.style.Foreground = text.Color(strconv.Itoa(c - 30))
		case c == 38:
			color, skip := parseExtendedColor(codes[i+1:])
			s.style.Foreground = color
			i += skip
		case c == 39:
			s.style.Foreground = ""
		case c >= 40 && c <= 47:
			s.style.Background = text.Color(strconv.Itoa(c - 40))
		case c == 48:
			color, skip := parseExtendedColor(codes[i+1:])
			s.style.Background = color
			i += skip
		case c == 49:
			s.style.Background = ""
		case c >= 90 && c <= 97:
			s.style.Foreground = text.Color(strconv.Itoa(c - 90 + 8))
		case c >= 100 && c <= 107:
			s.style.Background = text.Color(strconv.Itoa(c - 100 + 8))
		}
	}
}

// parseSGRParams splits an SGR parameter string into numeric codes.
// An empty list means reset.
func parseSGRParams(params string) []int {
	if params == "" {
		return []int{0}
	}
	fields := strings.FieldsFunc(params, func(r rune) bool {
		return r == ';' || r == ':'
	})
	codes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		codes = append(codes, n)
	}
	if len(codes) == 0 {
		return []int{0}
	}
	return codes
}

// parseExtendedColor decodes the tail of a 38/48 sequence: 5;n for the
// 256-color palette, 2;r;g;b for true color. Returns the color and the
// number of codes consumed.
func parseExtendedColor(codes []int) (text.Color, int) {
	if len(codes) == 0 {
		return "", 0
	}
	switch codes[0] {
	case 5:
		if len(codes) < 2 {
			return "", len(codes)
		}
		return text.Color(strconv.Itoa(codes[1])), 2
	case 2:
		if len(codes) < 4 {
			return "", len(codes)
		}
		return text.Color(fmt.Sprintf("#%02x%02x%02x", codes[1], codes[2], codes[3])), 4
	default:
		return "", 1
	}
}
