package snippet

import (
	"strconv"
	"strings"
)

// maxLineNumber bounds highlight line numbers.
const maxLineNumber = 65535

// Highlight selects lines to emphasize: either every line, or an
// inclusive 1-based range. A single line is a range of length one.
type Highlight struct {
	All   bool
	Start int
	End   int
}

// HighlightAll returns a highlight covering every line.
func HighlightAll() Highlight {
	return Highlight{All: true}
}

// HighlightLine returns a highlight covering one line.
func HighlightLine(line int) Highlight {
	return Highlight{Start: line, End: line}
}

// HighlightRange returns a highlight covering an inclusive range.
func HighlightRange(start, end int) Highlight {
	return Highlight{Start: start, End: end}
}

// Contains reports whether the 1-based line falls inside the highlight.
func (h Highlight) Contains(line int) bool {
	if h.All {
		return true
	}
	return line >= h.Start && line <= h.End
}

// HighlightGroup is one step of a reveal sequence: the set of lines
// emphasized together.
type HighlightGroup []Highlight

// Contains reports whether any highlight in the group covers the line.
func (g HighlightGroup) Contains(line int) bool {
	for _, h := range g {
		if h.Contains(line) {
			return true
		}
	}
	return false
}

// parseHighlightGroups parses the braced highlight token of a fence
// info line, e.g. "{1,3-5|all|7}". Groups are separated by "|", entries
// by ",". An entry is "all", a line number, or an inclusive range.
func parseHighlightGroups(token string) ([]HighlightGroup, error) {
	if len(token) < 2 || !strings.HasPrefix(token, "{") || !strings.HasSuffix(token, "}") {
		return nil, &ParseError{Token: token, Message: "unterminated highlight list"}
	}
	inner := token[1 : len(token)-1]
	if inner == "" {
		return nil, &ParseError{Token: token, Message: "empty highlight list"}
	}

	var groups []HighlightGroup
	for _, spec := range strings.Split(inner, "|") {
		var group HighlightGroup
		for _, entry := range strings.Split(spec, ",") {
			h, err := parseHighlight(token, entry)
			if err != nil {
				return nil, err
			}
			group = append(group, h)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func parseHighlight(token, entry string) (Highlight, error) {
	if entry == "all" {
		return HighlightAll(), nil
	}
	if entry == "" {
		return Highlight{}, &ParseError{Token: token, Message: "empty highlight"}
	}

	parts := strings.Split(entry, "-")
	switch len(parts) {
	case 1:
		line, err := parseLineNumber(parts[0])
		if err != nil {
			return Highlight{}, &ParseError{Token: token, Message: err.Error()}
		}
		return HighlightLine(line), nil
	case 2:
		start, err := parseLineNumber(parts[0])
		if err != nil {
			return Highlight{}, &ParseError{Token: token, Message: err.Error()}
		}
		end, err := parseLineNumber(parts[1])
		if err != nil {
			return Highlight{}, &ParseError{Token: token, Message: err.Error()}
		}
		if end < start {
			return Highlight{}, &ParseError{Token: token, Message: "range end before start"}
		}
		return HighlightRange(start, end), nil
	default:
		return Highlight{}, &ParseError{Token: token, Message: "malformed highlight range"}
	}
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errInvalidLineNumber
	}
	if n < 1 || n > maxLineNumber {
		return 0, errInvalidLineNumber
	}
	return n, nil
}
