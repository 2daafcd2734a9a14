package snippet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a rejected code block info line.
type ParseError struct {
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid code block: %s", e.Message)
	}
	return fmt.Sprintf("invalid code block attribute %q: %s", e.Token, e.Message)
}

var errInvalidLineNumber = errors.New("line number out of range")

// Parse builds a snippet from a fence info line and the block body.
// The info line is the language tag followed by attribute tokens:
//
//	bash +exec +line_numbers {1,3-5|all}
//
// Flag attributes start with "+", the highlight list is braced.
// Repeating an attribute is an error.
func Parse(info, body string) (*Snippet, error) {
	fields := strings.Fields(info)

	language := LanguageUnknown
	if len(fields) > 0 {
		language = Language(fields[0])
		fields = fields[1:]
	}

	var attrs Attributes
	seen := make(map[string]bool)
	for _, token := range fields {
		name, err := parseAttribute(token, &attrs)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, &ParseError{Token: token, Message: "duplicate attribute"}
		}
		seen[name] = true
	}

	return New(body, language, attrs)
}

// parseAttribute applies one info line token to attrs and returns the
// attribute name used for duplicate detection.
func parseAttribute(token string, attrs *Attributes) (string, error) {
	if strings.HasPrefix(token, "{") {
		groups, err := parseHighlightGroups(token)
		if err != nil {
			return "", err
		}
		attrs.HighlightGroups = groups
		return "highlight", nil
	}

	switch {
	case token == "+exec":
		attrs.Execute = true
	case token == "+exec_replace":
		attrs.ExecuteReplace = true
	case token == "+render":
		attrs.AutoRender = true
	case token == "+acquire_terminal":
		attrs.AcquireTerminal = true
	case token == "+line_numbers":
		attrs.LineNumbers = true
	case token == "+no_background":
		attrs.NoBackground = true
	case strings.HasPrefix(token, "+width:"):
		pct, err := parseWidthPercent(strings.TrimPrefix(token, "+width:"))
		if err != nil {
			return "", &ParseError{Token: token, Message: err.Error()}
		}
		attrs.WidthPercent = pct
		return "+width", nil
	default:
		return "", &ParseError{Token: token, Message: "unknown attribute"}
	}
	return token, nil
}

func parseWidthPercent(s string) (int, error) {
	s, ok := strings.CutSuffix(s, "%")
	if !ok {
		return 0, errors.New("width must be a percentage")
	}
	pct, err := strconv.Atoi(s)
	if err != nil || pct < 1 || pct > 100 {
		return 0, errors.New("width must be between 1% and 100%")
	}
	return pct, nil
}
