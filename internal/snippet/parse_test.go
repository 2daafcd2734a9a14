package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info string
		want Attributes
		lang Language
	}{
		{
			name: "language only",
			info: "rust",
			lang: LanguageRust,
		},
		{
			name: "no language",
			info: "",
			lang: LanguageUnknown,
		},
		{
			name: "exec",
			info: "bash +exec",
			lang: LanguageBash,
			want: Attributes{Execute: true},
		},
		{
			name: "exec replace",
			info: "bash +exec_replace",
			lang: LanguageBash,
			want: Attributes{ExecuteReplace: true},
		},
		{
			name: "acquire terminal",
			info: "bash +exec +acquire_terminal",
			lang: LanguageBash,
			want: Attributes{Execute: true, AcquireTerminal: true},
		},
		{
			name: "line numbers and no background",
			info: "go +line_numbers +no_background",
			lang: LanguageGo,
			want: Attributes{LineNumbers: true, NoBackground: true},
		},
		{
			name: "render with width",
			info: "mermaid +render +width:50%",
			lang: Language("mermaid"),
			want: Attributes{AutoRender: true, WidthPercent: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Parse(tt.info, "body")
			require.NoError(t, err)
			assert.Equal(t, tt.lang, s.Language)

			// The default highlight sequence is filled in by New.
			tt.want.HighlightGroups = []HighlightGroup{{HighlightAll()}}
			assert.Equal(t, tt.want, s.Attributes)
		})
	}
}

func TestParseHighlightGroups(t *testing.T) {
	t.Parallel()

	s, err := Parse("rust {1,3-5|all|7}", "body")
	require.NoError(t, err)

	want := []HighlightGroup{
		{HighlightLine(1), HighlightRange(3, 5)},
		{HighlightAll()},
		{HighlightLine(7)},
	}
	assert.Equal(t, want, s.Attributes.HighlightGroups)
}

func TestParseInvalidTokens(t *testing.T) {
	t.Parallel()

	tests := []string{
		"{",
		"{42",
		"{42,",
		"{,}",
		"{42-",
		"{42-}",
		"{42-3-5}",
		"{42-,",
		"{65536}",
		"{1-65536}",
		"{3-1}",
		"{0}",
		"+nope",
		"+width:50",
		"+width:0%",
		"+width:101%",
		"+width:abc%",
	}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("bash +render "+token, "body")
			require.Error(t, err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseDuplicateAttribute(t *testing.T) {
	t.Parallel()

	tests := []string{
		"bash +exec +exec",
		"bash +line_numbers +line_numbers",
		"bash {1} {2}",
		"mermaid +render +width:10% +width:20%",
	}

	for _, info := range tests {
		t.Run(info, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(info, "body")
			require.Error(t, err)
			assert.ErrorContains(t, err, "duplicate attribute")
		})
	}
}

func TestParseWidthRequiresRender(t *testing.T) {
	t.Parallel()

	_, err := Parse("bash +width:50%", "body")
	require.Error(t, err)
	assert.ErrorContains(t, err, "width requires the render attribute")

	// The same invariant holds when constructing directly.
	_, err = New("body", LanguageBash, Attributes{WidthPercent: 50})
	require.Error(t, err)

	s, err := New("body", LanguageBash, Attributes{WidthPercent: 50, AutoRender: true})
	require.NoError(t, err)
	assert.Equal(t, 50, s.Attributes.WidthPercent)
}
