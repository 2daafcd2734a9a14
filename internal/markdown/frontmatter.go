package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is the presentation metadata carried in the front matter block.
type Meta struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Theme  string `yaml:"theme"`
}

// SplitFrontMatter extracts the YAML front matter block from the start
// of a presentation file, returning the metadata and the remaining
// content. A file without front matter yields zero metadata and its
// content untouched.
func SplitFrontMatter(data []byte) (Meta, []byte, error) {
	content := string(data)
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return Meta{}, data, nil
	}

	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return Meta{}, nil, fmt.Errorf("unterminated front matter")
	}

	var meta Meta
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return Meta{}, nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return meta, []byte(body), nil
}
