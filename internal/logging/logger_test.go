package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseControlsDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key")
	SetVerbose(false)
}

func TestWarnAlwaysLogged(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Warn("watch out", "file", "deck.md")
	assert.Contains(t, buf.String(), "watch out")
	assert.Contains(t, buf.String(), "deck.md")
}

func TestWithCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	With("slide", 3).Warn("late")
	assert.Contains(t, buf.String(), "slide")
}
