package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dais/internal/exec"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "snippets:\n  exec: true\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultNotesAddress, cfg.Notes.Address)
	assert.True(t, cfg.Snippets.Exec)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `
theme: light
notes:
  address: "127.0.0.1:7000"
snippets:
  hidden_line_prefix: "# "
  executors:
    kotlin:
      filename: snippet.kts
      commands:
        - [kotlinc, -script, snippet.kts]
bindings:
  next: ["l", "right"]
`))
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "127.0.0.1:7000", cfg.Notes.Address)
	assert.Equal(t, "# ", cfg.Snippets.HiddenLinePrefix)
	assert.Equal(t, exec.Runner{
		Filename: "snippet.kts",
		Commands: [][]string{{"kotlinc", "-script", "snippet.kts"}},
	}, cfg.Snippets.Executors["kotlin"])
	assert.Equal(t, []string{"l", "right"}, cfg.Bindings["next"])
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "theme: [unclosed\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "empty theme",
			mutate:  func(cfg *Config) { cfg.Theme = "" },
			wantErr: "theme",
		},
		{
			name:    "notes address without port",
			mutate:  func(cfg *Config) { cfg.Notes.Address = "localhost" },
			wantErr: "notes.address",
		},
		{
			name: "executor without filename",
			mutate: func(cfg *Config) {
				cfg.Snippets.Executors = map[string]exec.Runner{
					"kotlin": {Commands: [][]string{{"kotlinc"}}},
				}
			},
			wantErr: "snippets.executors.kotlin",
		},
		{
			name: "executor without commands",
			mutate: func(cfg *Config) {
				cfg.Snippets.Executors = map[string]exec.Runner{
					"kotlin": {Filename: "snippet.kts"},
				}
			},
			wantErr: "snippets.executors.kotlin",
		},
		{
			name: "executor with empty argv",
			mutate: func(cfg *Config) {
				cfg.Snippets.Executors = map[string]exec.Runner{
					"kotlin": {Filename: "snippet.kts", Commands: [][]string{{}}},
				}
			},
			wantErr: "snippets.executors.kotlin",
		},
		{
			name: "binding without keys",
			mutate: func(cfg *Config) {
				cfg.Bindings = map[string][]string{"next": {}}
			},
			wantErr: "bindings.next",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}
