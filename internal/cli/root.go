// Package cli wires the dais command line: flag parsing, configuration
// loading and assembly of the presenter from its parts.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dais/internal/config"
	"dais/internal/deck"
	"dais/internal/exec"
	"dais/internal/input"
	"dais/internal/logging"
	"dais/internal/markdown"
	"dais/internal/notes"
	"dais/internal/present"
	"dais/internal/terminal"
	"dais/internal/theme"
	"dais/internal/watcher"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagConfig       string
	flagTheme        string
	flagEnableExec   bool
	flagPublishNotes bool
	flagListenNotes  bool
	flagNotesAddr    string
	flagVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "dais <presentation.md>",
	Short: "Terminal slideshows from markdown",
	Long: `Dais renders a markdown file as an interactive terminal presentation:
slides split on "---", code blocks with syntax highlighting and
multi-step reveals, and executable snippets whose output streams into
the slide while the presentation stays responsive.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runPresent,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("dais version {{.Version}}\n")

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file (default ~/.config/dais/config.yaml)")
	rootCmd.Flags().StringVarP(&flagTheme, "theme", "t", "", "theme name, overriding config and front matter")
	rootCmd.Flags().BoolVarP(&flagEnableExec, "enable-snippet-execution", "x", false, "allow running +exec code snippets")
	rootCmd.Flags().BoolVar(&flagPublishNotes, "publish-notes", false, "publish slide changes for a listening instance")
	rootCmd.Flags().BoolVar(&flagListenNotes, "listen-notes", false, "follow slide changes from a publishing instance")
	rootCmd.Flags().StringVar(&flagNotesAddr, "notes-addr", "", "speaker notes channel address (default from config)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.MarkFlagsMutuallyExclusive("publish-notes", "listen-notes")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runPresent(cmd *cobra.Command, args []string) error {
	logging.SetVerbose(flagVerbose)
	path := args[0]

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagEnableExec {
		cfg.Snippets.Exec = true
	}
	notesAddr := cfg.Notes.Address
	if flagNotesAddr != "" {
		notesAddr = flagNotesAddr
	}

	bindings, err := input.NewBindings(cfg.Bindings)
	if err != nil {
		return err
	}

	executor := exec.New(exec.Options{
		Runners:          cfg.Snippets.Executors,
		HiddenLinePrefix: cfg.Snippets.HiddenLinePrefix,
	})
	session := terminal.NewSession(os.Stdout)

	loader := &deckLoader{
		path:     path,
		cfg:      cfg,
		executor: executor,
		session:  session,
	}

	opts := present.Options{
		Screen:   session,
		Bindings: bindings.Entries(),
		Reaper:   executor,
	}

	var external input.ExternalEvents
	if flagListenNotes {
		listener, err := notes.NewListener(notesAddr)
		if err != nil {
			return err
		}
		defer listener.Close()
		external = listener
	}
	if flagPublishNotes {
		publisher, err := notes.NewPublisher(notesAddr)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts.Publisher = publisher
	}

	fileWatcher, err := watcher.New(path)
	if err != nil {
		logging.Warn("presentation reload disabled", "error", err)
	} else {
		defer fileWatcher.Close()
		opts.Watcher = fileWatcher
	}

	if err := session.Activate(); err != nil {
		return err
	}
	defer func() {
		if err := session.Deactivate(); err != nil {
			logging.Error("failed to restore terminal", "error", err)
		}
	}()

	columns, rows, err := session.Size()
	if err != nil {
		return err
	}
	presentation, err := loader.load(deck.WindowSize{Columns: columns, Rows: rows}, true)
	if err != nil {
		return err
	}

	opts.Source = input.NewSource(input.SourceOptions{
		Input:       session.Input(),
		Bindings:    bindings,
		External:    external,
		WatchResize: true,
	})
	opts.Presentation = presentation
	opts.Theme = loader.theme
	opts.Rebuild = loader.load

	return present.New(opts).Run()
}

// deckLoader reads, themes and builds the presentation; the same path
// serves the initial load and watcher-driven reloads.
type deckLoader struct {
	path     string
	cfg      *config.Config
	executor exec.SnippetExecutor
	session  *terminal.Session

	theme   *theme.Theme
	builder *markdown.Builder
}

// load builds the presentation for the window size. A hard load also
// re-resolves the theme from flags, front matter and config.
func (l *deckLoader) load(size deck.WindowSize, hard bool) (*deck.Presentation, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presentation: %w", err)
	}
	meta, body, err := markdown.SplitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	if hard || l.builder == nil {
		th, err := theme.ByName(resolveThemeName(meta, l.cfg))
		if err != nil {
			return nil, err
		}
		l.theme = th
		l.builder = markdown.NewBuilder(markdown.Options{
			Theme:            th,
			Executor:         l.executor,
			Terminal:         l.session,
			ExecutionEnabled: l.cfg.Snippets.Exec,
			HiddenLinePrefix: l.cfg.Snippets.HiddenLinePrefix,
		})
	}

	slides, err := l.builder.Build(body, size.Columns)
	if err != nil {
		return nil, err
	}
	if intro := l.builder.IntroSlide(meta, size); intro != nil {
		slides = append([]*deck.Slide{intro}, slides...)
	}
	return deck.NewPresentation(slides), nil
}

// resolveThemeName picks the theme: the flag wins, then the file's
// front matter, then config.
func resolveThemeName(meta markdown.Meta, cfg *config.Config) string {
	if flagTheme != "" {
		return flagTheme
	}
	if meta.Theme != "" {
		return meta.Theme
	}
	return cfg.Theme
}
