// Package present drives the interactive presentation: a single
// cooperative loop that pulls commands from the input source, applies
// them to the deck, polls async render operations and repaints when
// anything changed.
package present

import (
	"fmt"

	"dais/internal/deck"
	"dais/internal/input"
	"dais/internal/logging"
	"dais/internal/text"
	"dais/internal/theme"
)

// Screen is the terminal surface the presenter draws on and borrows
// out for acquire-terminal snippets and suspension.
type Screen interface {
	Suspend() error
	Resume() error
	Size() (columns, rows int, err error)
	Write(p []byte) (int, error)
}

// CommandSource supplies the unified command stream.
type CommandSource interface {
	TryNextCommand() (*input.Command, error)
}

// FileWatcher reports pending presentation file changes.
type FileWatcher interface {
	TryPoll() bool
}

// SlidePublisher broadcasts slide changes to followers.
type SlidePublisher interface {
	GoToSlide(slide int)
}

// OrphanReaper kills executions still running at shutdown.
type OrphanReaper interface {
	KillOrphans() int
}

// RebuildFunc rebuilds the presentation, e.g. after the file changed.
// A hard rebuild also re-reads external resources like the theme.
type RebuildFunc func(size deck.WindowSize, hard bool) (*deck.Presentation, error)

// Options configures a Presenter. Watcher, Publisher, Reaper and
// Rebuild are optional.
type Options struct {
	Screen       Screen
	Source       CommandSource
	Theme        *theme.Theme
	Presentation *deck.Presentation
	Bindings     []input.BindingEntry
	Watcher      FileWatcher
	Publisher    SlidePublisher
	Reaper       OrphanReaper
	Rebuild      RebuildFunc
}

// Presenter owns the render loop.
type Presenter struct {
	screen       Screen
	source       CommandSource
	theme        *theme.Theme
	drawer       *Drawer
	presentation *deck.Presentation
	bindings     []input.BindingEntry
	watcher      FileWatcher
	publisher    SlidePublisher
	reaper       OrphanReaper
	rebuild      RebuildFunc

	// stop cedes control to the shell's job control. Replaced in tests
	// so suspending does not stop the test process group.
	stop func()

	modal    modalKind
	lastSize deck.WindowSize
}

// New creates a presenter.
func New(opts Options) *Presenter {
	return &Presenter{
		screen:       opts.Screen,
		source:       opts.Source,
		theme:        opts.Theme,
		drawer:       NewDrawer(opts.Theme),
		presentation: opts.Presentation,
		bindings:     opts.Bindings,
		watcher:      opts.Watcher,
		publisher:    opts.Publisher,
		reaper:       opts.Reaper,
		rebuild:      opts.Rebuild,
		stop:         stopProcess,
		lastSize:     deck.WindowSize{Columns: 80, Rows: 24},
	}
}

// Run drives the loop until the user exits or local input fails. Each
// tick waits briefly for a command, folds in any file change, applies
// the command and polls the current slide's async operations; it
// repaints only when something changed.
func (p *Presenter) Run() error {
	if p.reaper != nil {
		defer func() {
			if killed := p.reaper.KillOrphans(); killed > 0 {
				logging.Debug("killed orphaned snippet processes", "count", killed)
			}
		}()
	}

	if err := p.draw(); err != nil {
		return err
	}

	for {
		cmd, err := p.source.TryNextCommand()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		repaint := false
		if cmd != nil {
			exit, changed := p.apply(*cmd)
			if exit {
				return nil
			}
			repaint = repaint || changed
		}
		// A file change is folded into the same tick; it never displaces
		// a command that arrived alongside it.
		if p.watcher != nil && p.watcher.TryPoll() {
			repaint = p.reload(false) || repaint
		}
		repaint = p.tickAsync() || repaint

		if repaint {
			if err := p.draw(); err != nil {
				return err
			}
		}
	}
}

// apply executes one command. Returns whether the presentation is over
// and whether the screen needs repainting.
func (p *Presenter) apply(cmd input.Command) (exit, repaint bool) {
	before := p.presentation.CurrentIndex()

	switch cmd.Kind {
	case input.KindRedraw:
		repaint = true
	case input.KindNext:
		repaint = p.presentation.Next()
	case input.KindNextFast:
		repaint = p.presentation.NextFast()
	case input.KindPrevious:
		repaint = p.presentation.Previous()
	case input.KindPreviousFast:
		repaint = p.presentation.PreviousFast()
	case input.KindFirstSlide:
		repaint = p.presentation.First()
	case input.KindLastSlide:
		repaint = p.presentation.Last()
	case input.KindGoToSlide:
		repaint = p.presentation.GoTo(cmd.Slide)
	case input.KindRenderAsync:
		for _, op := range p.presentation.CurrentSlide().AsyncOperations() {
			if op.Start() {
				repaint = true
			}
		}
	case input.KindExit:
		return true, false
	case input.KindSuspend:
		p.suspend()
		repaint = true
	case input.KindReload:
		repaint = p.reload(false)
	case input.KindHardReload:
		repaint = p.reload(true)
	case input.KindToggleIndex:
		p.modal = p.modal.toggle(modalIndex)
		repaint = true
	case input.KindToggleBindings:
		p.modal = p.modal.toggle(modalBindings)
		repaint = true
	case input.KindCloseModal:
		repaint = p.modal != modalNone
		p.modal = modalNone
	}

	if after := p.presentation.CurrentIndex(); after != before && p.publisher != nil {
		p.publisher.GoToSlide(after + 1)
	}
	return false, repaint
}

// tickAsync starts due auto-start operations and polls every async
// operation of the current slide exactly once. Start is idempotent, so
// already-running operations are not gated behind an extra poll that
// would swallow their repaint-worthy state.
func (p *Presenter) tickAsync() bool {
	repaint := false
	for _, op := range p.presentation.CurrentSlide().AsyncOperations() {
		if auto, ok := op.(deck.AutoStarter); ok && auto.AutoStart() {
			if op.Start() {
				repaint = true
			}
		}
		if op.Poll().NeedsRepaint() {
			repaint = true
		}
	}
	return repaint
}

// reload rebuilds the presentation in place, staying on the current
// slide. A failed rebuild keeps the old deck; a broken intermediate
// save should not take the presentation down.
func (p *Presenter) reload(hard bool) bool {
	if p.rebuild == nil {
		return false
	}

	current := p.presentation.CurrentIndex()
	rebuilt, err := p.rebuild(p.size(), hard)
	if err != nil {
		logging.Warn("failed to reload presentation", "error", err)
		return false
	}
	rebuilt.GoTo(current + 1)
	p.presentation = rebuilt
	return true
}

// suspend cedes the terminal and stops the process until continued.
func (p *Presenter) suspend() {
	if err := p.screen.Suspend(); err != nil {
		logging.Warn("failed to suspend terminal", "error", err)
		return
	}
	p.stop()
	if err := p.screen.Resume(); err != nil {
		logging.Error("failed to resume terminal", "error", err)
	}
}

func (p *Presenter) size() deck.WindowSize {
	columns, rows, err := p.screen.Size()
	if err != nil {
		return p.lastSize
	}
	p.lastSize = deck.WindowSize{Columns: columns, Rows: rows}
	return p.lastSize
}

func (p *Presenter) draw() error {
	size := p.size()

	var modal []text.Line
	switch p.modal {
	case modalIndex:
		modal = indexModal(p.presentation.Titles(), p.presentation.CurrentIndex(), p.theme)
	case modalBindings:
		modal = bindingsModal(p.bindings, p.theme)
	}

	return p.drawer.Draw(p.screen, p.presentation, size, modal)
}
