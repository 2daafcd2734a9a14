package input

import (
	"io"
	"strconv"
	"time"

	"dais/internal/logging"
	"dais/internal/terminal"
)

// DefaultPollTimeout bounds how long TryNextCommand waits for local
// input. Short enough that async operations keep getting polled while
// the keyboard is idle.
const DefaultPollTimeout = 250 * time.Millisecond

// ExternalEvents is the speaker-notes side of the command stream: a
// non-blocking check for a pending slide-jump event.
type ExternalEvents interface {
	// TryRecv returns the latest pending 1-based slide number, if any.
	TryRecv() (slide int, ok bool)
}

type keyResult struct {
	event terminal.KeyEvent
	err   error
}

// Source merges local keyboard input and an optional external event
// stream into one ordered command sequence. A reader goroutine decodes
// keys into a channel; TryNextCommand selects over that, the resize
// signal and a bounded timeout.
type Source struct {
	bindings *Bindings
	external ExternalEvents
	timeout  time.Duration

	keys   chan keyResult
	resize chan struct{}
	digits []rune
}

// SourceOptions configures a Source.
type SourceOptions struct {
	// Input is the raw terminal input stream.
	Input io.Reader
	// Bindings resolves keys to commands.
	Bindings *Bindings
	// External is the optional speaker-notes event stream.
	External ExternalEvents
	// Timeout overrides the local input wait. Zero means the default.
	Timeout time.Duration
	// WatchResize registers for terminal resize signals when set.
	WatchResize bool
}

// NewSource starts the key reader goroutine and returns the source.
func NewSource(opts SourceOptions) *Source {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultPollTimeout
	}
	s := &Source{
		bindings: opts.Bindings,
		external: opts.External,
		timeout:  opts.Timeout,
		keys:     make(chan keyResult, 16),
		resize:   make(chan struct{}, 1),
	}
	if opts.WatchResize {
		notifyResize(s.resize)
	}

	go func() {
		reader := terminal.NewKeyReader(opts.Input)
		for {
			ev, err := reader.ReadKey()
			s.keys <- keyResult{event: ev, err: err}
			if err != nil {
				return
			}
		}
	}()
	return s
}

// Bindings returns the active key bindings, for the bindings modal.
func (s *Source) Bindings() *Bindings {
	return s.bindings
}

// TryNextCommand returns the next pending command, or nil when nothing
// arrives within the bounded wait. The external event stream has
// priority and is checked without blocking; only local input failures
// are returned as errors, external ones having already been dropped at
// the listener.
func (s *Source) TryNextCommand() (*Command, error) {
	if s.external != nil {
		if slide, ok := s.external.TryRecv(); ok {
			return &Command{Kind: KindGoToSlide, Slide: slide}, nil
		}
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case res := <-s.keys:
		if res.err != nil {
			return nil, res.err
		}
		return s.resolve(res.event), nil
	case <-s.resize:
		return &Command{Kind: KindRedraw}, nil
	case <-timer.C:
		return nil, nil
	}
}

// resolve maps a key event to a command, tracking the numeric prefix
// that turns the last-slide key into a go-to-slide jump, vi style:
// "12G" goes to slide 12.
func (s *Source) resolve(ev terminal.KeyEvent) *Command {
	kind, bound := s.bindings.Resolve(ev)
	if !bound {
		if ev.Key == terminal.KeyRune && ev.Rune >= '0' && ev.Rune <= '9' {
			s.digits = append(s.digits, ev.Rune)
		} else {
			s.digits = nil
		}
		return nil
	}

	digits := s.digits
	s.digits = nil
	if kind == KindLastSlide && len(digits) > 0 {
		slide, err := strconv.Atoi(string(digits))
		if err != nil {
			logging.Warn("ignoring numeric prefix", "prefix", string(digits))
			return &Command{Kind: KindLastSlide}
		}
		return &Command{Kind: KindGoToSlide, Slide: slide}
	}
	return &Command{Kind: kind}
}
