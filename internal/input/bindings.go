package input

import (
	"fmt"
	"sort"
	"strings"

	"dais/internal/terminal"
)

// BindingError reports an unusable key binding configuration entry.
type BindingError struct {
	Command string
	Spec    string
	Message string
}

func (e *BindingError) Error() string {
	if e.Spec == "" {
		return fmt.Sprintf("invalid binding for %q: %s", e.Command, e.Message)
	}
	return fmt.Sprintf("invalid binding %q for %q: %s", e.Spec, e.Command, e.Message)
}

// namedKeys maps key spec names to the keys they stand for.
var namedKeys = map[string]terminal.KeyEvent{
	"up":        {Key: terminal.KeyUp},
	"down":      {Key: terminal.KeyDown},
	"left":      {Key: terminal.KeyLeft},
	"right":     {Key: terminal.KeyRight},
	"home":      {Key: terminal.KeyHome},
	"end":       {Key: terminal.KeyEnd},
	"pageup":    {Key: terminal.KeyPageUp},
	"pagedown":  {Key: terminal.KeyPageDown},
	"esc":       {Key: terminal.KeyEscape},
	"enter":     {Key: terminal.KeyEnter},
	"tab":       {Key: terminal.KeyTab},
	"backspace": {Key: terminal.KeyBackspace},
	"space":     {Key: terminal.KeyRune, Rune: ' '},
}

// ParseKeySpec converts a key spec string into the key event it names:
// a named key ("right", "pagedown"), "ctrl+<letter>", or a single
// character.
func ParseKeySpec(spec string) (terminal.KeyEvent, error) {
	if ev, ok := namedKeys[strings.ToLower(spec)]; ok && len(spec) > 1 {
		return ev, nil
	}
	if rest, ok := cutCtrlPrefix(spec); ok {
		runes := []rune(strings.ToLower(rest))
		if len(runes) != 1 || runes[0] < 'a' || runes[0] > 'z' {
			return terminal.KeyEvent{}, fmt.Errorf("ctrl combinations must use a letter")
		}
		return terminal.KeyEvent{Key: terminal.KeyCtrl, Rune: runes[0]}, nil
	}

	runes := []rune(spec)
	if len(runes) != 1 {
		return terminal.KeyEvent{}, fmt.Errorf("unknown key name")
	}
	return terminal.KeyEvent{Key: terminal.KeyRune, Rune: runes[0]}, nil
}

func cutCtrlPrefix(spec string) (string, bool) {
	lower := strings.ToLower(spec)
	if rest, ok := strings.CutPrefix(lower, "ctrl+"); ok {
		return rest, true
	}
	return "", false
}

// bindableCommands are the command kinds key bindings may target.
var bindableCommands = []CommandKind{
	KindRedraw,
	KindNext,
	KindNextFast,
	KindPrevious,
	KindPreviousFast,
	KindFirstSlide,
	KindLastSlide,
	KindRenderAsync,
	KindExit,
	KindSuspend,
	KindHardReload,
	KindToggleIndex,
	KindToggleBindings,
	KindCloseModal,
}

// defaultBindings is the built-in key map. Config entries replace a
// command's list wholesale.
var defaultBindings = map[CommandKind][]string{
	KindRedraw:         {"ctrl+l"},
	KindNext:           {"l", "j", "right", "down", "pagedown", "space", "enter"},
	KindNextFast:       {"n"},
	KindPrevious:       {"h", "k", "left", "up", "pageup", "backspace"},
	KindPreviousFast:   {"p"},
	KindFirstSlide:     {"home"},
	KindLastSlide:      {"end", "G"},
	KindRenderAsync:    {"ctrl+e"},
	KindExit:           {"q", "ctrl+c"},
	KindSuspend:        {"ctrl+z"},
	KindHardReload:     {"ctrl+r"},
	KindToggleIndex:    {"ctrl+p"},
	KindToggleBindings: {"?"},
	KindCloseModal:     {"esc"},
}

// BindingEntry describes one command's keys, for the bindings modal.
type BindingEntry struct {
	Command string
	Keys    []string
}

// Bindings resolves key events into commands.
type Bindings struct {
	keys    map[terminal.KeyEvent]CommandKind
	entries []BindingEntry
}

// NewBindings builds the key map from the defaults with the config
// overrides applied. Overriding an unknown command or using an
// unparseable key spec is an error.
func NewBindings(overrides map[string][]string) (*Bindings, error) {
	byName := make(map[string]CommandKind, len(bindableCommands))
	for _, kind := range bindableCommands {
		byName[kind.String()] = kind
	}

	specs := make(map[CommandKind][]string, len(defaultBindings))
	for kind, keys := range defaultBindings {
		specs[kind] = keys
	}
	for command, keys := range overrides {
		kind, ok := byName[command]
		if !ok {
			return nil, &BindingError{Command: command, Message: "unknown command"}
		}
		if len(keys) == 0 {
			return nil, &BindingError{Command: command, Message: "must have at least one key"}
		}
		specs[kind] = keys
	}

	b := &Bindings{keys: make(map[terminal.KeyEvent]CommandKind)}
	for _, kind := range bindableCommands {
		keys := specs[kind]
		for _, spec := range keys {
			ev, err := ParseKeySpec(spec)
			if err != nil {
				return nil, &BindingError{Command: kind.String(), Spec: spec, Message: err.Error()}
			}
			if bound, taken := b.keys[ev]; taken && bound != kind {
				return nil, &BindingError{
					Command: kind.String(),
					Spec:    spec,
					Message: fmt.Sprintf("already bound to %s", bound),
				}
			}
			b.keys[ev] = kind
		}
		b.entries = append(b.entries, BindingEntry{Command: kind.String(), Keys: keys})
	}
	sort.Slice(b.entries, func(i, j int) bool {
		return b.entries[i].Command < b.entries[j].Command
	})
	return b, nil
}

// Resolve returns the command kind bound to the key event.
func (b *Bindings) Resolve(ev terminal.KeyEvent) (CommandKind, bool) {
	kind, ok := b.keys[ev]
	return kind, ok
}

// Entries lists every command with its keys, sorted by command name.
func (b *Bindings) Entries() []BindingEntry {
	return b.entries
}
