// Package terminal owns the process-wide terminal resource: raw mode,
// the alternate screen and cursor visibility. Exactly one Session
// exists per presentation; components that need the real terminal
// borrow it through Suspend and Resume instead of touching modes
// themselves.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI control sequences used by the session and the drawer.
const (
	EnterAltScreen = "\033[?1049h"
	LeaveAltScreen = "\033[?1049l"
	ClearScreen    = "\033[2J"
	ClearLine      = "\033[K"
	CursorHome     = "\033[H"
	CursorHide     = "\033[?25l"
	CursorShow     = "\033[?25h"
)

// CursorTo returns the sequence moving the cursor to (row, col),
// 1-indexed.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// Session is the managed terminal: stdin in raw mode, output on the
// alternate screen with the cursor hidden. The zero session is
// inactive; Activate and Deactivate bracket the presentation, Suspend
// and Resume bracket anything that needs the terminal back in its
// ordinary state.
type Session struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	active   bool
}

// NewSession creates a session over stdin and the given output writer.
func NewSession(out io.Writer) *Session {
	return &Session{in: os.Stdin, out: out}
}

// Activate puts the terminal into presentation state: raw input, the
// alternate screen and a hidden cursor.
func (s *Session) Activate() error {
	if s.active {
		return fmt.Errorf("terminal session already active")
	}

	oldState, err := term.MakeRaw(int(s.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	s.oldState = oldState
	s.active = true

	if _, err := io.WriteString(s.out, EnterAltScreen+CursorHide+ClearScreen+CursorHome); err != nil {
		return fmt.Errorf("failed to enter alternate screen: %w", err)
	}
	return nil
}

// Deactivate restores the terminal to its original state. Safe to call
// on an inactive session.
func (s *Session) Deactivate() error {
	if !s.active {
		return nil
	}

	_, writeErr := io.WriteString(s.out, CursorShow+LeaveAltScreen)
	restoreErr := term.Restore(int(s.in.Fd()), s.oldState)
	s.active = false
	s.oldState = nil

	if restoreErr != nil {
		return fmt.Errorf("failed to restore terminal: %w", restoreErr)
	}
	if writeErr != nil {
		return fmt.Errorf("failed to leave alternate screen: %w", writeErr)
	}
	return nil
}

// Suspend cedes the terminal: the alternate screen is left and raw
// mode disabled so another process can use it normally.
func (s *Session) Suspend() error {
	if !s.active {
		return fmt.Errorf("terminal session not active")
	}
	return s.Deactivate()
}

// Resume reacquires the terminal after a Suspend.
func (s *Session) Resume() error {
	return s.Activate()
}

// Size returns the terminal dimensions in character cells.
func (s *Session) Size() (columns, rows int, err error) {
	columns, rows, err = term.GetSize(int(s.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return columns, rows, nil
}

// Input returns the file keyboard input is read from.
func (s *Session) Input() *os.File {
	return s.in
}

// Write writes raw output to the terminal.
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}
