package exec

import "sync"

// Status describes where a snippet execution stands.
type Status int

const (
	// StatusRunning means the process has not exited yet.
	StatusRunning Status = iota
	// StatusSuccess means every command exited with code zero.
	StatusSuccess
	// StatusFailure means a command exited non-zero or failed to run.
	StatusFailure
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is the output buffer shared between an execution's capture
// goroutine and the render loop. The goroutine appends and eventually
// finishes; the loop drains. Both sides hold the lock only briefly.
type State struct {
	mu     sync.Mutex
	output []byte
	status Status
}

// NewState creates a state in the running status.
func NewState() *State {
	return &State{status: StatusRunning}
}

// Append adds newly captured output.
func (s *State) Append(b []byte) {
	if len(b) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, b...)
}

// Finish records the final status. Later calls are ignored.
func (s *State) Finish(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRunning {
		s.status = status
	}
}

// TakeOutput drains the buffered output and reports the current
// status. Output already taken is not returned again.
func (s *State) TakeOutput() ([]byte, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.output
	s.output = nil
	return out, s.status
}

// Handle is the live resource representing one snippet execution. The
// render operation that started the execution owns it until completion
// is observed, then drops it.
type Handle struct {
	State *State
}

// TakeOutput drains newly produced output and reports the status.
func (h *Handle) TakeOutput() ([]byte, Status) {
	return h.State.TakeOutput()
}
