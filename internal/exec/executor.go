package exec

import (
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"path/filepath"
	"sync"

	"dais/internal/snippet"
)

// ErrNotExecutable is returned for snippets without an execution
// attribute.
var ErrNotExecutable = errors.New("snippet is not executable")

// UnsupportedLanguageError is returned when no runner is registered for
// a snippet's language.
type UnsupportedLanguageError struct {
	Language snippet.Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("no executor registered for language %q", string(e.Language))
}

// Runner describes how to execute snippets of one language: the file
// the body is written to and the commands run, in order, in the
// directory holding that file.
type Runner struct {
	Filename string     `yaml:"filename"`
	Commands [][]string `yaml:"commands"`
}

// SnippetExecutor is the execution surface render operations depend on.
// The abstraction allows tests to substitute a mock.
type SnippetExecutor interface {
	// ExecuteAsync starts the snippet in the background and returns a
	// handle for draining its output. It never blocks on the process.
	ExecuteAsync(s *snippet.Snippet) (*Handle, error)
	// ExecuteSync runs the snippet to completion with the calling
	// process's terminal attached.
	ExecuteSync(s *snippet.Snippet) error
}

// Executor runs snippets with real processes.
type Executor struct {
	runners      map[snippet.Language]Runner
	hiddenPrefix string

	mu   sync.Mutex
	live map[*Handle]*os.Process
}

// Options configures an Executor.
type Options struct {
	// Runners overrides or extends the built-in runner table, keyed by
	// language tag.
	Runners map[string]Runner
	// HiddenLinePrefix marks snippet lines that execute but do not
	// display, e.g. "# ".
	HiddenLinePrefix string
}

// New creates an Executor with the built-in runner table plus any
// overrides from opts.
func New(opts Options) *Executor {
	runners := defaultRunners()
	for lang, runner := range opts.Runners {
		runners[snippet.Language(lang)] = runner
	}
	return &Executor{
		runners:      runners,
		hiddenPrefix: opts.HiddenLinePrefix,
		live:         make(map[*Handle]*os.Process),
	}
}

func defaultRunners() map[snippet.Language]Runner {
	script := func(filename string, argv ...string) Runner {
		return Runner{Filename: filename, Commands: [][]string{argv}}
	}
	compiled := func(filename string, build []string, run []string) Runner {
		return Runner{Filename: filename, Commands: [][]string{build, run}}
	}

	return map[snippet.Language]Runner{
		snippet.LanguageBash:   script("script.sh", "bash", "script.sh"),
		snippet.LanguageShell:  script("script.sh", "sh", "script.sh"),
		"zsh":                  script("script.zsh", "zsh", "script.zsh"),
		"fish":                 script("script.fish", "fish", "script.fish"),
		snippet.LanguagePython: script("snippet.py", "python3", "snippet.py"),
		"javascript":           script("snippet.js", "node", "snippet.js"),
		"ruby":                 script("snippet.rb", "ruby", "snippet.rb"),
		"perl":                 script("snippet.pl", "perl", "snippet.pl"),
		"lua":                  script("snippet.lua", "lua", "snippet.lua"),
		snippet.LanguageGo:     script("main.go", "go", "run", "main.go"),
		snippet.LanguageRust:   compiled("snippet.rs", []string{"rustc", "snippet.rs", "-o", "snippet"}, []string{"./snippet"}),
		"c":                    compiled("snippet.c", []string{"cc", "snippet.c", "-o", "snippet"}, []string{"./snippet"}),
		"cpp":                  compiled("snippet.cpp", []string{"c++", "snippet.cpp", "-o", "snippet"}, []string{"./snippet"}),
	}
}

// prepare validates the snippet and materializes its executable body in
// a fresh temp directory. The caller removes the directory.
func (e *Executor) prepare(s *snippet.Snippet) (dir string, runner Runner, err error) {
	if !s.Executable() {
		return "", Runner{}, ErrNotExecutable
	}
	runner, ok := e.runners[s.Language]
	if !ok {
		return "", Runner{}, &UnsupportedLanguageError{Language: s.Language}
	}

	dir, err = os.MkdirTemp("", "dais-snippet-")
	if err != nil {
		return "", Runner{}, fmt.Errorf("failed to create snippet dir: %w", err)
	}
	body := s.ExecutableBody(e.hiddenPrefix)
	if err := os.WriteFile(filepath.Join(dir, runner.Filename), []byte(body), 0o644); err != nil {
		os.RemoveAll(dir)
		return "", Runner{}, fmt.Errorf("failed to write snippet: %w", err)
	}
	return dir, runner, nil
}

// ExecuteAsync starts the snippet's first command and hands off to a
// capture goroutine. Spawn failures surface here; anything after a
// successful spawn is folded into the handle's state instead.
func (e *Executor) ExecuteAsync(s *snippet.Snippet) (*Handle, error) {
	dir, runner, err := e.prepare(s)
	if err != nil {
		return nil, err
	}

	cmd := commandIn(dir, runner.Commands[0])
	r, w, err := os.Pipe()
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		w.Close()
		r.Close()
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to start %s: %w", runner.Commands[0][0], err)
	}
	// The parent's copy of the write end must close so reads see EOF
	// once the child exits.
	w.Close()

	handle := &Handle{State: NewState()}
	e.track(handle, cmd.Process)
	go e.capture(handle, dir, r, cmd, runner.Commands[1:])
	return handle, nil
}

// capture streams output from the running command into the handle's
// state, runs any follow-up commands, and records the final status.
func (e *Executor) capture(handle *Handle, dir string, r *os.File, cmd *osexec.Cmd, rest [][]string) {
	defer e.untrack(handle)
	defer os.RemoveAll(dir)

	for {
		if !e.drainAndWait(handle, r, cmd) {
			return
		}
		if len(rest) == 0 {
			handle.State.Finish(StatusSuccess)
			return
		}

		argv := rest[0]
		rest = rest[1:]
		cmd = commandIn(dir, argv)

		var w *os.File
		var err error
		r, w, err = os.Pipe()
		if err != nil {
			handle.State.Append([]byte("error: " + err.Error() + "\n"))
			handle.State.Finish(StatusFailure)
			return
		}
		cmd.Stdout = w
		cmd.Stderr = w
		if err := cmd.Start(); err != nil {
			w.Close()
			r.Close()
			handle.State.Append([]byte(fmt.Sprintf("error: failed to start %s: %v\n", argv[0], err)))
			handle.State.Finish(StatusFailure)
			return
		}
		w.Close()
		e.track(handle, cmd.Process)
	}
}

// drainAndWait reads the command's combined output to EOF and waits for
// it. Returns false once the execution has finished with a failure.
func (e *Executor) drainAndWait(handle *Handle, r *os.File, cmd *osexec.Cmd) bool {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			handle.State.Append(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				handle.State.Append([]byte("error: " + err.Error() + "\n"))
			}
			break
		}
	}
	r.Close()

	if err := cmd.Wait(); err != nil {
		if _, ok := err.(*osexec.ExitError); !ok {
			handle.State.Append([]byte("error: " + err.Error() + "\n"))
		}
		handle.State.Finish(StatusFailure)
		return false
	}
	return true
}

// ExecuteSync runs the snippet's commands to completion with the
// calling process's stdin, stdout and stderr attached.
func (e *Executor) ExecuteSync(s *snippet.Snippet) error {
	dir, runner, err := e.prepare(s)
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	for _, argv := range runner.Commands {
		cmd := commandIn(dir, argv)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*osexec.ExitError); ok {
				return fmt.Errorf("%s exited with code %d", argv[0], exitErr.ExitCode())
			}
			return fmt.Errorf("failed to run %s: %w", argv[0], err)
		}
	}
	return nil
}

// KillOrphans kills every tracked process still running and returns how
// many were signalled. Called when the presentation exits.
func (e *Executor) KillOrphans() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	killed := 0
	for _, proc := range e.live {
		if proc.Kill() == nil {
			killed++
		}
	}
	return killed
}

func (e *Executor) track(handle *Handle, proc *os.Process) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.live[handle] = proc
}

func (e *Executor) untrack(handle *Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.live, handle)
}

func commandIn(dir string, argv []string) *osexec.Cmd {
	cmd := osexec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	return cmd
}

// MockExecutor is a test double for SnippetExecutor.
type MockExecutor struct {
	// ExecuteAsyncFunc is called when ExecuteAsync is invoked. If nil,
	// a handle that already finished successfully with no output is
	// returned.
	ExecuteAsyncFunc func(s *snippet.Snippet) (*Handle, error)
	// ExecuteSyncFunc is called when ExecuteSync is invoked. If nil,
	// ExecuteSync returns nil.
	ExecuteSyncFunc func(s *snippet.Snippet) error
}

// ExecuteAsync calls the mock function if set.
func (m *MockExecutor) ExecuteAsync(s *snippet.Snippet) (*Handle, error) {
	if m.ExecuteAsyncFunc != nil {
		return m.ExecuteAsyncFunc(s)
	}
	handle := &Handle{State: NewState()}
	handle.State.Finish(StatusSuccess)
	return handle, nil
}

// ExecuteSync calls the mock function if set.
func (m *MockExecutor) ExecuteSync(s *snippet.Snippet) error {
	if m.ExecuteSyncFunc != nil {
		return m.ExecuteSyncFunc(s)
	}
	return nil
}
