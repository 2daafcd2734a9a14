//go:build unix

package present

import "syscall"

// stopProcess sends SIGTSTP to the whole process group, returning the
// terminal to the shell until the user foregrounds dais again.
func stopProcess() {
	syscall.Kill(0, syscall.SIGTSTP)
}
