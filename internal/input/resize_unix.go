//go:build unix

package input

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyResize forwards SIGWINCH into the resize channel, dropping
// signals while one is already pending.
func notifyResize(resize chan<- struct{}) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGWINCH)
	go func() {
		for range sigs {
			select {
			case resize <- struct{}{}:
			default:
			}
		}
	}()
}
