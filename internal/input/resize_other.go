//go:build !unix

package input

// notifyResize is a no-op where SIGWINCH does not exist; resizes are
// picked up on the next repaint instead.
func notifyResize(resize chan<- struct{}) {}
