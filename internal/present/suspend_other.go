//go:build !unix

package present

// stopProcess is a no-op where job control does not exist.
func stopProcess() {}
