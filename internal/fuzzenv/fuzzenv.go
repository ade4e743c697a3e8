// Package fuzzenv configures process-wide diagnostics for fuzz and test
// runs. Logging setup is normally single-use; fuzz drivers call into the
// harness millions of times from several workers, so the setup here is
// guarded by a race-free latch and runs exactly once per process.
package fuzzenv

import (
	"io"
	"log"
	"sync"
)

// Env is a process-wide test environment. The zero value is ready to
// use and routes diagnostics to io.Discard.
type Env struct {
	once sync.Once
	Out  io.Writer
}

// EnsureInitialized configures the logging sink on the first call and
// does nothing on every later call, from any goroutine. It never
// returns an error and never terminates the process; after the first
// call the cost is a single atomic load.
func (e *Env) EnsureInitialized() {
	e.once.Do(func() {
		out := e.Out
		if out == nil {
			out = io.Discard
		}
		log.SetFlags(0)
		log.SetOutput(out)
	})
}

var defaultEnv Env

// EnsureInitialized initializes the shared default environment.
func EnsureInitialized() {
	defaultEnv.EnsureInitialized()
}
