// Package selflog reports the problems consoledump absorbs while rendering.
//
// A dump never fails. A panicking String or ConsoleDescription method costs the
// value its display string or members, and unknown dump options or
// configuration keys are ignored. selflog is where the details of those
// events go when someone wants them.
//
// Send diagnostics to a writer while debugging a template:
//
//	selflog.Enable(selflog.Sync(os.Stderr))
//	defer selflog.Disable()
//
// The consoledump CLI forwards them to its logger when run with --verbose:
//
//	selflog.EnableFunc(func(msg string) { logger.Debug(msg) })
//
// Lines have the form "<RFC3339 UTC time> [component] message", where the
// component is one of consoledump, describe, render or configuration.
//
// Setting CONSOLEDUMP_SELFLOG to "stderr", "stdout" or a file path enables
// selflog when the package is loaded.
package selflog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// EnvVar names the environment variable read at startup.
const EnvVar = "CONSOLEDUMP_SELFLOG"

// sink receives one formatted line per diagnostic.
type sink func(line string)

var current atomic.Pointer[sink]

// Enable sends diagnostics to w, one line each. Concurrent renders may report
// at the same time, so w should be safe for concurrent use; see Sync.
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	s := sink(func(line string) {
		fmt.Fprintln(w, line)
	})
	current.Store(&s)
}

// EnableFunc sends diagnostics to fn.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	s := sink(fn)
	current.Store(&s)
}

// Disable stops reporting.
func Disable() {
	current.Store(nil)
}

// IsEnabled reports whether a destination is set. Callers check it before
// building the arguments of Printf:
//
//	if selflog.IsEnabled() {
//	    selflog.Printf("[describe] statics function panicked: %v (type=%s)", r, t)
//	}
func IsEnabled() bool {
	return current.Load() != nil
}

// Printf reports a diagnostic. The format starts with the component in square
// brackets.
func Printf(format string, args ...any) {
	s := current.Load()
	if s == nil {
		return
	}
	(*s)(time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...))
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync serializes writes to w.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// EnableFromEnv enables reporting to the destination named by dest: "stderr",
// "stdout" or a file path, which is opened for appending. An empty dest
// leaves the current state unchanged.
func EnableFromEnv(dest string) error {
	switch dest {
	case "":
		return nil
	case "stderr":
		Enable(Sync(os.Stderr))
	case "stdout":
		Enable(Sync(os.Stdout))
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("selflog: open %s: %w", dest, err)
		}
		Enable(Sync(f))
	}
	return nil
}

func init() {
	// A bad path cannot be reported anywhere yet; selflog stays off.
	_ = EnableFromEnv(os.Getenv(EnvVar))
}
