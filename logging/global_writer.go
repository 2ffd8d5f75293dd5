package logging

import (
	"io"
	"os"
	"sync/atomic"
)

// stderrSink is the console destination shared by every component logger.
// The terminal UI mutes it while it owns the screen.
type stderrSink struct {
	dst atomic.Pointer[sinkTarget]
}

type sinkTarget struct{ w io.Writer }

func (s *stderrSink) Write(p []byte) (int, error) {
	return s.dst.Load().w.Write(p)
}

func (s *stderrSink) swap(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	return s.dst.Swap(&sinkTarget{w: w}).w
}

var console = newStderrSink()

func newStderrSink() *stderrSink {
	s := &stderrSink{}
	s.dst.Store(&sinkTarget{w: os.Stderr})
	return s
}

// SetGlobalOutput points the console sink of every logger at w. nil discards.
func SetGlobalOutput(w io.Writer) {
	console.swap(w)
}

// SuspendStderr discards console logging until the returned func is called,
// which restores the previous destination.
func SuspendStderr() (restore func()) {
	prev := console.swap(io.Discard)
	return func() { console.swap(prev) }
}

// GetGlobalOutput returns the console sink loggers write to.
func GetGlobalOutput() io.Writer {
	return console
}
