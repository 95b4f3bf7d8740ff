package brainfuck

import (
	"io"
)

type flusher interface {
	Flush() error
}

// AutoNewlineWriter decorates a byte sink so the stream can be guaranteed to
// end on a line boundary. It never touches bytes already written; it only
// remembers whether the last one was '\n'. Callers must invoke Finalize on
// every exit path, normal or not; Go has no destructor to lean on.
type AutoNewlineWriter struct {
	w           io.Writer
	lastNewline bool
}

func NewAutoNewlineWriter(w io.Writer) *AutoNewlineWriter {
	return &AutoNewlineWriter{w: w}
}

func (a *AutoNewlineWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		a.lastNewline = p[len(p)-1] == '\n'
	}
	return a.w.Write(p)
}

// Flush flushes the wrapped writer when it is buffered, and is a no-op
// otherwise.
func (a *AutoNewlineWriter) Flush() error {
	if f, ok := a.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Finalize appends exactly one '\n' unless the last byte written already was
// one. Idempotent; a stream that never saw a write still gets its
// terminator, matching an interactive program whose output would otherwise
// leave the cursor mid-line.
func (a *AutoNewlineWriter) Finalize() error {
	if a.lastNewline {
		return nil
	}
	if _, err := a.Write([]byte{'\n'}); err != nil {
		return err
	}
	return a.Flush()
}
