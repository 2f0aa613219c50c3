package proc

import (
	"io"
	"os"
)

// Stdio holds the three standard streams handed to a command.
//
// When a stream is an *os.File the child receives the descriptor directly,
// otherwise exec copies through a pipe.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// OSStdio returns the process's own standard streams.
func OSStdio() Stdio {
	return Stdio{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// WithStdin returns a copy of the streams with stdin replaced.
func (s Stdio) WithStdin(r io.Reader) Stdio {
	s.Stdin = r
	return s
}

// WithStdout returns a copy of the streams with stdout replaced.
func (s Stdio) WithStdout(w io.Writer) Stdio {
	s.Stdout = w
	return s
}

// WithStderr returns a copy of the streams with stderr replaced.
func (s Stdio) WithStderr(w io.Writer) Stdio {
	s.Stderr = w
	return s
}

// orDiscard fills nil streams so children never inherit a closed slot.
func (s Stdio) orDiscard() Stdio {
	if s.Stdin == nil {
		s.Stdin = closedReader{}
	}
	if s.Stdout == nil {
		s.Stdout = io.Discard
	}
	if s.Stderr == nil {
		s.Stderr = io.Discard
	}
	return s
}

// closedReader always reports end of input.
type closedReader struct{}

func (closedReader) Read([]byte) (int, error) {
	return 0, io.EOF
}

// Closers closes a list of descriptors, keeping the last error.
type Closers []io.Closer

// Close implements io.Closer.
func (lc Closers) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
