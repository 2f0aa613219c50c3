// Package ttylog records and replays shell sessions.
package ttylog

import (
	"io"
	"log"
	"sync"
	"time"
)

// FD identifies the stream an event was seen on.
type FD int

const (
	FDStdin  FD = 0
	FDStdout FD = 1
	FDStderr FD = 2
)

// Entry is one chunk of terminal I/O.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It reutrns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(logEntry *Entry) error {
		once.Do(func() {
			prevTimeMicros = logEntry.TimestampMicros
		})

		delta := logEntry.TimestampMicros - prevTimeMicros
		prevTimeMicros = logEntry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(logEntry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(logEntry *Entry) error {
		if logEntry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(logEntry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		logEntry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(logEntry); err != nil {
			return err
		}
	}
}

// Recorder tees the shell's output streams and input lines into a LogSink.
type Recorder struct {
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
}

// NewRecorder creates a logger that forwards all events to output.
func NewRecorder(output LogSink) *Recorder {
	return &Recorder{
		output: output,
		now:    time.Now,
	}
}

func (r *Recorder) record(fd FD, data []byte) {
	if len(data) == 0 {
		return
	}
	cp := append([]byte(nil), data...)

	r.mutex.Lock()
	err := r.output(&Entry{
		TimestampMicros: r.now().UnixNano() / int64(time.Microsecond),
		FD:              fd,
		Data:            cp,
	})
	r.mutex.Unlock()
	if err != nil {
		log.Print(err)
	}
}

// RecordInput logs a line the user typed.
func (r *Recorder) RecordInput(line string) {
	r.record(FDStdin, []byte(line+"\n"))
}

// Writer wraps w so everything written to it is also recorded on fd.
func (r *Recorder) Writer(fd FD, w io.Writer) io.Writer {
	return &recorderWriter{r: r, fd: fd, wrapped: w}
}

type recorderWriter struct {
	r       *Recorder
	fd      FD
	wrapped io.Writer
}

var _ io.Writer = (*recorderWriter)(nil)

func (rw *recorderWriter) Write(p []byte) (int, error) {
	n, err := rw.wrapped.Write(p)
	rw.r.record(rw.fd, p[:n])
	return n, err
}
