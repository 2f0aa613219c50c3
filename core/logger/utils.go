package logger

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// LogEntry is the wire form of an event.
type LogEntry = structpb.Struct

// Entry field names.
const (
	FieldTimestampMicros = "timestamp_micros"
	FieldSessionID       = "session_id"
	FieldType            = "type"
	FieldEvent           = "event"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures shell events.
type Logger struct {
	Record LogRecorder

	now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := protojson.MarshalOptions{}.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) timestamp() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	fields := event.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}

	le, err := structpb.NewStruct(map[string]interface{}{
		FieldTimestampMicros: l.timestamp().UnixNano() / int64(time.Microsecond),
		FieldSessionID:       sessionID,
		FieldType:            string(event.Type),
		FieldEvent:           fields,
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger with no session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record logs the event.
func (l *SessionLogger) Record(event Event) error {
	return l.recordEvent(l.sessionID, event)
}
