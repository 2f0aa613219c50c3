package ttylog

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

const (
	asciicastOutput = "o"
	asciicastInput  = "i"
)

// asciicastHeader is the first line of an asciicast v2 recording.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
type asciicastHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// asciicastEvent is a single [time, type, data] line.
type asciicastEvent struct {
	Seconds float64
	Type    string
	Data    string
}

func (e asciicastEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Seconds, e.Type, e.Data})
}

func (e *asciicastEvent) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("malformed event, expected 3 entries got %d", len(raw))
	}
	for i, dst := range []interface{}{&e.Seconds, &e.Type, &e.Data} {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("malformed event field %d: %w", i, err)
		}
	}
	return nil
}

// NewAsciicastLogSink creates a LogSink that writes asciicast v2. Event
// times are relative to the first entry, stdout and stderr are both written
// as output events.
func NewAsciicastLogSink(w io.Writer) LogSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var (
		started bool
		start   int64
	)
	return func(entry *Entry) error {
		if !started {
			started = true
			start = entry.TimestampMicros
			header := asciicastHeader{
				Version:   2,
				Width:     80,
				Height:    24,
				Timestamp: time.UnixMicro(start).Unix(),
				Title:     "tosh session",
				Env: map[string]string{
					"TERM":  "xterm-256color",
					"SHELL": "tosh",
				},
			}
			if err := enc.Encode(header); err != nil {
				return err
			}
		}

		event := asciicastEvent{
			Seconds: microsecondsToSeconds(entry.TimestampMicros - start),
			Type:    asciicastOutput,
			Data:    string(entry.Data),
		}
		if entry.FD == FDStdin {
			event.Type = asciicastInput
		}
		return enc.Encode(event)
	}
}

// AsciicastLogSource reads entries back from an asciicast v2 recording.
type AsciicastLogSource struct {
	dec    *json.Decoder
	header *asciicastHeader
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an asciicast formatted stream.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{dec: json.NewDecoder(r)}
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (src *AsciicastLogSource) Next() (*Entry, error) {
	if src.header == nil {
		var header asciicastHeader
		if err := src.dec.Decode(&header); err != nil {
			return nil, err
		}
		if header.Version != 2 {
			return nil, fmt.Errorf("unsupported asciicast version %d", header.Version)
		}
		src.header = &header
	}

	for {
		var event asciicastEvent
		if err := src.dec.Decode(&event); err != nil {
			return nil, err
		}

		fd := FDStdout
		switch event.Type {
		case asciicastOutput:
		case asciicastInput:
			fd = FDStdin
		default:
			// Markers, resizes and the like have no terminal data.
			continue
		}

		return &Entry{
			TimestampMicros: secondsToMicroseconds(event.Seconds),
			FD:              fd,
			Data:            []byte(event.Data),
		}, nil
	}
}

func microsecondsToSeconds(microseconds int64) float64 {
	return (time.Duration(microseconds) * time.Microsecond).Seconds()
}

func secondsToMicroseconds(seconds float64) int64 {
	return int64(math.Round(seconds * 1e6))
}
