package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var logEntry structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	Redirect       RedirectReport       `json:"redirect_failure_report"`
	Background     BackgroundReport     `json:"background_report"`
	Recall         RecallReport         `json:"recall_report"`
	SpawnFailures  int                  `json:"spawn_failures"`
}

// Update adds a log entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	fields := le.AsMap()
	event, _ := fields[FieldEvent].(map[string]interface{})
	if session, ok := fields[FieldSessionID].(string); ok && session != "" {
		r.Sessions.Increment(session)
	}

	eventType, _ := fields[FieldType].(string)
	switch EventType(eventType) {
	case EventRunCommand:
		r.RunCommand.update(event)
	case EventUnknownCommand:
		r.UnknownCommand.update(event)
	case EventRedirectFailure:
		r.Redirect.update(event)
	case EventBackgroundExit:
		r.Background.update(event)
	case EventRecall, EventRecallLoop:
		r.Recall.update(EventType(eventType))
	case EventSpawnFailure:
		r.SpawnFailures++
	case EventSessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%q", eventType))
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	Background   int        `json:"background"`
}

func (r *RunCommandReport) update(event map[string]interface{}) {
	if path, ok := event["resolved_path"].(string); ok {
		r.ResolvedCommandPaths.Increment(path)
	}
	if name := CommandName(event); name != "" {
		r.CommandNames.Increment(name)
	}
	if bg, _ := event["background"].(bool); bg {
		r.Background++
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(event map[string]interface{}) {
	if name := CommandName(event); name != "" {
		r.CommandNames.Increment(name)
	}
}

type RedirectReport struct {
	Failures *PathCounter `json:"failures"`
}

func (r *RedirectReport) update(event map[string]interface{}) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "error")
	}
	errMsg, _ := event["error"].(string)
	r.Failures.Increment(CommandName(event), errMsg)
}

type BackgroundReport struct {
	Collected int        `json:"collected"`
	Statuses  StrCounter `json:"statuses"`
}

func (r *BackgroundReport) update(event map[string]interface{}) {
	r.Collected++
	// protojson numbers are always float64.
	if status, ok := event["status"].(float64); ok {
		r.Statuses.Increment(fmt.Sprintf("%d", int(status)))
	}
}

type RecallReport struct {
	Recalls int `json:"recalls"`
	Loops   int `json:"loops"`
}

func (r *RecallReport) update(eventType EventType) {
	if eventType == EventRecallLoop {
		r.Loops++
		return
	}
	r.Recalls++
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns how many times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// Len returns the number of distinct keys.
func (s *StrCounter) Len() int {
	return len(s.internal)
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
