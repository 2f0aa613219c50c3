package logger

import (
	"strings"
)

// EventType names the kind of a logged event.
type EventType string

const (
	EventRunCommand      EventType = "run_command"
	EventUnknownCommand  EventType = "unknown_command"
	EventRedirectFailure EventType = "redirect_failure"
	EventBackgroundExit  EventType = "background_exit"
	EventRecall          EventType = "recall"
	EventRecallLoop      EventType = "recall_loop"
	EventSpawnFailure    EventType = "spawn_failure"
	EventSessionEnd      EventType = "session_end"
)

// Event is a single structured occurrence in a shell session.
type Event struct {
	Type   EventType
	Fields map[string]interface{}
}

func strs(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// RunCommand is logged when an external program is launched.
func RunCommand(args []string, path string, pid int, background bool) Event {
	return Event{Type: EventRunCommand, Fields: map[string]interface{}{
		"command":       strs(args),
		"resolved_path": path,
		"pid":           pid,
		"background":    background,
	}}
}

// UnknownCommand is logged when a command couldn't be resolved or launched.
func UnknownCommand(args []string, err error) Event {
	return Event{Type: EventUnknownCommand, Fields: map[string]interface{}{
		"command": strs(args),
		"error":   errString(err),
	}}
}

// RedirectFailure is logged when a redirection target can't be opened.
func RedirectFailure(args []string, err error) Event {
	return Event{Type: EventRedirectFailure, Fields: map[string]interface{}{
		"command": strs(args),
		"error":   errString(err),
	}}
}

// BackgroundExit is logged when the reaper collects a background child.
func BackgroundExit(pid int, label string, status int) Event {
	return Event{Type: EventBackgroundExit, Fields: map[string]interface{}{
		"pid":    pid,
		"label":  label,
		"status": status,
	}}
}

// Recall is logged when a history entry is re-run.
func Recall(token, line string, depth int) Event {
	return Event{Type: EventRecall, Fields: map[string]interface{}{
		"token": token,
		"line":  line,
		"depth": depth,
	}}
}

// RecallLoop is logged when recall nesting hits its limit.
func RecallLoop(token string, depth int) Event {
	return Event{Type: EventRecallLoop, Fields: map[string]interface{}{
		"token": token,
		"depth": depth,
	}}
}

// SpawnFailure is logged before the shell exits because no child could be
// created.
func SpawnFailure(args []string, err error) Event {
	return Event{Type: EventSpawnFailure, Fields: map[string]interface{}{
		"command": strs(args),
		"error":   errString(err),
	}}
}

// SessionEnd is logged when the shell exits.
func SessionEnd(status int) Event {
	return Event{Type: EventSessionEnd, Fields: map[string]interface{}{
		"status": status,
	}}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// CommandName extracts the first word of a logged command field.
func CommandName(fields map[string]interface{}) string {
	cmd, ok := fields["command"].([]interface{})
	if !ok || len(cmd) == 0 {
		return ""
	}
	name, _ := cmd[0].(string)
	return strings.TrimSpace(name)
}
