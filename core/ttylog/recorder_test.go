package ttylog

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_asciicast(t *testing.T) {
	cast := &bytes.Buffer{}
	recorder := NewRecorder(NewAsciicastLogSink(cast))
	tick := time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
	recorder.now = func() time.Time {
		tick = tick.Add(500 * time.Millisecond)
		return tick
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	out := recorder.Writer(FDStdout, stdout)
	errOut := recorder.Writer(FDStderr, stderr)

	fmt.Fprint(out, "tosh$ ")
	recorder.RecordInput("echo hi")
	fmt.Fprintln(out, "hi")
	fmt.Fprintln(errOut, "ERROR: Command not found")

	assert.Equal(t, "tosh$ hi\n", stdout.String(), "writes pass through")
	assert.Equal(t, "ERROR: Command not found\n", stderr.String())

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 5, "header plus four events")
	assert.Contains(t, lines[0], `"version":2`)
	assert.Equal(t, `[0,"o","tosh$ "]`, lines[1])
	assert.Equal(t, `[0.5,"i","echo hi\n"]`, lines[2])

	// Replaying to a terminal drops input and keeps both output streams.
	replayed := &bytes.Buffer{}
	require.NoError(t, Replay(NewAsciicastLogSource(cast), NewClientOutput(replayed)))
	assert.Equal(t, "tosh$ hi\nERROR: Command not found\n", replayed.String())
}

func TestRecorder_emptyWrite(t *testing.T) {
	var entries []*Entry
	recorder := NewRecorder(func(e *Entry) error {
		entries = append(entries, e)
		return nil
	})

	recorder.Writer(FDStdout, &bytes.Buffer{}).Write(nil)
	assert.Empty(t, entries)
}

func TestRealTimePlayback(t *testing.T) {
	var got []int64
	sink := NewRealTimePlayback(time.Millisecond, func(e *Entry) error {
		got = append(got, e.TimestampMicros)
		return nil
	})

	start := time.Now()
	for _, ts := range []int64{0, 10e6, 20e6} {
		require.NoError(t, sink(&Entry{TimestampMicros: ts}))
	}

	assert.Equal(t, []int64{0, 10e6, 20e6}, got)
	assert.Less(t, int64(time.Since(start)), int64(time.Second), "sleeps are capped")
}
