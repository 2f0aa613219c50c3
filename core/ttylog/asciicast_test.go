package ttylog

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsciicastLogSink(t *testing.T) {
	cast := &bytes.Buffer{}
	sink := NewAsciicastLogSink(cast)

	for _, e := range []*Entry{
		{TimestampMicros: 1136171045000000, FD: FDStdout, Data: []byte("tosh$ ")},
		{TimestampMicros: 1136171046250000, FD: FDStdin, Data: []byte("ls | wc -l\n")},
		{TimestampMicros: 1136171046500000, FD: FDStdout, Data: []byte("3\n")},
		{TimestampMicros: 1136171047000000, FD: FDStderr, Data: []byte("ERROR: Command not found\n")},
	} {
		require.NoError(t, sink(e))
	}

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 5)
	assert.JSONEq(t, `{
		"version": 2,
		"width": 80,
		"height": 24,
		"timestamp": 1136171045,
		"title": "tosh session",
		"env": {"TERM": "xterm-256color", "SHELL": "tosh"}
	}`, lines[0])
	assert.Equal(t, []string{
		`[0,"o","tosh$ "]`,
		`[1.25,"i","ls | wc -l\n"]`,
		`[1.5,"o","3\n"]`,
		`[2,"o","ERROR: Command not found\n"]`,
	}, lines[1:])
}

func TestAsciicastLogSource(t *testing.T) {
	cast := strings.Join([]string{
		`{"version":2,"width":80,"height":24}`,
		`[0,"o","tosh$ "]`,
		`[0.5,"i","sleep 1 &\n"]`,
		`[0.75,"m","marker"]`,
		``,
		`[0.8,"o","[4242]\n"]`,
		`[0.800001,"o","tosh$ "]`,
	}, "\n")

	src := NewAsciicastLogSource(strings.NewReader(cast))

	var got []Entry
	for {
		e, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, *e)
	}

	assert.Equal(t, []Entry{
		{TimestampMicros: 0, FD: FDStdout, Data: []byte("tosh$ ")},
		{TimestampMicros: 500000, FD: FDStdin, Data: []byte("sleep 1 &\n")},
		{TimestampMicros: 800000, FD: FDStdout, Data: []byte("[4242]\n")},
		{TimestampMicros: 800001, FD: FDStdout, Data: []byte("tosh$ ")},
	}, got)
}

func TestAsciicastLogSource_errors(t *testing.T) {
	cases := map[string]string{
		"wrong-version": `{"version":1,"width":80,"height":24}`,
		"short-event":   "{\"version\":2}\n[0.5,\"o\"]",
		"bad-time":      "{\"version\":2}\n[\"soon\",\"o\",\"x\"]",
	}

	for tn, cast := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := NewAsciicastLogSource(strings.NewReader(cast)).Next()
			assert.Error(t, err)
			assert.NotEqual(t, io.EOF, err)
		})
	}
}
