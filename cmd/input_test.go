package cmd

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/josephlewis42/tosh/core/ttylog"
	"github.com/stretchr/testify/assert"
)

func TestPlainReader(t *testing.T) {
	out := &bytes.Buffer{}
	rl := &plainReader{
		in:     bufio.NewReader(strings.NewReader("echo one\r\nno-newline")),
		out:    out,
		prompt: "$ ",
	}

	line, err := rl.Readline()
	assert.NoError(t, err)
	assert.Equal(t, "echo one", line)

	rl.SetPrompt("> ")
	line, err = rl.Readline()
	assert.NoError(t, err)
	assert.Equal(t, "no-newline", line)

	_, err = rl.Readline()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "$ > > ", out.String())
}

func TestRecordingReader(t *testing.T) {
	var recorded []string
	recorder := ttylog.NewRecorder(func(e *ttylog.Entry) error {
		recorded = append(recorded, string(e.Data))
		return nil
	})

	rl := &recordingReader{
		LineReader: &plainReader{in: bufio.NewReader(strings.NewReader("ls\n")), out: io.Discard},
		recorder:   recorder,
	}

	line, err := rl.Readline()
	assert.NoError(t, err)
	assert.Equal(t, "ls", line)

	_, err = rl.Readline()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, []string{"ls\n"}, recorded)
}

func TestCreateLogSource(t *testing.T) {
	_, err := createLogSource("session.cast", strings.NewReader(""))
	assert.NoError(t, err)

	_, err = createLogSource("session.log", strings.NewReader(""))
	assert.Error(t, err)
}
