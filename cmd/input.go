package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/tosh/core/proc"
	"github.com/josephlewis42/tosh/core/shell"
	"github.com/josephlewis42/tosh/core/ttylog"
)

type closingLineReader interface {
	shell.LineReader
	io.Closer
}

// newLineReader uses readline for terminals and plain line reads for piped
// input.
func newLineReader(prompt string, stdio proc.Stdio) (closingLineReader, error) {
	if !readline.IsTerminal(int(os.Stdin.Fd())) {
		return &plainReader{
			in:     bufio.NewReader(stdio.Stdin),
			out:    stdio.Stdout,
			prompt: prompt,
		}, nil
	}

	cfg := &readline.Config{
		Prompt: prompt,
		Stdout: stdio.Stdout,
		Stderr: stdio.Stderr,
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}
	return readline.NewEx(cfg)
}

// plainReader reads newline terminated lines, writing the prompt first.
type plainReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func (p *plainReader) SetPrompt(prompt string) {
	p.prompt = prompt
}

func (p *plainReader) Readline() (string, error) {
	fmt.Fprint(p.out, p.prompt)
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (p *plainReader) Close() error {
	return nil
}

// recordingReader records every line read into the session recording.
type recordingReader struct {
	shell.LineReader
	recorder *ttylog.Recorder
}

func (r *recordingReader) Readline() (string, error) {
	line, err := r.LineReader.Readline()
	if err == nil {
		r.recorder.RecordInput(line)
	}
	return line, err
}
