// Package shell implements the tosh read-dispatch loop: built-ins, history
// recall, redirection, single stage pipes and background jobs.
package shell

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/tosh/core/config"
	"github.com/josephlewis42/tosh/core/history"
	"github.com/josephlewis42/tosh/core/logger"
	"github.com/josephlewis42/tosh/core/parser"
	"github.com/josephlewis42/tosh/core/proc"
	"github.com/spf13/afero"
)

const (
	EnvPath = "PATH"
	EnvPWD  = "PWD"
)

// LineReader supplies input lines, readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

var _ LineReader = (*readline.Instance)(nil)

// Shell holds the state of one interpreter.
type Shell struct {
	// History is the rolling record of entered lines.
	History *history.Store
	// Resolver finds commands and tracks the working directory.
	Resolver *proc.Resolver
	// Reaper collects background children.
	Reaper *proc.Reaper
	// Fs is used to open redirection targets and check cd targets.
	Fs afero.Fs
	// Log receives structured events.
	Log *logger.SessionLogger
	// Stdio holds the shell's own standard streams.
	Stdio proc.Stdio
	// Env is the environment for children, nil inherits the process's.
	Env []string

	Prompt         string
	MaxRecallDepth int
	// BackgroundStdinNull gives background commands /dev/null instead of the
	// shell's input.
	BackgroundStdinNull bool
	// ChdirProcess makes cd change the working directory of the process too.
	ChdirProcess bool

	errColor   *color.Color
	reaperOnce *sync.Once

	lastStatus int
	// Set to true to quit the shell
	quit bool
}

// New creates a shell configured by cfg that talks over stdio.
func New(cfg *config.Configuration, stdio proc.Stdio) (*Shell, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	errColor := color.New(color.FgRed)
	switch cfg.Color {
	case config.ColorAlways:
		errColor.EnableColor()
	case config.ColorNever:
		errColor.DisableColor()
	}

	return &Shell{
		History:             history.New(cfg.HistorySize),
		Resolver:            proc.NewResolver(wd, cfg.ResolveSearchPath(os.Getenv(EnvPath))),
		Reaper:              proc.NewReaper(),
		Fs:                  afero.NewOsFs(),
		Log:                 logger.NewNopLogger().Sessionless(),
		Stdio:               stdio,
		Prompt:              cfg.Prompt,
		MaxRecallDepth:      cfg.MaxRecallDepth,
		BackgroundStdinNull: cfg.BackgroundStdinNull,
		errColor:            errColor,
		reaperOnce:          &sync.Once{},
	}, nil
}

// LastStatus returns the exit status of the most recent command.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

// Exited reports whether the exit built-in ran.
func (s *Shell) Exited() bool {
	return s.quit
}

// WorkingDir is the directory commands run in.
func (s *Shell) WorkingDir() string {
	return s.Resolver.Dir
}

// startReaper installs the background collector. Only the first call has an
// effect.
func (s *Shell) startReaper(ctx context.Context) {
	if s.reaperOnce == nil {
		s.reaperOnce = &sync.Once{}
	}
	s.reaperOnce.Do(func() {
		go s.Reaper.Run(ctx, func(exit proc.Exit) {
			s.record(logger.BackgroundExit(exit.Pid, exit.Label, exit.Status))
		})
	})
}

// Run reads and dispatches lines until exit, end of input or a fatal error
// and returns the shell's exit status.
func (s *Shell) Run(ctx context.Context, rl LineReader) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startReaper(ctx)

	status := s.loop(rl)
	s.record(logger.SessionEnd(status))
	return status
}

func (s *Shell) loop(rl LineReader) int {
	for !s.quit {
		rl.SetPrompt(s.Prompt)
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.
		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue
		case err != nil:
			log.Printf("Error readline: %v", err)
			return 1
		}

		if err := s.RunLine(line); err != nil {
			return 1
		}
	}
	return 0
}

// RunCommand runs a single line non-interactively and returns its status.
func (s *Shell) RunCommand(ctx context.Context, line string) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startReaper(ctx)

	status := 1
	if err := s.RunLine(line); err == nil {
		status = s.lastStatus
	}
	s.record(logger.SessionEnd(status))
	return status
}

// RunLine tokenizes, records and dispatches one input line.
//
// Command-level failures are reported on the shell's stderr and don't
// produce an error. A non-nil error means the shell can't continue.
func (s *Shell) RunLine(line string) error {
	args, background, err := parser.Parse(line)
	if err != nil {
		s.fail(s.Stdio, err, 1)
		return nil
	}
	if len(args) == 0 {
		return nil
	}

	if !IsRecall(args[0]) {
		s.History.Record(line)
	}

	return s.dispatch(args, background, s.Stdio, 0)
}

// subshell creates a copy of the shell that runs one side of a pipe. Changes
// it makes to the working directory or history don't leak back.
func (s *Shell) subshell() *Shell {
	sub := *s
	resolver := *s.Resolver
	sub.Resolver = &resolver
	sub.History = s.History.Clone()
	sub.ChdirProcess = false
	sub.quit = false
	return &sub
}

func (s *Shell) record(event logger.Event) {
	if err := s.Log.Record(event); err != nil {
		log.Printf("Error recording event: %v", err)
	}
}

// printError writes a diagnostic for err to w.
func (s *Shell) printError(w io.Writer, err error) {
	if w == nil {
		return
	}
	msg := fmt.Sprintf("ERROR: %v", err)
	if s.errColor != nil {
		msg = s.errColor.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}

// fail reports a command-level error and sets the last status.
func (s *Shell) fail(stdio proc.Stdio, err error, status int) {
	s.lastStatus = status
	s.printError(stdio.Stderr, err)
}

