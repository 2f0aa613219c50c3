package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/josephlewis42/tosh/core/logger"
	"github.com/josephlewis42/tosh/core/parser"
	"github.com/josephlewis42/tosh/core/proc"
)

// startProcess launches external programs.
var startProcess = proc.Start

// dispatch classifies args and routes them. Only errors that end the shell
// are returned, everything else is reported on stdio.Stderr.
func (s *Shell) dispatch(args []string, background bool, stdio proc.Stdio, depth int) error {
	c, err := Classify(args)
	if err != nil {
		s.fail(stdio, err, 1)
		return nil
	}

	switch c.Route {
	case RoutePipe:
		return s.runPipeline(args, c.PipeIndex, background, stdio, depth)
	case RouteRedirect:
		return s.runRedirect(args, c.RedirectIndex, background, stdio, depth)
	default:
		return s.runSimple(args, background, stdio, depth)
	}
}

func (s *Shell) runSimple(args []string, background bool, stdio proc.Stdio, depth int) error {
	name := args[0]
	if builtin, ok := AllBuiltins[name]; ok {
		s.lastStatus = builtin.Main(s, stdio, args)
		return nil
	}
	if IsRecall(name) {
		return s.recall(name, background, stdio, depth)
	}
	return s.runExternal(args, background, stdio)
}

// IsRecall reports whether tok is a history recall: !! or ! followed by
// digits.
func IsRecall(tok string) bool {
	if tok == RecallLastToken {
		return true
	}
	digits := strings.TrimPrefix(tok, RecallPrefix)
	if digits == tok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// recall re-runs a history entry. Recalled lines are dispatched again, so a
// recall of a recall nests; depth caps that nesting.
func (s *Shell) recall(token string, background bool, stdio proc.Stdio, depth int) error {
	if depth >= s.MaxRecallDepth {
		s.record(logger.RecallLoop(token, depth))
		s.fail(stdio, ErrRecallLoop, 1)
		return nil
	}

	var line string
	if token == RecallLastToken {
		last, ok := s.History.Last()
		if !ok {
			s.fail(stdio, ErrHistoryEmpty, 1)
			return nil
		}
		line = last
	} else {
		digits := strings.TrimPrefix(token, RecallPrefix)
		index, err := strconv.Atoi(digits)
		entry, ok := s.History.Lookup(index)
		if err != nil || !ok {
			s.fail(stdio, &historyIndexError{index: digits}, 1)
			return nil
		}
		line = entry
	}
	s.record(logger.Recall(token, line, depth))

	args, lineBackground, err := parser.Parse(line)
	if err != nil {
		s.fail(stdio, err, 1)
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	return s.dispatch(args, background || lineBackground, stdio, depth+1)
}

// runExternal resolves and launches a program. Foreground commands are
// waited for, background ones are handed to the reaper.
func (s *Shell) runExternal(args []string, background bool, stdio proc.Stdio) error {
	path, err := s.Resolver.LookPath(args[0])
	if err != nil {
		s.record(logger.UnknownCommand(args, err))
		s.fail(stdio, ErrCommandNotFound, proc.NotFoundStatus)
		return nil
	}

	var devNull *os.File
	if background && s.BackgroundStdinNull && stdio.Stdin == s.Stdio.Stdin {
		devNull, err = os.Open(os.DevNull)
		if err != nil {
			s.fail(stdio, err, 1)
			return nil
		}
		defer devNull.Close()
		stdio = stdio.WithStdin(devNull)
	}

	cmd, err := startProcess(proc.Command{
		Path:  s.Resolver.Abs(path),
		Args:  args,
		Dir:   s.Resolver.Dir,
		Env:   s.Env,
		Stdio: stdio,
	})
	switch {
	case errors.Is(err, proc.ErrSpawn):
		s.record(logger.SpawnFailure(args, err))
		s.fail(stdio, err, 1)
		return err
	case err != nil:
		s.record(logger.UnknownCommand(args, err))
		s.fail(stdio, ErrCommandNotFound, proc.NotFoundStatus)
		return nil
	}

	pid := cmd.Process.Pid
	s.record(logger.RunCommand(args, path, pid, background))

	if background {
		s.Reaper.Adopt(cmd, strings.Join(args, " "))
		if stdio.Stderr != nil {
			fmt.Fprintf(stdio.Stderr, "[%d]\n", pid)
		}
		if exit, result := s.Reaper.TryCollect(pid); result == proc.Collected {
			s.record(logger.BackgroundExit(exit.Pid, exit.Label, exit.Status))
		}
		s.lastStatus = 0
		return nil
	}

	status, err := proc.Wait(cmd)
	s.lastStatus = status
	if err != nil {
		s.printError(stdio.Stderr, err)
	}
	return nil
}
