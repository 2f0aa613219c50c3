package shell

import (
	"io"
	"os"

	"github.com/josephlewis42/tosh/core/logger"
	"github.com/josephlewis42/tosh/core/proc"
)

// redirectFlags maps each operator to the way its target is opened.
var redirectFlags = map[string]int{
	OpRedirectIn:  os.O_RDONLY,
	OpRedirectOut: os.O_WRONLY | os.O_APPEND | os.O_CREATE,
	OpRedirectErr: os.O_WRONLY | os.O_APPEND | os.O_CREATE,
}

// openRedirects opens the target of every redirection operator in args and
// returns stdio with the streams replaced. When a stream is redirected more
// than once the last target wins and earlier ones are closed.
//
// The returned closers own every file that was opened; the caller closes
// them once the command has started or finished.
func (s *Shell) openRedirects(args []string, stdio proc.Stdio) (proc.Stdio, proc.Closers, error) {
	streams := make(map[string]io.Closer)
	opened := func() proc.Closers {
		var files proc.Closers
		for _, fd := range streams {
			files = append(files, fd)
		}
		return files
	}

	for i := 0; i < len(args); i++ {
		op := args[i]
		flag, ok := redirectFlags[op]
		if !ok {
			continue
		}
		if i+1 >= len(args) || IsRedirectOperator(args[i+1]) {
			return stdio, opened(), ErrMissingRedirectTarget
		}

		target := args[i+1]
		fd, err := s.Fs.OpenFile(s.Resolver.Abs(target), flag, 0666)
		if err != nil {
			return stdio, opened(), &redirectError{path: target, err: err}
		}

		if prev, ok := streams[op]; ok {
			prev.Close()
		}
		streams[op] = fd

		switch op {
		case OpRedirectIn:
			stdio = stdio.WithStdin(fd)
		case OpRedirectOut:
			stdio = stdio.WithStdout(fd)
		case OpRedirectErr:
			stdio = stdio.WithStderr(fd)
		}
		i++
	}

	return stdio, opened(), nil
}

// runRedirect runs the command before the first operator with its streams
// remapped.
func (s *Shell) runRedirect(args []string, first int, background bool, stdio proc.Stdio, depth int) error {
	redirected, files, err := s.openRedirects(args, stdio)
	defer files.Close()
	if err != nil {
		s.record(logger.RedirectFailure(args, err))
		s.fail(stdio, err, 1)
		return nil
	}

	cleaned := append([]string(nil), args[:first]...)
	if len(cleaned) == 0 {
		s.fail(stdio, ErrMissingCommand, 1)
		return nil
	}
	return s.runSimple(cleaned, background, redirected, depth)
}
