package shell

import (
	"os"

	"github.com/josephlewis42/tosh/core/proc"
	"golang.org/x/sync/errgroup"
)

// runPipeline joins the commands on either side of the pipe at index.
//
// Each side runs through dispatch in its own subshell so either may be a
// built-in, a recall or a program. A side closes its end of the pipe as soon
// as it's done with it: programs hold their own copy, so for them that's
// right after start. The status of the pipeline is the status of the right
// side.
func (s *Shell) runPipeline(args []string, index int, background bool, stdio proc.Stdio, depth int) error {
	left, right := SplitPipe(args, index)

	r, w, err := os.Pipe()
	if err != nil {
		s.fail(stdio, err, 1)
		return nil
	}

	writer := s.subshell()
	reader := s.subshell()

	var g errgroup.Group
	g.Go(func() error {
		defer w.Close()
		return writer.dispatch(left, background, stdio.WithStdout(w), depth)
	})
	g.Go(func() error {
		defer r.Close()
		return reader.dispatch(right, background, stdio.WithStdin(r), depth)
	})

	// Background sides only block until their programs have started.
	err = g.Wait()
	s.lastStatus = reader.lastStatus
	return err
}
