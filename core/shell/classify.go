package shell

// Operator tokens recognised by the dispatcher. Only exact tokens count, an
// operator glued to a word ("a|b") is an ordinary argument.
const (
	OpPipe          = "|"
	OpRedirectIn    = "<"
	OpRedirectOut   = "1>"
	OpRedirectErr   = "2>"
	RecallPrefix    = "!"
	RecallLastToken = "!!"
)

// Route is the way a command line is executed.
type Route int

const (
	// RouteSimple runs a built-in, a history recall or an external program.
	RouteSimple Route = iota
	// RoutePipe joins two commands with a pipe.
	RoutePipe
	// RouteRedirect remaps standard streams to files before running.
	RouteRedirect
)

func (r Route) String() string {
	switch r {
	case RoutePipe:
		return "pipe"
	case RouteRedirect:
		return "redirect"
	default:
		return "simple"
	}
}

// Classification is the result of scanning a command line for operators.
type Classification struct {
	Route Route
	// PipeIndex is the position of the pipe token, or -1.
	PipeIndex int
	// RedirectIndex is the position of the first redirection operator, or -1.
	RedirectIndex int
}

// IsRedirectOperator reports whether tok remaps a standard stream.
func IsRedirectOperator(tok string) bool {
	switch tok {
	case OpRedirectIn, OpRedirectOut, OpRedirectErr:
		return true
	}
	return false
}

// Classify scans args once, left to right, and picks a route.
//
// A pipe anywhere wins over redirection. Only one pipe stage is supported:
// a second pipe, a pipe with an empty side, or a pipe combined with any
// redirection operator is rejected rather than guessed at.
func Classify(args []string) (Classification, error) {
	c := Classification{PipeIndex: -1, RedirectIndex: -1}

	for i, tok := range args {
		switch {
		case tok == OpPipe && c.PipeIndex >= 0:
			return c, ErrMultiplePipes
		case tok == OpPipe:
			c.PipeIndex = i
		case IsRedirectOperator(tok) && c.RedirectIndex < 0:
			c.RedirectIndex = i
		}
	}

	switch {
	case c.PipeIndex >= 0 && c.RedirectIndex >= 0:
		return c, ErrPipeWithRedirect
	case c.PipeIndex == 0, c.PipeIndex > 0 && c.PipeIndex == len(args)-1:
		return c, ErrEmptyPipeSide
	case c.PipeIndex > 0:
		c.Route = RoutePipe
	case c.RedirectIndex >= 0:
		c.Route = RouteRedirect
	default:
		c.Route = RouteSimple
	}
	return c, nil
}

// SplitPipe splits args around the pipe at index, dropping the pipe token.
func SplitPipe(args []string, index int) (left, right []string) {
	left = append([]string(nil), args[:index]...)
	right = append([]string(nil), args[index+1:]...)
	return left, right
}
