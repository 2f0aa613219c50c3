package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/josephlewis42/tosh/core/proc"
	"github.com/pborman/getopt/v2"
	"golang.org/x/sys/unix"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]Builtin)

// ShellBuiltinFunc runs a built-in inside the shell with the given streams
// and returns its exit status.
type ShellBuiltinFunc func(s *Shell, stdio proc.Stdio, args []string) int

// Builtin is a command interpreted by the shell itself.
type Builtin struct {
	Short string
	Main  ShellBuiltinFunc
}

// recallHelp documents the history recall forms, which aren't looked up by
// name.
var recallHelp = map[string]string{
	RecallPrefix + "N": "re-run history entry N",
	RecallLastToken:    "re-run the most recent history entry",
}

// BuiltinHelp lists every built-in and recall form with a short description,
// sorted by name.
func BuiltinHelp() [][2]string {
	var out [][2]string
	for name, b := range AllBuiltins {
		out = append(out, [2]string{name, b.Short})
	}
	for name, short := range recallHelp {
		out = append(out, [2]string{name, short})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

// Exit quits the shell
func Exit(s *Shell, stdio proc.Stdio, args []string) int {
	fmt.Fprintln(stdio.Stdout, "Goodbye!")
	s.quit = true
	return 0
}

// Cd is the cd shell builtin, with no argument it goes to the root.
//
// The interactive shell changes the process directory and takes the result
// from the OS so ".." follows the directory actually entered. Subshells only
// track the path.
func Cd(s *Shell, stdio proc.Stdio, args []string) int {
	target := "/"
	if len(args) > 1 {
		target = args[1]
	}

	dir, err := s.changeDir(target)
	if err != nil {
		s.printError(stdio.Stderr, &chdirError{path: target, err: err})
		return 1
	}

	s.Resolver.Dir = dir
	if s.ChdirProcess {
		os.Setenv(EnvPWD, dir)
	}
	return 0
}

func (s *Shell) changeDir(target string) (string, error) {
	if s.ChdirProcess {
		if err := os.Chdir(target); err != nil {
			return "", err
		}
		return os.Getwd()
	}

	dir := filepath.Clean(s.Resolver.Abs(target))
	info, err := s.Fs.Stat(dir)
	switch {
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", unix.ENOTDIR
	default:
		return dir, nil
	}
}

// History lists or clears the command history.
func History(s *Shell, stdio proc.Stdio, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := stdio.Stderr
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: history [-c]")
		fmt.Fprintln(w, "Display the history list with line numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if err != nil {
			return 1
		}
		return 0
	}

	if *clear {
		s.History.Clear()
		return 0
	}

	if _, err := s.History.WriteTo(stdio.Stdout); err != nil {
		s.printError(stdio.Stderr, err)
		return 1
	}
	return 0
}

// Help lists the built-ins.
func Help(s *Shell, stdio proc.Stdio, args []string) int {
	w := stdio.Stdout
	fmt.Fprintln(w, "tosh, the tiny shell")
	fmt.Fprintln(w, "These shell commands are defined internally.")
	fmt.Fprintln(w, "Everything else is looked up in the search path and run as a program.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtins:")
	fmt.Fprintln(w)
	for _, entry := range BuiltinHelp() {
		fmt.Fprintf(w, "%-9s %s\n", entry[0], entry[1])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Operators:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-9s %s\n", "a | b", "pipe the output of a into b")
	fmt.Fprintf(w, "%-9s %s\n", "< FILE", "read stdin from FILE")
	fmt.Fprintf(w, "%-9s %s\n", "1> FILE", "append stdout to FILE")
	fmt.Fprintf(w, "%-9s %s\n", "2> FILE", "append stderr to FILE")
	fmt.Fprintf(w, "%-9s %s\n", "cmd &", "run cmd in the background")

	return 0
}

func init() {
	AllBuiltins["cd"] = Builtin{Short: "change the working directory, / by default", Main: Cd}
	AllBuiltins["exit"] = Builtin{Short: "leave the shell", Main: Exit}
	AllBuiltins["help"] = Builtin{Short: "show this help", Main: Help}
	AllBuiltins["history"] = Builtin{Short: "list recent commands, -c clears them", Main: History}
}
