// Package parser splits raw shell input into an argument list.
package parser

import (
	"strings"

	"github.com/anmitsu/go-shlex"
)

// BackgroundMarker is the trailing token that schedules a line in the
// background.
const BackgroundMarker = "&"

// Parse splits line into whitespace separated tokens.
//
// A trailing BackgroundMarker token (or a marker glued onto the last token,
// as in "sleep 1&") sets background and is removed from args. A blank line
// yields no args and no error.
func Parse(line string) (args []string, background bool, err error) {
	args, err = shlex.Split(line, true)
	if err != nil {
		return nil, false, err
	}

	if n := len(args); n > 0 {
		last := args[n-1]
		switch {
		case last == BackgroundMarker:
			args = args[:n-1]
			background = true
		case strings.HasSuffix(last, BackgroundMarker):
			args[n-1] = strings.TrimSuffix(last, BackgroundMarker)
			background = true
		}
	}

	return args, background, nil
}
