package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephlewis42/tosh/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	idleTimeLimit time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore recorded shell sessions.",
}

// playCommand replays a recording in real time
var playCommand = &cobra.Command{
	Use:   "play FILE.cast",
	Short: "Replay a recorded interactive session in the terminal.",
	Long:  `Plays a recorded interactive session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source, err := createLogSource(args[0], fd)
		if err != nil {
			return err
		}

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(source, sink)
	},
}

// catCommand prints a recording without delays
var catCommand = &cobra.Command{
	Use:   "cat FILE.cast",
	Short: "Print full output of recorded session to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source, err := createLogSource(args[0], fd)
		if err != nil {
			return err
		}

		return ttylog.Replay(source, ttylog.NewClientOutput(cmd.OutOrStdout()))
	},
}

func createLogSource(name string, r io.Reader) (ttylog.LogSource, error) {
	switch ext := strings.TrimPrefix(filepath.Ext(name), "."); ext {
	case ttylog.AsciicastFileExt:
		return ttylog.NewAsciicastLogSource(r), nil
	default:
		return nil, fmt.Errorf("unsupported recording format %q, expected .%s", ext, ttylog.AsciicastFileExt)
	}
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(catCommand)

	// cat doesn't allow idle time
	for _, cmd := range []*cobra.Command{playCommand} {
		cmd.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
	}
}
