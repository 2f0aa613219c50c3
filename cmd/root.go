package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/tosh/core/config"
	"github.com/josephlewis42/tosh/core/logger"
	"github.com/josephlewis42/tosh/core/proc"
	"github.com/josephlewis42/tosh/core/shell"
	"github.com/josephlewis42/tosh/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
	recordPath  string

	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadShellConfig loads the configuration, falling back to the built-in one
// with event logging disabled when none was initialized.
func loadShellConfig(logger *log.Logger) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("No %s in %q, using defaults", config.ConfigurationName, cfgPath)
		configuration = config.Default()
		configuration.EventLog = ""
		return configuration, nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tosh",
	Short: "The tiny shell",
	Long: `A small interactive shell with history recall, background jobs,
a single pipe stage and file redirection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		appLog := log.New(cmd.ErrOrStderr(), "[tosh] ", 0)
		configuration, err := loadShellConfig(appLog)
		if err != nil {
			return err
		}

		stdio := proc.OSStdio()
		var recorder *ttylog.Recorder
		if recordPath != "" {
			fd, err := os.OpenFile(recordPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				return err
			}
			defer fd.Close()

			recorder = ttylog.NewRecorder(ttylog.NewAsciicastLogSink(fd))
			stdio.Stdout = recorder.Writer(ttylog.FDStdout, stdio.Stdout)
			stdio.Stderr = recorder.Writer(ttylog.FDStderr, stdio.Stderr)
		}

		sh, err := shell.New(configuration, stdio)
		if err != nil {
			return err
		}
		sh.ChdirProcess = true

		eventLog, err := configuration.OpenEventLog()
		if err != nil {
			return err
		}
		if eventLog != nil {
			defer eventLog.Close()
			sh.Log = logger.NewJsonLinesLogRecorder(eventLog).NewSession()
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if cmd.Flags().Changed("command") {
			exitStatus = sh.RunCommand(ctx, commandLine)
			return nil
		}

		rl, err := newLineReader(configuration.Prompt, stdio)
		if err != nil {
			return err
		}
		defer rl.Close()

		var input shell.LineReader = rl
		if recorder != nil {
			input = &recordingReader{LineReader: rl, recorder: recorder}
		}

		exitStatus = sh.Run(ctx, input)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit with its status")
	rootCmd.Flags().StringVar(&recordPath, "record", "", "record the session to an asciicast FILE.cast")
}
