package cmd

import (
	"fmt"

	"github.com/josephlewis42/tosh/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands the shell interprets itself
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, entry := range shell.BuiltinHelp() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", entry[0], entry[1])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
