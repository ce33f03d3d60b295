package main

import (
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <results> <answers> [accuracy-out]",
	Short: "Report classification accuracy against an answer file",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		var out string
		if len(args) == 3 {
			out = args[2]
		}
		if _, err := cli.RunEvaluate(os.Stdout, args[0], args[1], out); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
