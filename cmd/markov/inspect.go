package main

import (
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <model>",
	Short: "Show a model's parameters as tables",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, _ := cmd.Flags().GetBool("raw")
		styled := !raw && tui.IsTerminal(os.Stdout)
		if err := cli.RunInspect(os.Stdout, cfg, args[0], styled); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print Markdown without terminal styling")
}
