package main

import (
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <model>",
	Short: "Export the model's state diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the model's hidden states and transitions.
With --sequence, the most likely state path for that sequence is highlighted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.GraphOptions{ModelPath: args[0]}
		opts.Sequence, _ = cmd.Flags().GetString("sequence")
		opts.MinProb, _ = cmd.Flags().GetFloat64("min")
		if err := cli.RunGraph(os.Stdout, cfg, opts); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("sequence", "", "Observation sequence whose state path to highlight")
	graphCmd.Flags().Float64("min", 0, "Hide edges with probability at or below this value")
}
