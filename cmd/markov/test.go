package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <models> <corpus> <results>",
	Short: "Classify every sequence against a set of models with Viterbi",
	Long: `<models> is either a list file (one model path per line) or a directory.
Each results line holds the winning model name and its Viterbi probability.
Ties go to the model listed first.`,
	Example: "  markov test modellist.txt testing_data1.txt result1.txt",
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := cli.ParseTestArgs(args)
		if errors.Is(err, domain.ErrInvocation) {
			fmt.Println("The number of arguments is wrong.")
			_ = cmd.Usage()
			return
		}

		ctx, stop := signalContext()
		defer stop()

		if _, err := cli.RunTest(ctx, cfg, logger, opts); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
