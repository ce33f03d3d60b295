package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train <iterations> <initial-model> <corpus> <output-model>",
	Short: "Re-estimate a model from a corpus with Baum-Welch",
	Long: `Runs a fixed number of Baum-Welch iterations starting from the initial model
and writes the trained model. A wrong number of arguments prints the usage and
exits successfully without doing any work.`,
	Example: "  markov train 100 model_init.txt seq_model_01.txt model_01.txt",
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := cli.ParseTrainArgs(args)
		if errors.Is(err, domain.ErrInvocation) {
			fmt.Println("The number of arguments is wrong.")
			_ = cmd.Usage()
			return
		}
		if err != nil {
			fail(err)
		}

		ctx, stop := signalContext()
		defer stop()

		if _, err := cli.RunTrain(ctx, cfg, logger, opts); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
