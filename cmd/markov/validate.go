package main

import (
	"fmt"
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <model>...",
	Short: "Check model files (and optionally a corpus) for consistency",
	Long: `Checks dimensions and that every distribution is stochastic. With --corpus,
also checks sequence lengths and symbols against the first model's alphabet.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		corpus, _ := cmd.Flags().GetString("corpus")
		if err := cli.RunValidate(os.Stdout, cfg, args, corpus); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All inputs are valid.")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("corpus", "", "Corpus file to check against the first model")
}
