package main

import (
	"context"
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage models in the configured store (file directory, redis or sqlite)",
}

var modelsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored models",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store ports.ModelStore) error {
			return cli.RunModelsList(ctx, os.Stdout, store)
		})
	},
}

var modelsPushCmd = &cobra.Command{
	Use:   "push <model-file>...",
	Short: "Store model files under their base names",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store ports.ModelStore) error {
			return cli.RunModelsPush(ctx, os.Stdout, store, cfg.Tolerance, args)
		})
	},
}

var modelsRemoveCmd = &cobra.Command{
	Use:     "rm <name>...",
	Aliases: []string{"remove"},
	Short:   "Delete stored models",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store ports.ModelStore) error {
			return cli.RunModelsRemove(ctx, os.Stdout, store, args)
		})
	},
}

func withStore(fn func(ctx context.Context, store ports.ModelStore) error) {
	store, closeStore, err := cli.OpenStore(cfg)
	if err != nil {
		fail(err)
	}
	defer closeStore()

	ctx, stop := signalContext()
	defer stop()

	if err := fn(ctx, store); err != nil {
		_ = closeStore()
		fail(err)
	}
}

func init() {
	modelsCmd.AddCommand(modelsListCmd, modelsPushCmd, modelsRemoveCmd)
	rootCmd.AddCommand(modelsCmd)
}
