package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the stored models to AI agents as MCP tools:
list_models, classify_sequence and score_sequence.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		store, closeStore, err := cli.OpenStore(cfg)
		if err != nil {
			fail(err)
		}
		defer closeStore()

		srv := mcp.NewServer(cli.NewEngine(cfg, logger, store, nil))

		switch transport {
		case "stdio":
			// Keep Stdout clean for JSON-RPC.
			log.SetOutput(os.Stderr)
			logger.Info("starting markov MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				_ = closeStore()
				fail(err)
			}
		case "sse":
			ctx, stop := signalContext()
			defer stop()

			logger.Info("starting markov MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				_ = closeStore()
				fail(err)
			}
			logger.Info("MCP server stopped gracefully")
		default:
			_ = closeStore()
			fail(errors.New("unknown transport " + transport + ", supported: stdio, sse"))
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
