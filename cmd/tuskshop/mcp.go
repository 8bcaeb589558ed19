package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/tuskshop/internal/providers/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the shop lookup tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol
		ctx, flushLog := setupLogger(ctx, os.Stderr)
		defer flushLog()

		shop, err := openStore(ctx, true)
		if err != nil {
			return err
		}
		defer shop.close()

		return mcp.NewServer(shop.registry).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
