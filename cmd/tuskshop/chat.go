package main

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/internal/transport/tui"
	"github.com/spf13/cobra"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the shop in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// The TUI owns the terminal, so logs go to a file in the runtime directory.
		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0o755); err != nil {
			return err
		}
		logFile, err := os.OpenFile(filepath.Join(runtimePath, "chat.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer logFile.Close()

		ctx, flushLog := setupLogger(ctx, logFile)
		defer flushLog()

		shop, err := newShop(ctx)
		if err != nil {
			return err
		}
		defer shop.close()

		session := chatSession
		if session == "" {
			session = "cli-" + uuid.NewString()
		}
		return tui.Run(ctx, shop.orchestrator, session)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "session id to continue")
	rootCmd.AddCommand(chatCmd)
}
