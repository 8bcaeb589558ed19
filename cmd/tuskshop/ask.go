package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		shop, err := newShop(ctx)
		if err != nil {
			return err
		}
		defer shop.close()

		session := askSession
		if session == "" {
			session = "cli-" + uuid.NewString()
		}

		reply := shop.orchestrator.Reply(ctx, session, strings.Join(args, " "))
		return printReply(cmd.OutOrStdout(), reply)
	},
}

func printReply(w io.Writer, reply string) error {
	_, err := fmt.Fprintln(w, reply)
	return err
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "session id (a new one is generated when empty)")
	rootCmd.AddCommand(askCmd)
}
