package main

import (
	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/internal/service/installer"
	"github.com/sandevgo/tuskshop/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure TuskShop and prepare the shop database",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		state, err := installer.RunWizard(config.GetRuntimePath())
		if err != nil {
			return err
		}

		logger.Info().Str("path", state.EnvPath()).Msg("configuration written")
		logger.Info().Msg("Installation complete! You can now run 'tuskshop start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
