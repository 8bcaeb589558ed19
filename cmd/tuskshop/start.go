package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandevgo/tuskshop/pkg/log"
	"github.com/sandevgo/tuskshop/pkg/srv"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the TuskShop services",
	Long:  `Opens the shop database and serves customers over the configured transports (HTTP API, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, nil)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting tuskshop")

		shop, err := newShop(ctx)
		if err != nil {
			return err
		}
		if err := shop.cfg.ValidateTransports(); err != nil {
			_ = shop.close()
			return err
		}

		transports, err := initTransports(ctx, shop)
		if err != nil {
			_ = shop.close()
			return err
		}
		services := append([]srv.Service{srv.NewCleanup(shop.close)}, transports...)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		errs := srv.StartServices(ctx, services)
		go func() {
			select {
			case err := <-errs:
				logger.Error().Err(err).Msg("service stopped, shutting down")
				cancel()
			case <-ctx.Done():
			}
		}()

		srv.ShutdownServices(ctx, shutdownTimeout, services)
		logger.Info().Msg("tuskshop has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
