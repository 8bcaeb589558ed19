package main

import (
	"fmt"

	"github.com/sandevgo/tuskshop/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog and orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		shop, err := openStore(ctx, false)
		if err != nil {
			return err
		}
		defer shop.close()

		if seedReset {
			if err := sqlite.Reset(ctx, shop.db); err != nil {
				return fmt.Errorf("failed to reset database: %w", err)
			}
		}

		stats, err := sqlite.Seed(ctx, shop.db)
		if err != nil {
			return err
		}

		if stats.Skipped {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "database already seeded (%d products, %d orders)\n", stats.Products, stats.Orders)
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products and %d orders into %s\n", stats.Products, stats.Orders, shop.cfg.GetDatabasePath())
		return err
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing catalog, orders and conversations first")
	rootCmd.AddCommand(seedCmd)
}
