package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

var seedProducts = []core.Product{
	{Name: "Dress Summer", Description: "Dress ringan berbahan katun premium, cocok untuk musim panas. Tersedia berbagai ukuran.", Price: 299000, Category: "Dress", Stock: 25},
	{Name: "Jaket Denim", Description: "Jaket denim unisex berkualitas tinggi, tahan lama dan stylish. Cocok untuk segala cuaca.", Price: 459000, Category: "Outerwear", Stock: 15},
	{Name: "Kemeja Formal", Description: "Kemeja formal pria berbahan cotton blend, perfect untuk acara resmi dan kantor.", Price: 199000, Category: "Shirt", Stock: 30},
	{Name: "Celana Jeans", Description: "Celana jeans wanita slim fit dengan stretch untuk kenyamanan maksimal.", Price: 349000, Category: "Pants", Stock: 20},
}

var seedOrders = []core.Order{
	{ID: 2001, CustomerName: "Olivia Carpenter", Status: "Dikirim", ShippingProvider: "JNE", ETA: "2025-09-25", TotalAmount: 299000},
	{ID: 2002, CustomerName: "Jenna Ortega", Status: "Dikemas", ShippingProvider: "SiCepat", ETA: "2025-09-24", TotalAmount: 459000},
	{ID: 2003, CustomerName: "Frank Ocean", Status: "Menunggu Pembayaran", ShippingProvider: "-", ETA: "2025-09-23", TotalAmount: 199000},
}

type SeedStats struct {
	Products int
	Orders   int
	Skipped  bool
}

// Seed fills the catalog and order tables with the demo store data.
// It is a no-op when both tables already hold rows.
func Seed(ctx context.Context, db *sql.DB) (SeedStats, error) {
	logger := log.FromCtx(ctx)

	var stats SeedStats
	if err := countRows(ctx, db, &stats); err != nil {
		return stats, err
	}
	if stats.Products > 0 && stats.Orders > 0 {
		logger.Info().Msg("database already contains data, skipping seed")
		stats.Skipped = true
		return stats, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	for _, p := range seedProducts {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO products (name, description, price, category, stock) VALUES (?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.Price, p.Category, p.Stock)
		if err != nil {
			return stats, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	for _, o := range seedOrders {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO orders (id, customer_name, status, shipping_provider, eta, total_amount) VALUES (?, ?, ?, ?, ?, ?)`,
			o.ID, o.CustomerName, o.Status, o.ShippingProvider, o.ETA, o.TotalAmount)
		if err != nil {
			return stats, fmt.Errorf("failed to seed order %d: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, err
	}

	if err := countRows(ctx, db, &stats); err != nil {
		return stats, err
	}
	logger.Info().Int("products", stats.Products).Int("orders", stats.Orders).Msg("database seeded")
	return stats, nil
}

// Reset removes every row, conversation history included.
func Reset(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"conversation_history", "products", "orders"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

func countRows(ctx context.Context, db *sql.DB, stats *SeedStats) error {
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&stats.Products); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&stats.Orders); err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	return nil
}
