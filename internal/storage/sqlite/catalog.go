package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskshop/internal/core"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindProductByPartialName returns the first product, ordered by name, whose name
// contains text (case-insensitive).
func (r *CatalogRepo) FindProductByPartialName(ctx context.Context, text string) (*core.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(text)) + "%"
	query := `SELECT id, name, description, price, category, stock FROM products
		WHERE name LIKE ? ESCAPE '\' ORDER BY name LIMIT 1`

	var p core.Product
	err := r.db.QueryRowContext(ctx, query, pattern).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepo) ListProducts(ctx context.Context) ([]core.Product, error) {
	query := `SELECT id, name, description, price, category, stock FROM products ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
