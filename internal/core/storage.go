package core

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when a keyed lookup misses.
var ErrNotFound = errors.New("not found")

// Turn is one persisted unit of conversation history.
type Turn struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
}

type Order struct {
	ID               int64  `json:"id"`
	CustomerName     string `json:"customer_name"`
	Status           string `json:"status"`
	ShippingProvider string `json:"shipping_provider"`
	ETA              string `json:"eta"`
	TotalAmount      int64  `json:"total_amount"`
}

// TurnRepository is the append-only conversation log.
// FetchLast returns up to 2*exchanges newest turns, ordered oldest to newest.
type TurnRepository interface {
	Append(ctx context.Context, sessionID, role, text string) error
	FetchLast(ctx context.Context, sessionID string, exchanges int) ([]Turn, error)
}

type CatalogRepository interface {
	FindProductByPartialName(ctx context.Context, text string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type OrderRepository interface {
	FindOrderByID(ctx context.Context, id int64) (*Order, error)
}
