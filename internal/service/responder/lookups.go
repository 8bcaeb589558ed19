package responder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/service/intent"
)

// CanonicalProducts maps category keywords to catalog display names, in match order.
var CanonicalProducts = []struct {
	Keyword string
	Name    string
}{
	{"dress", "Dress Summer"},
	{"jaket", "Jaket Denim"},
	{"kemeja", "Kemeja Formal"},
	{"celana", "Celana Jeans"},
}

const warrantyPolicy = `Kebijakan Garansi & Return:

- Garansi: 30 hari untuk semua produk fashion
- Syarat: Produk dalam kondisi asli dengan tag lengkap
- Proses: Hubungi customer service dengan nomor pesanan
- Waktu Proses: 3-5 hari kerja

Untuk klaim garansi, siapkan nomor pesanan dan foto produk.`

// Lookups renders store data as customer-facing sentences. Both the deterministic
// responders and the agent tools go through it, so both paths answer identically.
type Lookups struct {
	catalog core.CatalogRepository
	orders  core.OrderRepository
}

func NewLookups(catalog core.CatalogRepository, orders core.OrderRepository) *Lookups {
	return &Lookups{
		catalog: catalog,
		orders:  orders,
	}
}

// OrderStatus accepts any text holding an order number.
func (l *Lookups) OrderStatus(ctx context.Context, raw string) (string, error) {
	digits, ok := intent.FirstNumber(raw)
	if !ok {
		return "Harap berikan nomor ID pesanan yang valid (contoh: 2001)", nil
	}

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "Format ID pesanan tidak valid", nil
	}

	order, err := l.orders.FindOrderByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Sprintf("Pesanan #%d tidak ditemukan dalam sistem.", id), nil
	}
	if err != nil {
		return "", fmt.Errorf("order lookup: %w", err)
	}

	return fmt.Sprintf("Pesanan #%d sedang %s via %s, estimasi tiba %s.",
		id, order.Status, order.ShippingProvider, order.ETA), nil
}

func (l *Lookups) ProductInfo(ctx context.Context, name string) (string, error) {
	product, err := l.catalog.FindProductByPartialName(ctx, name)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Sprintf("Maaf, produk '%s' tidak ditemukan di katalog kami. Produk yang tersedia: %s.",
			name, strings.Join(canonicalNames(), ", ")), nil
	}
	if err != nil {
		return "", fmt.Errorf("product lookup: %w", err)
	}

	return fmt.Sprintf("Informasi Produk: %s. %s Harganya %s. Saat ini tersedia %d unit.",
		product.Name, product.Description, FormatRupiah(product.Price), product.Stock), nil
}

func (l *Lookups) ProductList(ctx context.Context) (string, error) {
	products, err := l.catalog.ListProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("product list: %w", err)
	}
	if len(products) == 0 {
		return "Maaf, sedang tidak ada produk yang tersedia.", nil
	}

	var sb strings.Builder
	sb.WriteString("Produk yang tersedia di toko kami:\n\n")
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("* %s - %s\n", p.Name, FormatRupiah(p.Price)))
	}
	sb.WriteString("\nMau info detail produk mana?")
	return sb.String(), nil
}

func (l *Lookups) WarrantyPolicy() string {
	return warrantyPolicy
}

func canonicalNames() []string {
	names := make([]string, 0, len(CanonicalProducts))
	for _, p := range CanonicalProducts {
		names = append(names, p.Name)
	}
	return names
}
