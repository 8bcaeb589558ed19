package responder

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sandevgo/tuskshop/internal/core"
)

type fakeCatalog struct {
	products []core.Product
	err      error
}

func (f *fakeCatalog) FindProductByPartialName(_ context.Context, text string) (*core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.sorted() {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(text)) {
			p := p
			return &p, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeCatalog) ListProducts(_ context.Context) ([]core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sorted(), nil
}

func (f *fakeCatalog) sorted() []core.Product {
	out := append([]core.Product(nil), f.products...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type fakeOrders struct {
	orders map[int64]core.Order
	err    error
}

func (f *fakeOrders) FindOrderByID(_ context.Context, id int64) (*core.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &o, nil
}

var errStoreDown = errors.New("store down")

func demoCatalog() *fakeCatalog {
	return &fakeCatalog{products: []core.Product{
		{Name: "Dress Summer", Description: "Dress ringan berbahan katun premium.", Price: 299000, Stock: 25},
		{Name: "Jaket Denim", Description: "Jaket denim unisex.", Price: 459000, Stock: 15},
		{Name: "Kemeja Formal", Description: "Kemeja formal pria.", Price: 199000, Stock: 30},
		{Name: "Celana Jeans", Description: "Celana jeans wanita.", Price: 349000, Stock: 20},
	}}
}

func demoOrders() *fakeOrders {
	return &fakeOrders{orders: map[int64]core.Order{
		2001: {ID: 2001, Status: "Dikirim", ShippingProvider: "JNE", ETA: "2025-09-25"},
		2002: {ID: 2002, Status: "Dikemas", ShippingProvider: "SiCepat", ETA: "2025-09-24"},
	}}
}
