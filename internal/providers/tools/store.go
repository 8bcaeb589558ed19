package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskshop/internal/service/responder"
)

const (
	ToolOrderStatus    = "get_order_status"
	ToolProductInfo    = "get_product_info"
	ToolWarrantyPolicy = "get_warranty_policy"
)

const orderStatusSchema = `
{
  "type": "object",
  "properties": {
    "order_id": { "type": "string", "description": "Nomor pesanan, contoh: 2001" }
  },
  "required": ["order_id"]
}
`

const productInfoSchema = `
{
  "type": "object",
  "properties": {
    "product_name": { "type": "string", "description": "Nama produk, contoh: Dress Summer" }
  },
  "required": ["product_name"]
}
`

const warrantyPolicySchema = `
{
  "type": "object",
  "properties": {
    "question": { "type": "string", "description": "Pertanyaan pelanggan tentang garansi (opsional)" }
  }
}
`

// Store exposes the shop lookups as agent tools.
type Store struct {
	lookups *responder.Lookups
}

func NewStore(lookups *responder.Lookups) *Store {
	return &Store{lookups: lookups}
}

func (s *Store) GetDefinitions() []Definition {
	return []Definition{
		{ToolOrderStatus, "Cek status pesanan berdasarkan nomor ID", json.RawMessage(orderStatusSchema), s.OrderStatus},
		{ToolProductInfo, "Ambil info produk termasuk deskripsi dan harga", json.RawMessage(productInfoSchema), s.ProductInfo},
		{ToolWarrantyPolicy, "Informasi tentang garansi dan retur", json.RawMessage(warrantyPolicySchema), s.WarrantyPolicy},
	}
}

func (s *Store) OrderStatus(ctx context.Context, args json.RawMessage) (string, error) {
	return s.lookups.OrderStatus(ctx, argument(args, "order_id"))
}

func (s *Store) ProductInfo(ctx context.Context, args json.RawMessage) (string, error) {
	name := strings.TrimSpace(argument(args, "product_name"))
	if name == "" {
		return "", fmt.Errorf("invalid arguments: product_name is required")
	}
	return s.lookups.ProductInfo(ctx, name)
}

func (s *Store) WarrantyPolicy(_ context.Context, _ json.RawMessage) (string, error) {
	return s.lookups.WarrantyPolicy(), nil
}

// argument reads key from a JSON object, accepting string or number values.
// Models sometimes send the bare value instead of an object; that is used as is.
func argument(args json.RawMessage, key string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(args, &obj); err != nil {
		var s string
		if json.Unmarshal(args, &s) == nil {
			return s
		}
		return string(args)
	}

	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
