// Package responder answers the intents that need no generative model.
package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/service/intent"
)

const (
	greetingReply      = "Halo! Selamat datang di toko fashion kami. Ada yang bisa saya bantu?"
	introReplyTemplate = "Halo %s! Senang berkenalan. Ada yang ingin ditanyakan tentang produk fashion kami?"
	introReplyGeneric  = "Halo! Senang berkenalan dengan Anda. Ada yang bisa saya bantu?"
	nameKnownTemplate  = "Nama Anda adalah %s."
	nameUnknownReply   = "Saya belum mengetahui nama Anda dalam percakapan ini."
	prevQuestionReply  = `Pertanyaan sebelumnya: "%s"`
	firstQuestionReply = "Ini pertanyaan pertama Anda."
	recallUnknownReply = "Maaf, saya tidak memahami pertanyaan tentang percakapan sebelumnya."
	orderNumberMissing = "Mohon berikan nomor pesanan yang valid."
)

var listTriggers = []string{"apa saja", "tersedia", "semua produk", "daftar produk"}

type Responder struct {
	lookups *Lookups
}

func New(lookups *Lookups) *Responder {
	return &Responder{lookups: lookups}
}

// Respond returns ok=false when the intent has no deterministic answer and the
// caller should fall back to the generative agent. window holds the persisted
// history preceding message.
func (r *Responder) Respond(ctx context.Context, in core.Intent, message string, window []core.Turn) (string, bool, error) {
	var (
		reply string
		err   error
	)

	switch in {
	case core.IntentGreeting:
		reply = greetingReply
	case core.IntentIntroduction:
		reply = introduction(message)
	case core.IntentMemoryQuery:
		reply = recall(message, window)
	case core.IntentOrderStatus:
		reply, err = r.orderStatus(ctx, message)
	case core.IntentProductInfo:
		reply, err = r.productInfo(ctx, message)
	case core.IntentWarranty:
		reply = r.lookups.WarrantyPolicy()
	default:
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("%s responder: %w", in, err)
	}
	return reply, true, nil
}

func introduction(message string) string {
	if name, ok := intent.ExtractName(message); ok {
		return fmt.Sprintf(introReplyTemplate, name)
	}
	return introReplyGeneric
}

func recall(message string, window []core.Turn) string {
	msg := strings.ToLower(message)

	if strings.Contains(msg, "nama") {
		if name, ok := intent.RecallName(window); ok {
			return fmt.Sprintf(nameKnownTemplate, name)
		}
		return nameUnknownReply
	}

	if strings.Contains(msg, "pertanyaan") || strings.Contains(msg, "tanya") {
		var questions []string
		for _, t := range window {
			if t.Role == core.RoleUser {
				questions = append(questions, t.Text)
			}
		}
		if len(questions) >= 2 {
			return fmt.Sprintf(prevQuestionReply, questions[len(questions)-2])
		}
		return firstQuestionReply
	}

	return recallUnknownReply
}

func (r *Responder) orderStatus(ctx context.Context, message string) (string, error) {
	if _, ok := intent.FirstNumber(message); !ok {
		return orderNumberMissing, nil
	}
	return r.lookups.OrderStatus(ctx, message)
}

// productInfo dispatches in two explicit branches: listing, or a keyword-matched
// detail lookup. A message naming no known category ends in the listing.
func (r *Responder) productInfo(ctx context.Context, message string) (string, error) {
	msg := strings.ToLower(message)

	if !containsAny(msg, listTriggers) {
		for _, p := range CanonicalProducts {
			if strings.Contains(msg, p.Keyword) {
				return r.lookups.ProductInfo(ctx, p.Name)
			}
		}
	}

	return r.lookups.ProductList(ctx)
}

func containsAny(msg string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
