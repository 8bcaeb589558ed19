// Package intent maps raw customer utterances to a fixed set of intents
// and pulls self-introduced names out of them.
package intent

import (
	"regexp"
	"strings"

	"github.com/sandevgo/tuskshop/internal/core"
)

var (
	orderKeywords    = []string{"pesanan", "status", "dimana", "order"}
	productKeywords  = []string{"dress", "jaket", "kemeja", "celana", "produk", "info", "harga"}
	warrantyKeywords = []string{"garansi", "retur", "tukar", "warranty", "claim"}
	introPhrase      = "nama saya"
	questionMarkers  = []string{"siapa", "apa"}
	recallPhrases    = []string{"siapa nama", "nama saya siapa", "pertanyaan sebelum", "tanya tadi"}
	greetingKeywords = []string{"halo", "hai", "selamat", "hello"}

	digitsRe = regexp.MustCompile(`\d+`)
)

// maxGreetingTokens bounds a pure greeting; longer sentences that merely open with one are not greetings.
const maxGreetingTokens = 4

type rule struct {
	intent core.Intent
	match  func(msg string) bool
}

// Order matters: first match wins.
var rules = []rule{
	{core.IntentOrderStatus, func(msg string) bool {
		return containsAny(msg, orderKeywords) && digitsRe.MatchString(msg)
	}},
	{core.IntentProductInfo, func(msg string) bool {
		return containsAny(msg, productKeywords)
	}},
	{core.IntentWarranty, func(msg string) bool {
		return containsAny(msg, warrantyKeywords)
	}},
	{core.IntentIntroduction, func(msg string) bool {
		return strings.Contains(msg, introPhrase) && !containsAny(msg, questionMarkers)
	}},
	{core.IntentMemoryQuery, func(msg string) bool {
		return containsAny(msg, recallPhrases)
	}},
	{core.IntentGreeting, func(msg string) bool {
		return containsAny(msg, greetingKeywords) && len(strings.Fields(msg)) <= maxGreetingTokens
	}},
}

// Classify never fails; anything unmatched is general.
func Classify(message string) core.Intent {
	msg := strings.ToLower(message)
	for _, r := range rules {
		if r.match(msg) {
			return r.intent
		}
	}
	return core.IntentGeneral
}

// FirstNumber returns the first run of digits in text.
func FirstNumber(text string) (string, bool) {
	n := digitsRe.FindString(text)
	return n, n != ""
}

func containsAny(msg string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
