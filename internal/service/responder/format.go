package responder

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount as "Rp 299.000" (period as grouping separator).
func FormatRupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}
