// Package sanitizer normalizes generated replies before they reach the customer.
package sanitizer

import (
	"regexp"
	"strings"
)

var prefix = regexp.MustCompile(`^(?:(?:AI|Assistant|Bot):\s*)+`)

// Common English leaks from small models, mapped to Indonesian. Matching is
// whole-word so Indonesian words containing these tokens stay intact.
var replacements = []struct {
	pattern *regexp.Regexp
	with    string
}{
	{regexp.MustCompile(`\border\b`), "pesanan"},
	{regexp.MustCompile(`\bbeing\b`), "sedang"},
	{regexp.MustCompile(`\bcurrently\b`), "saat ini"},
	{regexp.MustCompile(`\bshipped\b`), "dikirim"},
	{regexp.MustCompile(`\bdelivered\b`), "diantarkan"},
}

// Clean strips a leading speaker marker and translates leftover English words.
// Clean(Clean(s)) == Clean(s).
func Clean(reply string) string {
	out := strings.TrimSpace(reply)
	out = prefix.ReplaceAllString(out, "")

	for _, r := range replacements {
		out = r.pattern.ReplaceAllString(out, r.with)
	}
	return strings.TrimSpace(out)
}
