package intent

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandevgo/tuskshop/internal/core"
)

// Name tokens are Unicode words, so "José" and "Ñoño" survive intact.
var (
	explicitNamePattern = regexp.MustCompile(`nama saya (?:adalah )?([\p{L}\p{N}_]+)`)

	namePatterns = []*regexp.Regexp{
		explicitNamePattern,
		regexp.MustCompile(`saya ([\p{L}\p{N}_]+)`),
		regexp.MustCompile(`perkenalkan.*?([\p{L}\p{N}_]+)`),
	}
)

// ExtractName returns the self-introduced name in text, title-cased.
func ExtractName(text string) (string, bool) {
	return extractWith(text, namePatterns)
}

func extractWith(text string, patterns []*regexp.Regexp) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		m := p.FindStringSubmatch(lower)
		if m == nil || isInterrogative(m[1]) {
			continue
		}
		return titleCase(m[1]), true
	}
	return "", false
}

// RecallName scans the user turns of the window, newest first, for a name.
// An explicit "nama saya X" anywhere in the window beats the looser patterns,
// so "saya mau retur" after an introduction does not yield "Mau".
func RecallName(window []core.Turn) (string, bool) {
	explicit := []*regexp.Regexp{explicitNamePattern}
	for _, patterns := range [][]*regexp.Regexp{explicit, namePatterns} {
		for i := len(window) - 1; i >= 0; i-- {
			if window[i].Role != core.RoleUser {
				continue
			}
			if name, ok := extractWith(window[i].Text, patterns); ok {
				return name, true
			}
		}
	}
	return "", false
}

// "nama saya siapa" must not yield the name "Siapa".
func isInterrogative(word string) bool {
	for _, q := range questionMarkers {
		if word == q {
			return true
		}
	}
	return false
}

func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
