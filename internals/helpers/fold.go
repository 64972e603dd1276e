package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips diacritics and collapses whitespace so search
// terms compare the way people type them (é → e, "  A  b" → "a b").
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// MatchesAll reports whether every folded term of query appears in one of
// the fields. An empty query matches everything.
func MatchesAll(query string, fields ...string) bool {
	terms := strings.Fields(Fold(query))
	if len(terms) == 0 {
		return true
	}
	hay := make([]string, 0, len(fields))
	for _, f := range fields {
		hay = append(hay, Fold(f))
	}
	joined := strings.Join(hay, "\n")
	for _, t := range terms {
		if !strings.Contains(joined, t) {
			return false
		}
	}
	return true
}
