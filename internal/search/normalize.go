package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText decomposes, drops combining marks and lower-cases s so that
// "Café" and "cafe" tokenize identically. Transformers are not safe for
// concurrent use, so a fresh chain is built per call.
func foldText(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Lower(language.Und).String(out)
}

// Tokenize normalizes s and splits it into tokens. Every rune that is not a
// letter or a digit separates tokens, so "CI/CD" yields ["ci", "cd"].
func Tokenize(s string) []string {
	s = foldText(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizeField is the canonical form of a single-value header field such as
// a keyword or category: its tokens joined by one space.
func normalizeField(s string) string {
	return strings.Join(Tokenize(s), " ")
}

// normalizeKeywords normalizes, drops empties and de-duplicates while keeping
// declaration order.
func normalizeKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, k := range raw {
		k = normalizeField(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
