package domain

import (
	"math"
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single "-", trimming dashes at both ends.
//
//	Slugify("Grand Opening!") == "grand-opening"
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// ComputeSavings derives the discount from a price pair. Both results are nil
// unless both prices are set and the original price is positive.
func ComputeSavings(original, offer *float64) (amount, percent *float64) {
	if original == nil || offer == nil || *original <= 0 {
		return nil, nil
	}
	a := round2(*original - *offer)
	p := math.Round(a / *original * 100)
	return &a, &p
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
