package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower lowercases s using Unicode case mapping.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
		runes[l], runes[r] = runes[r], runes[l]
	}
	return string(runes)
}
