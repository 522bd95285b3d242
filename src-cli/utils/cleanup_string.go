package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// drops emojis and anything else outside ASCII so titles stay displayable
// as plain text
func StripNonASCII(s string) string {
	out, _, err := transform.String(asciiOnly, s)
	if err != nil {
		return s
	}
	return out
}

// strips spaces, uppercase first letter of each word
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
