package utils

import (
	"strings"
	"unicode"
)

// StripWhitespace removes every Unicode whitespace rune, so "4242 4242" becomes "42424242".
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Last4 returns the last four digits of a card number, or "" when it has fewer.
func Last4(card string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, card)
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}
