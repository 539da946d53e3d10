// Package cardmask renders card data for display without exposing it.
package cardmask

import "strings"

// SecurityCode is what the security code is always displayed as.
const SecurityCode = "***"

// CardNumber masks all but the last four digits in grouped card-face form,
// e.g. "**** **** **** 1111".
func CardNumber(pan string) string {
	return "**** **** **** " + LastN(NormalizePAN(pan), 4)
}

// LastN returns the last n bytes of s, or s when it is shorter.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// NormalizePAN strips spaces, tabs and dashes.
func NormalizePAN(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}
