// Package phone normalizes and validates 10-digit Indian mobile numbers.
package phone

import "strings"

const countryPrefix = "+91"

// Normalize strips formatting characters and a leading country prefix,
// returning the bare 10-digit subscriber number when recognizable.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) == 11 && digits[0] == '0' {
		digits = digits[1:]
	}
	return digits
}

// Valid reports whether raw normalizes to a valid Indian mobile number:
// exactly 10 digits with a leading digit in 6-9.
func Valid(raw string) bool {
	d := Normalize(raw)
	if len(d) != 10 {
		return false
	}
	return d[0] >= '6' && d[0] <= '9'
}

// E164 returns the wire format (+91XXXXXXXXXX), or the empty string when the
// number is invalid.
func E164(raw string) string {
	if !Valid(raw) {
		return ""
	}
	return countryPrefix + Normalize(raw)
}

// Display returns the conventional "XXXXX XXXXX" grouping for UI display,
// or the input unchanged when the number is invalid.
func Display(raw string) string {
	if !Valid(raw) {
		return raw
	}
	d := Normalize(raw)
	return d[:5] + " " + d[5:]
}
