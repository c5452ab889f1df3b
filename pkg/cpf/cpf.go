// Package cpf normalizes and validates the Brazilian CPF, an 11-digit
// personal identifier whose two trailing digits are weighted mod-11
// check digits over the preceding ones.
package cpf

import "strings"

// Normalize strips every non-digit rune. The returned digit-only form is
// the canonical one: it is what gets validated, compared for uniqueness
// and stored. "123.456.789-09" and "12345678909" normalize identically.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether value is a structurally valid CPF. The value is
// expected in canonical form (see Normalize): exactly 11 digits, not a
// single repeated digit, and both check digits correct.
func Valid(value string) bool {
	if len(value) != 11 {
		return false
	}

	var digits [11]int
	repeated := true
	for i := 0; i < 11; i++ {
		c := value[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
		if c != value[0] {
			repeated = false
		}
	}
	// Sequences like 111.111.111-11 satisfy the checksum but are not
	// issuable CPFs.
	if repeated {
		return false
	}

	if checkDigit(digits[:9], 10) != digits[9] {
		return false
	}
	return checkDigit(digits[:10], 11) == digits[10]
}

// checkDigit computes one verification digit: weights run from
// firstWeight down to 2, and 11 minus the sum mod 11 collapses to 0
// when it reaches 10 or 11.
func checkDigit(digits []int, firstWeight int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (firstWeight - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}
