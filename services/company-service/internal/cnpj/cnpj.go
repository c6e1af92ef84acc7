package cnpj

import "strings"

// Normalize strips the usual CNPJ punctuation (12.345.678/0001-95).
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether the 14-digit CNPJ has correct check digits.
func Valid(raw string) bool {
	digits := Normalize(raw)
	if len(digits) != 14 {
		return false
	}
	allEqual := true
	for i := 1; i < 14; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if checkDigit(digits[:12]) != int(digits[12]-'0') {
		return false
	}
	return checkDigit(digits[:13]) == int(digits[13]-'0')
}

// checkDigit computes a CNPJ verification digit over the given prefix
// using the standard weight sequence 2..9 applied right to left.
func checkDigit(prefix string) int {
	weight := 2
	sum := 0
	for i := len(prefix) - 1; i >= 0; i-- {
		sum += int(prefix[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
