package core

import (
	"fmt"
	"strings"
)

// PincodeLength is the fixed length of an Indian postal code.
const PincodeLength = 6

// DigitsOnly strips every non-digit rune from s. Total function; an
// all-garbage input maps to the empty string.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParsePincode projects raw user input to its digits and validates the
// result is exactly six digits long. The returned string is the lookup key.
func ParsePincode(raw string) (string, error) {
	pin := DigitsOnly(raw)
	if len(pin) != PincodeLength {
		return "", fmt.Errorf("%w: %q has %d digits, want %d", ErrInvalidPincode, raw, len(pin), PincodeLength)
	}
	return pin, nil
}
