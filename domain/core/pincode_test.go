package core

import (
	"errors"
	"testing"
)

// TestDigitsOnly tests the digits projection applied to pincode values
func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"400001", "400001"},
		{"400 001", "400001"},
		{"INV400001", "400001"},
		{"400-001", "400001"},
		{" 400001 ", "400001"},
		{"PIN: 400001", "400001"},
		{"", ""},
		{"no digits here", ""},
	}

	for _, tt := range tests {
		if got := DigitsOnly(tt.input); got != tt.expected {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// TestParsePincode tests query-time pincode validation
func TestParsePincode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{"plain six digits", "400001", "400001", false},
		{"spaced", "400 001", "400001", false},
		{"prefixed garbage", "INV400001", "400001", false},
		{"five digits", "40000", "", true},
		{"seven digits", "4000011", "", true},
		{"empty", "", "", true},
		{"letters only", "mumbai", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePincode(tt.input)
			if tt.hasError {
				if err == nil {
					t.Fatalf("Expected error for %q, got %q", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidPincode) {
					t.Errorf("Expected ErrInvalidPincode, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePincode(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParsePincode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
