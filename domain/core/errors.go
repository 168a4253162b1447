package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema resolution
	ErrColumnNotFound        = errors.New("column not found")
	ErrPincodeColumnNotFound = fmt.Errorf("%w: no pincode-like column", ErrColumnNotFound)

	// Query validation and lookup
	ErrInvalidPincode  = errors.New("invalid pincode")
	ErrPincodeNotFound = errors.New("pincode not found")
)

// Error checking helpers
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

func IsQueryError(err error) bool {
	return errors.Is(err, ErrInvalidPincode) || errors.Is(err, ErrPincodeNotFound)
}
