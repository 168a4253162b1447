package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  New(CodeInvalidPincode, "invalid pincode"),
			want: "invalid pincode",
		},
		{
			name: "with cause",
			err:  TransportFailed("http://example.com/sheet.csv", fmt.Errorf("connection refused")),
			want: "fetch failed for http://example.com/sheet.csv: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	base := NonTabular("http://example.com/pub")
	wrapped := Wrap(base, "candidate rejected")

	if GetCode(wrapped) != CodeNonTabular {
		t.Errorf("GetCode(wrapped) = %q, want %q", GetCode(wrapped), CodeNonTabular)
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the original")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	if WithCode(CodeTransport, nil) != nil {
		t.Error("WithCode(nil) should return nil")
	}
}

func TestWithCodeOnPlainError(t *testing.T) {
	err := WithCode(CodeSourceExhausted, fmt.Errorf("all 3 candidates failed"))

	if GetCode(err) != CodeSourceExhausted {
		t.Errorf("GetCode = %q, want %q", GetCode(err), CodeSourceExhausted)
	}
	if !IsAppError(err) {
		t.Error("WithCode should produce an AppError")
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"matching code", PincodeNotFound("999999"), CodePincodeNotFound, true},
		{"different code", InvalidPincode("too short"), CodePincodeNotFound, false},
		{"plain error", fmt.Errorf("boom"), CodeTransport, false},
		{"nil error", nil, CodeTransport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeUnknownForPlainErrors(t *testing.T) {
	if got := GetCode(fmt.Errorf("boom")); got != "UNKNOWN" {
		t.Errorf("GetCode(plain) = %q, want UNKNOWN", got)
	}
}
