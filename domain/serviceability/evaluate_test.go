package serviceability

import (
	"testing"

	"pincheck/domain/core"
	"pincheck/domain/schema"
)

func standardFields() schema.FieldMap {
	fields := schema.FieldMap{
		schema.KeyPincode: "pin code",
		schema.KeyRemark:  "remark",
	}
	for _, svc := range core.AllServiceTypes() {
		fields[schema.ServiceKey(svc)] = svc.Canonical()
	}
	return fields
}

// TestIsYes tests the exact yes-matching rule
func TestIsYes(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"yes", true},
		{"Yes", true},
		{"YES", true},
		{"Yes ", true},
		{"  yes  ", true},
		{"no", false},
		{"", false},
		{"-", false},
		{"maybe", false},
		{"yess", false},
		{"y", false},
	}

	for _, tt := range tests {
		if got := IsYes(tt.input); got != tt.expected {
			t.Errorf("IsYes(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

// TestEvaluateServiceable tests the basic yes/no outcome per service
func TestEvaluateServiceable(t *testing.T) {
	row := core.Row{
		"pin code":         "400001",
		"4w tyre order":    "Yes",
		"4w battery order": "no",
		"2w tyre order":    "",
		"2w battery order": "-",
		"remark":           "-",
	}
	fields := standardFields()

	tests := []struct {
		svc      core.ServiceType
		expected bool
	}{
		{core.Service4WTyre, true},
		{core.Service4WBattery, false},
		{core.Service2WTyre, false},
		{core.Service2WBattery, false},
	}

	for _, tt := range tests {
		t.Run(tt.svc.String(), func(t *testing.T) {
			res := Evaluate(row, fields, tt.svc)
			if res.Serviceable != tt.expected {
				t.Errorf("Serviceable = %v, want %v", res.Serviceable, tt.expected)
			}
			if res.Pincode != "400001" {
				t.Errorf("Pincode = %q, want 400001", res.Pincode)
			}
		})
	}
}

// TestOnly4WTyreAvailable tests the full truth table of the derived flag
func TestOnly4WTyreAvailable(t *testing.T) {
	fields := standardFields()

	type pattern struct {
		tyre4w, batt4w, tyre2w, batt2w string
		expected                       bool
	}

	patterns := []pattern{
		{"yes", "no", "no", "no", true},
		{"Yes", "", "-", "No", true},
		{"yes", "yes", "no", "no", false},
		{"yes", "no", "yes", "no", false},
		{"yes", "no", "no", "yes", false},
		{"yes", "yes", "yes", "yes", false},
		{"no", "no", "no", "no", false},
		{"no", "yes", "yes", "yes", false},
		{"", "", "", "", false},
	}

	for _, p := range patterns {
		row := core.Row{
			"pin code":         "400001",
			"4w tyre order":    p.tyre4w,
			"4w battery order": p.batt4w,
			"2w tyre order":    p.tyre2w,
			"2w battery order": p.batt2w,
		}
		res := Evaluate(row, fields, core.Service4WTyre)
		if res.Only4WTyreAvailable != p.expected {
			t.Errorf("pattern %+v: Only4WTyreAvailable = %v, want %v", p, res.Only4WTyreAvailable, p.expected)
		}

		// The flag is derived the same way regardless of the queried service.
		res = Evaluate(row, fields, core.Service2WBattery)
		if res.Only4WTyreAvailable != p.expected {
			t.Errorf("pattern %+v (2W query): Only4WTyreAvailable = %v, want %v", p, res.Only4WTyreAvailable, p.expected)
		}
	}
}

// TestEvaluateRemark tests remark surfacing and suppression
func TestEvaluateRemark(t *testing.T) {
	fields := standardFields()

	tests := []struct {
		name     string
		remark   string
		expected string
	}{
		{"real remark", "Call CM before confirming", "Call CM before confirming"},
		{"padded remark", "  cash only  ", "cash only"},
		{"placeholder dash", "-", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := core.Row{
				"pin code":      "400001",
				"4w tyre order": "yes",
				"remark":        tt.remark,
			}
			res := Evaluate(row, fields, core.Service4WTyre)
			if res.Remark != tt.expected {
				t.Errorf("Remark = %q, want %q", res.Remark, tt.expected)
			}
		})
	}
}

func TestEvaluateWithoutRemarkColumn(t *testing.T) {
	fields := standardFields()
	delete(fields, schema.KeyRemark)

	row := core.Row{"pin code": "400001", "4w tyre order": "yes", "remark": "ignored"}
	res := Evaluate(row, fields, core.Service4WTyre)
	if res.Remark != "" {
		t.Errorf("Expected no remark without a resolved column, got %q", res.Remark)
	}
}

// TestEvaluateVendorFitment tests the optional richer-schema attribute
func TestEvaluateVendorFitment(t *testing.T) {
	fields := standardFields()
	row := core.Row{
		"pin code":               "400001",
		"4w tyre order":          "yes",
		"4w tyre vendor fitment": "Yes",
	}

	// Unresolved: unknown, not false.
	res := Evaluate(row, fields, core.Service4WTyre)
	if res.VendorFitment != nil {
		t.Errorf("Expected unknown vendor fitment, got %v", *res.VendorFitment)
	}

	fields[schema.VendorFitmentKey(core.Service4WTyre)] = "4w tyre vendor fitment"
	res = Evaluate(row, fields, core.Service4WTyre)
	if res.VendorFitment == nil || !*res.VendorFitment {
		t.Error("Expected vendor fitment true")
	}

	row["4w tyre vendor fitment"] = "no"
	res = Evaluate(row, fields, core.Service4WTyre)
	if res.VendorFitment == nil || *res.VendorFitment {
		t.Error("Expected vendor fitment false")
	}
}

// TestEvaluateFee tests numeric fee parsing through the field map
func TestEvaluateFee(t *testing.T) {
	fields := standardFields()
	fields[schema.FeeKey(core.Service4WTyre)] = "4w tyre fee"

	tests := []struct {
		name     string
		cell     string
		expected *float64
	}{
		{"plain number", "499", ptr(499.0)},
		{"decimal", "499.50", ptr(499.5)},
		{"rupee symbol", "₹1,499", ptr(1499.0)},
		{"rs prefix", "Rs. 350", ptr(350.0)},
		{"unparsable", "free", nil},
		{"placeholder", "-", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := core.Row{
				"pin code":      "400001",
				"4w tyre order": "yes",
				"4w tyre fee":   tt.cell,
			}
			res := Evaluate(row, fields, core.Service4WTyre)
			if tt.expected == nil {
				if res.Fee != nil {
					t.Errorf("Expected absent fee, got %v", *res.Fee)
				}
				return
			}
			if res.Fee == nil {
				t.Fatalf("Expected fee %v, got absent", *tt.expected)
			}
			if *res.Fee != *tt.expected {
				t.Errorf("Fee = %v, want %v", *res.Fee, *tt.expected)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
