package serviceability

import (
	"strconv"
	"strings"

	"pincheck/domain/core"
	"pincheck/domain/schema"
)

// Result is the outcome of one serviceability query. Derived per query and
// never stored.
type Result struct {
	ServiceType core.ServiceType `json:"service_type"`
	Pincode     string           `json:"pincode"`
	Serviceable bool             `json:"serviceable"`

	// Only4WTyreAvailable is the derived flag for rows where 4W Tyre is the
	// single available service. Surfaced to users only on a serviceable
	// 4W Tyre query.
	Only4WTyreAvailable bool `json:"only_4w_tyre_available"`

	// VendorFitment is nil when the sheet revision has no vendor fitment
	// column for the requested service.
	VendorFitment *bool `json:"vendor_fitment,omitempty"`

	// Fee is nil when no fee column resolved or the cell failed to parse.
	Fee *float64 `json:"fee,omitempty"`

	// Remark is empty when the sheet holds no remark, or only the "-"
	// placeholder, for this row.
	Remark string `json:"remark,omitempty"`
}

// IsYes reports whether a sheet cell affirms availability: trimmed and
// case-folded, the value must read exactly "yes". Anything else, including
// blanks and placeholders, is a no.
func IsYes(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "yes")
}

// Evaluate derives the serviceability result for one resolved row. Pure
// over its inputs; every column access goes through the field map.
func Evaluate(row core.Row, fields schema.FieldMap, svc core.ServiceType) Result {
	res := Result{
		ServiceType: svc,
		Pincode:     row.Get(fields.Pincode()),
		Serviceable: IsYes(row.Get(fields.Service(svc))),
	}

	res.Only4WTyreAvailable = IsYes(row.Get(fields.Service(core.Service4WTyre))) &&
		!IsYes(row.Get(fields.Service(core.Service4WBattery))) &&
		!IsYes(row.Get(fields.Service(core.Service2WTyre))) &&
		!IsYes(row.Get(fields.Service(core.Service2WBattery)))

	if col, ok := fields.Remark(); ok {
		if remark := strings.TrimSpace(row.Get(col)); remark != "" && remark != "-" {
			res.Remark = remark
		}
	}

	if col, ok := fields.VendorFitment(svc); ok {
		fitment := IsYes(row.Get(col))
		res.VendorFitment = &fitment
	}

	if col, ok := fields.Fee(svc); ok {
		if fee, ok := ParseFee(row.Get(col)); ok {
			res.Fee = &fee
		}
	}

	return res
}

// ParseFee parses a sheet fee cell. Maintainers write fees as "499",
// "₹1,499" or "Rs. 350"; currency markers and thousands separators are
// dropped before the numeric parse. A value that still fails to parse
// means the fee is unknown, never an error.
func ParseFee(value string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" || s == "-" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "rs.")
	s = strings.TrimPrefix(s, "rs")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	fee, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return fee, true
}
