package schema

import (
	"fmt"

	"pincheck/domain/core"
)

// Semantic field keys. Service-scoped fields are keyed per service type,
// e.g. "service:4W_Tyre".
const (
	KeyPincode = "pincode"
	KeyRemark  = "remark"
)

// ServiceKey returns the field-map key for a service availability column.
func ServiceKey(svc core.ServiceType) string {
	return "service:" + svc.String()
}

// VendorFitmentKey returns the field-map key for a vendor fitment column.
func VendorFitmentKey(svc core.ServiceType) string {
	return "vendor_fitment:" + svc.String()
}

// FeeKey returns the field-map key for a fee column.
func FeeKey(svc core.ServiceType) string {
	return "fee:" + svc.String()
}

// FieldMap maps semantic field keys to concrete normalized headers. It is
// built once per table load and is the only way queries reach columns;
// nothing re-derives column names afterward.
type FieldMap map[string]string

// Pincode returns the resolved pincode column. Always present in a map
// produced by BuildFieldMap.
func (m FieldMap) Pincode() string {
	return m[KeyPincode]
}

// Service returns the resolved availability column for a service. Always
// present: unresolved services point at the synthetic all-"no" column.
func (m FieldMap) Service(svc core.ServiceType) string {
	return m[ServiceKey(svc)]
}

// Remark returns the resolved remark column, if any.
func (m FieldMap) Remark() (string, bool) {
	col, ok := m[KeyRemark]
	return col, ok
}

// VendorFitment returns the resolved vendor fitment column for a service,
// if any.
func (m FieldMap) VendorFitment(svc core.ServiceType) (string, bool) {
	col, ok := m[VendorFitmentKey(svc)]
	return col, ok
}

// Fee returns the resolved fee column for a service, if any.
func (m FieldMap) Fee(svc core.ServiceType) (string, bool) {
	col, ok := m[FeeKey(svc)]
	return col, ok
}

// Resolution is the outcome of resolving one header set: the field map plus
// the synthetic columns the loader must materialize with a uniform "no"
// before the table is queried.
type Resolution struct {
	Fields    FieldMap
	Synthetic []string
}

// BuildFieldMap resolves every semantic field against a normalized header
// list. A missing pincode column fails the whole resolution; a missing
// service column degrades to a synthetic negative column; remark, vendor
// fitment and fee are simply absent when unresolved.
func BuildFieldMap(headers []string) (*Resolution, error) {
	pincodeCol, ok := ResolvePincode(headers)
	if !ok {
		return nil, fmt.Errorf("%w among %v", core.ErrPincodeColumnNotFound, headers)
	}

	res := &Resolution{Fields: FieldMap{KeyPincode: pincodeCol}}

	for _, svc := range core.AllServiceTypes() {
		if col, ok := ResolveService(headers, svc); ok {
			res.Fields[ServiceKey(svc)] = col
		} else {
			// The canonical phrase doubles as the synthetic column name.
			res.Fields[ServiceKey(svc)] = svc.Canonical()
			res.Synthetic = append(res.Synthetic, svc.Canonical())
		}
		if col, ok := ResolveVendorFitment(headers, svc); ok {
			res.Fields[VendorFitmentKey(svc)] = col
		}
		if col, ok := ResolveFee(headers, svc); ok {
			res.Fields[FeeKey(svc)] = col
		}
	}

	if col, ok := ResolveRemark(headers); ok {
		res.Fields[KeyRemark] = col
	}

	return res, nil
}
