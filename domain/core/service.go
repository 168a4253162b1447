package core

import (
	"fmt"
	"strings"
)

// ServiceType identifies one of the four serviceability offerings.
type ServiceType string

const (
	Service4WTyre    ServiceType = "4W_Tyre"
	Service4WBattery ServiceType = "4W_Battery"
	Service2WTyre    ServiceType = "2W_Tyre"
	Service2WBattery ServiceType = "2W_Battery"
)

// AllServiceTypes returns the service vocabulary in its fixed display order.
func AllServiceTypes() []ServiceType {
	return []ServiceType{Service4WTyre, Service4WBattery, Service2WTyre, Service2WBattery}
}

// ParseServiceType parses user input into a ServiceType. Matching is
// case-insensitive and tolerates spaces or hyphens in place of the
// underscore, so "4w tyre" and "4W-Tyre" both resolve.
func ParseServiceType(s string) (ServiceType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	needle = strings.NewReplacer(" ", "_", "-", "_").Replace(needle)
	for _, svc := range AllServiceTypes() {
		if needle == strings.ToLower(string(svc)) {
			return svc, nil
		}
	}
	return "", fmt.Errorf("unknown service type %q", s)
}

// String returns the canonical key form, e.g. "4W_Tyre".
func (s ServiceType) String() string {
	return string(s)
}

// DisplayName returns the human form, e.g. "4W Tyre".
func (s ServiceType) DisplayName() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Canonical returns the normalized sheet phrase the service column is
// matched against, e.g. "4w tyre order".
func (s ServiceType) Canonical() string {
	return strings.ToLower(s.DisplayName()) + " order"
}
