package schema

import (
	"strings"

	"pincheck/domain/core"
)

// PincodeSynonyms are the exact-tier candidates for the pincode column,
// tried in this order.
var PincodeSynonyms = []string{"pincode", "pin code", "pin", "postal code", "postcode", "zip", "zip code"}

// pincodeFuzzyTokens drive the fuzzy tier when no synonym matches outright.
var pincodeFuzzyTokens = []string{"pin", "code"}

// GuessColumn implements the two-tier column match. The exact tier returns
// the first target present in headers; only when every target misses does
// the fuzzy tier run, returning the first header (in column order) that
// contains every fuzzy token as a substring.
func GuessColumn(headers []string, targets []string, fuzzyTokens []string) (string, bool) {
	for _, target := range targets {
		for _, h := range headers {
			if h == target {
				return h, true
			}
		}
	}
	if len(fuzzyTokens) == 0 {
		return "", false
	}
	for _, h := range headers {
		if containsAllTokens(h, fuzzyTokens) {
			return h, true
		}
	}
	return "", false
}

func containsAllTokens(header string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(header, tok) {
			return false
		}
	}
	return true
}

// ResolvePincode finds the pincode column: synonyms first, then any header
// containing both "pin" and "code".
func ResolvePincode(headers []string) (string, bool) {
	if col, ok := GuessColumn(headers, PincodeSynonyms, nil); ok {
		return col, true
	}
	return GuessColumn(headers, nil, pincodeFuzzyTokens)
}

// ResolveService finds the availability column for one service, matching
// its canonical phrase exactly and then by the phrase's own tokens.
func ResolveService(headers []string, svc core.ServiceType) (string, bool) {
	canonical := svc.Canonical()
	if col, ok := GuessColumn(headers, []string{canonical}, nil); ok {
		return col, true
	}
	return GuessColumn(headers, nil, strings.Fields(canonical))
}

// ResolveRemark finds the remark column: the first header containing
// "remark" or "note".
func ResolveRemark(headers []string) (string, bool) {
	for _, h := range headers {
		if strings.Contains(h, "remark") || strings.Contains(h, "note") {
			return h, true
		}
	}
	return "", false
}

// ResolveVendorFitment finds the per-service vendor fitment column, e.g.
// "4w tyre vendor fitment" for 4W_Tyre. Optional; richer sheet revisions
// carry it, older ones do not.
func ResolveVendorFitment(headers []string, svc core.ServiceType) (string, bool) {
	phrase := strings.ToLower(svc.DisplayName()) + " vendor fitment"
	if col, ok := GuessColumn(headers, []string{phrase}, nil); ok {
		return col, true
	}
	return GuessColumn(headers, nil, strings.Fields(phrase))
}

// ResolveFee finds the per-service fee column, e.g. "4w tyre fee".
// Optional, like vendor fitment.
func ResolveFee(headers []string, svc core.ServiceType) (string, bool) {
	phrase := strings.ToLower(svc.DisplayName()) + " fee"
	if col, ok := GuessColumn(headers, []string{phrase}, nil); ok {
		return col, true
	}
	return GuessColumn(headers, nil, strings.Fields(phrase))
}
