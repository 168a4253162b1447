package sheets

import "strings"

// LooksTabular is the structural sniff applied to every fetched body before
// CSV parsing: empty payloads and HTML documents (typically a login or
// error page served instead of the sheet) are rejected; anything else
// passes if it has at least one delimiter and one line break. A heuristic,
// not a parse.
func LooksTabular(body string) bool {
	if body == "" {
		return false
	}
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype html") {
		return false
	}
	return (strings.Contains(body, ",") || strings.Contains(body, "\t")) &&
		strings.Contains(body, "\n")
}
