package sheets

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Source identifies the remote sheet: a full published URL, a spreadsheet
// id + tab id pair, or both. At least one of URL / SheetID must be set.
type Source struct {
	URL      string
	SheetID  string
	SheetGID string
}

// Candidates expands a source into the ordered endpoint list the fetcher
// walks; the first candidate yielding tabular content wins. A configured
// URL is always tried first, as given. When only a URL is configured,
// variants of it are tried next: output format forced to CSV, the
// tab-disambiguating gid parameter removed, and a cache-busting copy with
// a unique query parameter. A configured sheet id contributes the export
// endpoint and then the gviz endpoint. Duplicates are removed, first
// occurrence kept.
func Candidates(src Source) []string {
	var urls []string

	if src.URL != "" {
		urls = append(urls, src.URL)
		if src.SheetID == "" {
			urls = append(urls,
				forceCSVOutput(src.URL),
				withoutParam(src.URL, "gid"),
				withCacheBuster(src.URL),
			)
		}
	}

	if src.SheetID != "" {
		gid := src.SheetGID
		if gid == "" {
			gid = "0"
		}
		urls = append(urls,
			fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", src.SheetID, gid),
			fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&gid=%s", src.SheetID, gid),
		)
	}

	return dedupe(urls)
}

// forceCSVOutput rewrites the URL's output parameter to csv. A URL already
// asking for csv, or one that fails to parse, passes through unchanged and
// is dropped later by dedupe.
func forceCSVOutput(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("output") == "csv" {
		return raw
	}
	q.Set("output", "csv")
	u.RawQuery = q.Encode()
	return u.String()
}

// withoutParam removes one query parameter from the URL.
func withoutParam(raw, param string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has(param) {
		return raw
	}
	q.Del(param)
	u.RawQuery = q.Encode()
	return u.String()
}

// withCacheBuster appends a unique query parameter so intermediate caches
// cannot serve a stale or error payload for the final attempt.
func withCacheBuster(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("cb", uuid.NewString())
	u.RawQuery = q.Encode()
	return u.String()
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
