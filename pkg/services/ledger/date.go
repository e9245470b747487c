package ledger

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoDate = "2006-01-02"

// fallbackLayouts are tried when dateparse rejects the input.
var fallbackLayouts = []string{
	"2006-1-2",
	"2006-01-02T15:04",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// NormalizeDate parses s as a calendar date and renders it as YYYY-MM-DD
// in UTC. Inputs without a zone are read as UTC. Input that cannot be
// parsed yields "".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.UTC().Format(isoDate)
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(isoDate)
		}
	}
	return ""
}
