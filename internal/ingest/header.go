package ingest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader trims a header name, applies Unicode NFC normalization and
// case folding, and collapses inner whitespace to single spaces.
// "  Date &  Time " and "date & time" normalize to the same key.
func NormalizeHeader(h string) string {
	h = norm.NFC.String(h)
	h = strings.Join(strings.Fields(h), " ")
	return cases.Fold().String(h)
}
