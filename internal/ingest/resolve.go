// Package ingest maps raw tabular rows onto strongly-typed records. Field
// names are resolved through explicit ordered alias lists (English and
// Spanish headers both occur in the wild), values are coerced once at this
// boundary, and documented neutral defaults fill the gaps. Nothing past
// this package ever sees a raw row.
package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fieldIndex maps canonical target field names to column positions.
type fieldIndex map[string]int

// accentFolder strips combining marks so "Categoría" and "categoria"
// resolve to the same column.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// canonicalKey normalizes a header cell: accent-folded, lowercased,
// trimmed, inner spaces collapsed to underscores.
func canonicalKey(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), "_")
}

// resolveHeader matches each target field against the header using its
// ordered candidate keys; the first candidate present in the header wins.
// Missing fields are simply absent from the returned index.
func resolveHeader(header []string, aliases map[string][]string) fieldIndex {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := canonicalKey(h)
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}

	idx := make(fieldIndex, len(aliases))
	for target, candidates := range aliases {
		for _, c := range candidates {
			if i, ok := cols[c]; ok {
				idx[target] = i
				break
			}
		}
	}
	return idx
}

// cell returns the trimmed raw value for a resolved field, or "" when the
// field is unresolved or the row is too short.
func (idx fieldIndex) cell(row []string, field string) string {
	i, ok := idx[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
