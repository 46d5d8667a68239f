package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// dateLayouts are tried in order when parsing date cells.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// parseFloat coerces a numeric string, tolerating a decimal comma.
// Empty cells return (0, false).
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floatPtr returns a pointer to the parsed value, or nil for empty or
// unparseable cells.
func floatPtr(s string) *float64 {
	v, ok := parseFloat(s)
	if !ok {
		return nil
	}
	return &v
}

// floatOr returns the parsed value or the given default.
func floatOr(s string, def float64) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return def
	}
	return v
}

// intOr returns the parsed integer or the given default.
func intOr(s string, def int) int {
	v, ok := parseFloat(s)
	if !ok {
		return def
	}
	return int(v)
}

// parseBool accepts the truthy spellings seen in supplier files.
// Empty cells return the default.
func parseBool(s string, def bool) bool {
	switch strings.ToLower(s) {
	case "":
		return def
	case "true", "1", "yes", "si", "sí", "active", "activo":
		return true
	default:
		return false
	}
}

// parseDate tries the known layouts in order.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("ingest: unparseable date %q", s)
}

// parseDatePtr returns nil for empty cells (an order not yet delivered,
// an invoice not yet paid) and an error only for non-empty garbage.
func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// splitList parses a comma-separated cell into trimmed non-empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
