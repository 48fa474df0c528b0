package normalize

import (
	"time"
)

// Helpers for walking loosely-typed JSON documents. All of them tolerate
// missing keys and wrong types by returning zero values; callers decide
// whether absence is an error.

func getMap(raw map[string]any, key string) map[string]any {
	m, _ := raw[key].(map[string]any)
	return m
}

func getSlice(raw map[string]any, key string) []any {
	s, _ := raw[key].([]any)
	return s
}

func getString(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func getBool(raw map[string]any, key string) bool {
	b, _ := raw[key].(bool)
	return b
}

// getFloat reads a numeric value. JSON decoding yields float64, but int is
// accepted for documents built in code.
func getFloat(raw map[string]any, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func getInt(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// firstMap returns the first element of a []any as a map, or nil.
func firstMap(s []any) map[string]any {
	if len(s) == 0 {
		return nil
	}
	m, _ := s[0].(map[string]any)
	return m
}

// asMap converts a slice element to a map, or nil.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// epoch is the default date of birth when a source format omits it entirely.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// dateLayouts are the accepted wire layouts for date and timestamp fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses an ISO-8601 date or timestamp. A present-but-malformed
// value fails with a ConversionError naming the field.
func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, convErr(field, "unparsable date %q", value)
}

// parseOptionalDate parses a date when present and returns fallback when
// the value is empty. Malformed values still fail.
func parseOptionalDate(field, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return parseDate(field, value)
}
