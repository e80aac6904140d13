package creator

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row returned by a report. Values keep the platform's JSON
// shapes: strings, booleans, and nested objects for lookups, names and
// addresses.
type Record map[string]any

// Fields is the "data" object sent on add and update.
type Fields map[string]any

func (r Record) ID() string {
	return r.String("ID")
}

// String renders scalar values as text and returns display_value for
// nested objects.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any:
		if dv, ok := val["display_value"].(string); ok {
			return dv
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// Bool accepts both JSON booleans and the "true"/"false" strings decision
// boxes come back as.
func (r Record) Bool(key string) bool {
	switch val := r[key].(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(val))
		return b
	default:
		return false
	}
}

// Map returns a nested object field or nil.
func (r Record) Map(key string) map[string]any {
	m, _ := r[key].(map[string]any)
	return m
}

// Lookup returns the referenced record id and display value. A bare string
// is taken as the id.
func (r Record) Lookup(key string) (id, display string) {
	switch val := r[key].(type) {
	case map[string]any:
		id, _ = val["ID"].(string)
		display, _ = val["display_value"].(string)
	case string:
		id = val
	}
	return id, display
}

// Sub reads a string key of a nested object, e.g. Sub("Name", "first_name").
func (r Record) Sub(key, sub string) string {
	m := r.Map(key)
	if m == nil {
		return ""
	}
	s, _ := m[sub].(string)
	return s
}
