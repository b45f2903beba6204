package resource

import (
	"strings"
	"time"
)

// Record is a raw backend record. Values are JSON-shaped: string, bool,
// float64 or nil.
type Record map[string]any

// String returns a string field, or "" when absent or differently typed.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Bool returns a bool field, or false when absent.
func (r Record) Bool(field string) bool {
	b, _ := r[field].(bool)
	return b
}

// Int returns a numeric field as int, accepting the float64 produced by
// JSON decoding.
func (r Record) Int(field string) int {
	switch v := r[field].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Time parses an RFC3339 field. A missing or malformed value yields the
// zero time.
func (r Record) Time(field string) time.Time {
	t, _ := time.Parse(time.RFC3339, r.String(field))
	return t
}

// List splits a comma-joined field into its non-empty elements. The backend
// stores multi-value fields (likes, hashtags) this way.
func (r Record) List(field string) []string {
	raw := r.String(field)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList formats values for a comma-joined multi-value field.
func JoinList(values []string) string {
	return strings.Join(values, ",")
}

// Clone returns a deep copy at the top level. Record values are scalars, so
// a shallow value copy is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
