package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// Params is the flat string-keyed parameter mapping delivered by the
// request boundary.
type Params map[string]string

// has reports whether the key is present with a non-blank value.
func (p Params) has(key string) bool {
	v, ok := p[key]
	return ok && strings.TrimSpace(v) != ""
}

// FieldValue names one invalid parameter with its offending value.
type FieldValue struct {
	Field  string
	Value  string
	Reason string
}

// ParamError is the structured bad-request description: every missing key
// and every invalid value, never short-circuited on the first.
type ParamError struct {
	Missing []string
	Invalid []FieldValue
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing parameters: "+strings.Join(e.Missing, ", "))
	}
	for _, f := range e.Invalid {
		parts = append(parts, fmt.Sprintf("%s: %s (got %q)", f.Field, f.Reason, f.Value))
	}
	return strings.Join(parts, "; ")
}

// err returns the collected ParamError, or nil when nothing was recorded.
func (e *ParamError) err() error {
	if len(e.Missing) == 0 && len(e.Invalid) == 0 {
		return nil
	}
	return e
}

// intField parses a bounded integer parameter, recording a violation on
// parse failure or range breach and returning 0 in that case.
func (e *ParamError) intField(field, raw string, min, max int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		e.Invalid = append(e.Invalid, FieldValue{field, raw, "must be an integer"})
		return 0
	}
	if v < min || v > max {
		e.Invalid = append(e.Invalid, FieldValue{field, raw, fmt.Sprintf("must be %d-%d", min, max)})
		return 0
	}
	return v
}

// moveList splits a comma-delimited move parameter into a trimmed sequence,
// dropping empty segments.
func moveList(raw string) []string {
	var out []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
