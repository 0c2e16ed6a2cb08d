// internal/models/record.go
package models

import "strings"

// Record is one row or object of arbitrary shape coming from an external
// system: a species table row, a search hit, or a classifier candidate.
type Record map[string]interface{}

// FirstString returns the first key, in the given order, whose value is a
// string that is non-empty after trimming. The trimmed value is returned.
func (r Record) FirstString(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

// FirstPresent returns the value of the first key, in the given order,
// that exists with a non-nil value.
func (r Record) FirstPresent(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// AsRecord converts a decoded JSON value to a Record when it is an object.
func AsRecord(v interface{}) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]interface{}:
		return Record(m), true
	default:
		return nil, false
	}
}
