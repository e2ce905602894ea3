package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

// timestampLayouts are tried in order. Layouts without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// Timestamp is a request datetime. It accepts ISO 8601 with or without an
// offset, using T or a space between date and time.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err == nil {
		if t, ok := ParseTimestamp(s); ok {
			ts.Time = t
			return nil
		}
	}
	// The decoder fills in the field name for type errors.
	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(Timestamp{})}
}

// TimeOptional converts a presence-aware timestamp into the time.Time form
// used by the update models.
func TimeOptional(o Optional[Timestamp]) Optional[time.Time] {
	return Optional[time.Time]{Value: o.Value.Time, Set: o.Set, Null: o.Null}
}
