package sparkapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// zonelessLayouts are read in local time; date-only values are UTC.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp reads the formats the backend has been seen to send: RFC3339,
// RFC3339 without a zone, a bare date and epoch milliseconds. A value it
// cannot read decodes to the zero time with Raw holding the original text,
// so one bad field never fails the document it arrived in.
type Timestamp struct {
	time.Time
	Raw string
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] != '"' {
		ms, err := strconv.ParseFloat(string(b), 64)
		if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
			t.Raw = string(b)
			return nil
		}
		t.Time = time.UnixMilli(int64(ms)).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Raw = string(b)
		return nil
	}
	if parsed, ok := ParseTime(s); ok {
		t.Time = parsed
	} else if s != "" {
		t.Raw = s
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.Time.MarshalJSON()
}

// Invalid reports a value that was present but could not be read.
func (t Timestamp) Invalid() bool { return t.Raw != "" }

// Ptr returns nil for a zero timestamp.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// ParseTime parses a timestamp string in any of the accepted layouts.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, true
	}
	for _, layout := range zonelessLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, true
		}
	}
	if ts, err := time.Parse(time.DateOnly, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
