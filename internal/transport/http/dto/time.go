package dto

import (
	"fmt"
	"strings"
	"time"
)

// APITime is the "2006-01-02 15:04:05" timestamp format all event endpoints
// speak, both in bodies and in rangeStart/rangeEnd query params.
const TimeLayout = "2006-01-02 15:04:05"

type APITime time.Time

func (t APITime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(TimeLayout) + `"`), nil
}

func (t *APITime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*t = APITime(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	*t = APITime(parsed)
	return nil
}

func (t APITime) Time() time.Time { return time.Time(t) }

func (t *APITime) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	tt := time.Time(*t)
	return &tt
}

// ParseAPITime parses a query-param timestamp.
func ParseAPITime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}
