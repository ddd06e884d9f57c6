// Package statdto holds the wire types shared by the stats service and its
// client. Timestamps travel as "2006-01-02 15:04:05" local time with no zone;
// the format is part of the protocol and must not change.
package statdto

import (
	"fmt"
	"strings"
	"time"
)

const TimeLayout = "2006-01-02 15:04:05"

// WireTime serializes as TimeLayout in JSON.
type WireTime time.Time

func (t WireTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(TimeLayout) + `"`), nil
}

func (t *WireTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*t = WireTime(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parse stats timestamp %q: %w", s, err)
	}
	*t = WireTime(parsed)
	return nil
}

func (t WireTime) Time() time.Time { return time.Time(t) }

// EndpointHit is one recorded page view.
type EndpointHit struct {
	App       string   `json:"app"`
	URI       string   `json:"uri"`
	IP        string   `json:"ip"`
	Timestamp WireTime `json:"timestamp"`
}

// ViewStats is one row of the aggregated answer.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
