package storage

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical TEXT column format for timestamps.
const TimeLayout = time.RFC3339Nano

// FormatTime renders a timestamp for a TEXT column. Zero times become
// the empty string so optional columns stay empty rather than storing
// year-one noise.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseTime reads a TEXT timestamp column, accepting the layouts
// historical rows were written with. Empty strings map to the zero
// time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
