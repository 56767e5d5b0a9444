package types

import (
	"fmt"
	"strings"
	"time"
)

// isoLayouts are tried in order after the trailing Z has been removed.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02",
}

// ParseISOTime parses a server timestamp such as "2023-10-31T12:34:56.789Z".
// The trailing Z is stripped before parsing and the result is in UTC.
func ParseISOTime(s string) (time.Time, error) {
	trimmed := strings.TrimSuffix(s, "Z")
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp, want YYYY-MM-DDTHH:MM:SS.sssZ")
}

// FormatISOTime renders t in UTC the way the Lapse apps do: ISO-8601 with
// microseconds, truncated by three characters, plus a literal Z.
//
// With a non-zero sub-second part this gives millisecond precision
// ("2024-01-01T12:00:00.123Z"). With zero microseconds the seconds field is
// dropped ("2024-01-01T12:00Z"); the server accepts both.
func FormatISOTime(t time.Time) string {
	t = t.UTC()
	micros := t.Nanosecond() / int(time.Microsecond)
	if micros == 0 {
		return t.Format("2006-01-02T15:04") + "Z"
	}
	return fmt.Sprintf("%s.%03dZ", t.Format("2006-01-02T15:04:05"), micros/1000)
}
