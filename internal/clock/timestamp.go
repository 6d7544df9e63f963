package clock

import (
	"strings"
	"time"
)

// Timestamp is a point in time as stored on a record. A Naive timestamp is a
// wall-clock reading with no zone attached; its embedded Time carries the
// reading in UTC. The zero value means the field is unset.
type Timestamp struct {
	time.Time
	Naive bool
}

// naiveLayouts are the zone-less forms accepted by ParseTimestamp.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Aware wraps a zoned time.
func Aware(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// NaiveAt records the wall clock of t, discarding its zone.
func NaiveAt(t time.Time) Timestamp {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return Timestamp{Time: wall, Naive: true}
}

// Resolve returns the instant this timestamp denotes. Naive readings are
// interpreted as wall-clock time in loc.
func (ts Timestamp) Resolve(loc *time.Location) time.Time {
	if !ts.Naive {
		return ts.Time
	}
	if loc == nil {
		loc = time.Local
	}
	t := ts.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// String renders aware timestamps as RFC3339 and naive ones without an offset.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	if ts.Naive {
		return ts.Time.Format("2006-01-02T15:04:05")
	}
	return ts.Time.Format(time.RFC3339)
}

// ParseTimestamp parses an RFC3339 value as aware and the common zone-less
// layouts as naive. Blank input yields the zero Timestamp.
func ParseTimestamp(value string) (Timestamp, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return Timestamp{}, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Aware(t), nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Naive: true}, nil
		}
	}

	return Timestamp{}, ErrorInvalidTimestamp(value)
}

// From coerces template values into a Timestamp. The boolean is false for
// nil, zero or unsupported values.
func From(value any) (Timestamp, bool) {
	var ts Timestamp
	switch v := value.(type) {
	case Timestamp:
		ts = v
	case *Timestamp:
		if v == nil {
			return Timestamp{}, false
		}
		ts = *v
	case time.Time:
		ts = Aware(v)
	case *time.Time:
		if v == nil {
			return Timestamp{}, false
		}
		ts = Aware(*v)
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return Timestamp{}, false
		}
		ts = parsed
	default:
		return Timestamp{}, false
	}

	if ts.IsZero() {
		return Timestamp{}, false
	}
	return ts, true
}
