package clock

import (
	"time"
)

// Clock supplies the current instant and the zone used for display.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// System reads the real time and reports it in Loc.
type System struct {
	Loc *time.Location
}

// NewSystem creates a System clock for the given location (time.Local when nil)
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.Local
	}
	return System{Loc: loc}
}

func (c System) Now() time.Time {
	return time.Now().In(c.Location())
}

func (c System) Location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

// Fixed always reports the same instant.
type Fixed struct {
	At  time.Time
	Loc *time.Location
}

// NewFixed creates a Fixed clock at t, displayed in loc (t's own location when nil)
func NewFixed(t time.Time, loc *time.Location) Fixed {
	if loc == nil {
		loc = t.Location()
	}
	return Fixed{At: t, Loc: loc}
}

func (c Fixed) Now() time.Time {
	return c.At.In(c.Location())
}

func (c Fixed) Location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

// LoadLocation resolves a configured zone name. An empty name means time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrorUnknownTimeZone(name, err)
	}
	return loc, nil
}
