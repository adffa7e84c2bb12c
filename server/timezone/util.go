// Package timezone resolves the location queries are interpreted in.
//
// The process works in a single location: the host's local timezone unless
// an IANA name is configured. Queries themselves never carry zone names.
package timezone

import (
	"fmt"
	"time"
)

const (
	// NameLocal selects the host's local timezone.
	NameLocal = "Local"
	// NameUTC selects UTC.
	NameUTC = "UTC"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// An empty name or "Local" selects the host timezone. If the name is invalid,
// returns time.Local and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	switch tz {
	case "", NameLocal:
		return time.Local, nil
	case NameUTC:
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// Name returns the configured name of loc, using "Local" for the host zone.
func Name(loc *time.Location) string {
	if loc == nil || loc == time.Local {
		return NameLocal
	}
	return loc.String()
}

// OffsetString formats the UTC offset in effect at t, e.g. "UTC+08:00".
func OffsetString(t time.Time) string {
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, offset%3600/60)
}

// Describe returns "<name> (<abbrev>, UTC±hh:mm)" for loc at instant t.
func Describe(loc *time.Location, t time.Time) string {
	if loc == nil {
		loc = time.Local
	}
	in := t.In(loc)
	abbrev, _ := in.Zone()
	return fmt.Sprintf("%s (%s, %s)", Name(loc), abbrev, OffsetString(in))
}
