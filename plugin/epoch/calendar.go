package epoch

import (
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// Layouts with an explicit year, in priority order. Single-digit month, day
// and hour fields are accepted; a fractional second may follow the seconds
// field of any layout that has one.
var yearLayouts = []string{
	"2006-1-2 15:4:5.999999999",
	"2006-1-2 15:4:5",
	"2006-1-2 15:4",
	"2006-1-2",
	"2006/1/2 15:4:5.999999999",
	"2006/1/2 15:4:5",
	"2006/1/2 15:4",
	"2006/1/2",
	"2006 1 2 15:4:5",
	"2006 1 2",
}

// Layouts without a year. They are only tried after every year layout failed.
var monthDayLayouts = []string{
	"1/2",
	"1 2",
}

// dateAttempt tries one template. It reports false to let the next one run.
type dateAttempt func(text string) (time.Time, bool)

// CalendarParser parses calendar dates in a fixed location.
type CalendarParser struct {
	clock    clockwork.Clock
	location *time.Location
	attempts []dateAttempt
}

// NewCalendarParser creates a parser anchored to loc. A nil clock uses the
// real clock and a nil location uses time.Local.
func NewCalendarParser(clock clockwork.Clock, loc *time.Location) *CalendarParser {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	p := &CalendarParser{clock: clock, location: loc}
	for _, layout := range yearLayouts {
		p.attempts = append(p.attempts, p.withYear(layout))
	}
	for _, layout := range monthDayLayouts {
		p.attempts = append(p.attempts, p.withoutYear(layout))
	}
	return p
}

// Location returns the location parsed dates are anchored to.
func (p *CalendarParser) Location() *time.Location {
	return p.location
}

// Parse returns the first template match for text.
func (p *CalendarParser) Parse(text string) (time.Time, error) {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return time.Time{}, newResolveError(CodeUnrecognizedDateFormat, text, errors.New("empty date"))
	}
	for _, attempt := range p.attempts {
		if t, ok := attempt(normalized); ok {
			return t, nil
		}
	}
	return time.Time{}, newResolveError(CodeUnrecognizedDateFormat, text, nil)
}

func (p *CalendarParser) withYear(layout string) dateAttempt {
	return func(text string) (time.Time, bool) {
		t, err := time.ParseInLocation(layout, text, p.location)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

// withoutYear fills in the current year. A month/day that does not exist in
// that year, such as Feb 29 in a common year, does not match.
func (p *CalendarParser) withoutYear(layout string) dateAttempt {
	return func(text string) (time.Time, bool) {
		md, err := time.ParseInLocation(layout, text, p.location)
		if err != nil {
			return time.Time{}, false
		}
		year := p.clock.Now().In(p.location).Year()
		t := time.Date(year, md.Month(), md.Day(), 0, 0, 0, 0, p.location)
		if t.Month() != md.Month() || t.Day() != md.Day() {
			return time.Time{}, false
		}
		return t, true
	}
}
