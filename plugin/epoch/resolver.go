package epoch

import (
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// BaseKind classifies where the base value of a query came from.
type BaseKind int

const (
	// BaseNow means the base text was empty and the current time was used.
	BaseNow BaseKind = iota
	// BaseEpoch means the base text was an epoch numeral.
	BaseEpoch
	// BaseCalendar means the base text was a calendar date.
	BaseCalendar
)

func (k BaseKind) String() string {
	switch k {
	case BaseEpoch:
		return "epoch"
	case BaseCalendar:
		return "calendar"
	default:
		return "now"
	}
}

// Resolution is the result of resolving one query.
type Resolution struct {
	Query string
	// Timestamp is seconds since the Unix epoch, offsets included.
	Timestamp     float64
	IsEpochInput  bool
	RepresentsNow bool
	Base          BaseKind
	// EpochUnit is only meaningful when Base is BaseEpoch.
	EpochUnit EpochUnit
	Offsets   OffsetChain
}

// Time converts the timestamp to a time.Time in loc.
func (r *Resolution) Time(loc *time.Location) time.Time {
	return FloatToTime(r.Timestamp).In(loc)
}

// Resolver turns a query into a Resolution.
type Resolver struct {
	clock    clockwork.Clock
	calendar *CalendarParser
}

// NewResolver creates a resolver reading the current time from clock and
// anchoring calendar dates to loc. Nil arguments fall back to the real clock
// and time.Local.
func NewResolver(clock clockwork.Clock, loc *time.Location) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{
		clock:    clock,
		calendar: NewCalendarParser(clock, loc),
	}
}

// Location returns the location calendar dates are anchored to.
func (r *Resolver) Location() *time.Location {
	return r.calendar.Location()
}

// Resolve splits the query into base text and offset chain, resolves the base
// and applies the offsets. A base that cannot be resolved fails the whole
// query; offsets are never applied to a fallback.
func (r *Resolver) Resolve(query string) (*Resolution, error) {
	if query == "" {
		return r.now(query, nil), nil
	}

	base := query
	var offsets OffsetChain
	if start, ok := OffsetStart(query); ok {
		base = query[:start]
		offsets = ParseOffsets(query)
	}
	base = strings.TrimSpace(base)

	var res *Resolution
	switch {
	case base == "":
		res = r.now(query, offsets)
	case isDigits(base):
		seconds, unit, err := InterpretEpoch(base)
		if err != nil {
			return nil, err
		}
		res = &Resolution{
			Query:        query,
			Timestamp:    seconds,
			IsEpochInput: true,
			Base:         BaseEpoch,
			EpochUnit:    unit,
			Offsets:      offsets,
		}
	default:
		t, err := r.calendar.Parse(base)
		if err != nil {
			return nil, err
		}
		res = &Resolution{
			Query:     query,
			Timestamp: TimeToFloat(t),
			Base:      BaseCalendar,
			Offsets:   offsets,
		}
	}

	res.Timestamp += float64(offsets.Seconds())
	if !Representable(res.Timestamp) {
		return nil, newResolveError(CodeEmptyResult, query, errors.Errorf("timestamp %g is outside years 1-9999", res.Timestamp))
	}
	return res, nil
}

func (r *Resolver) now(query string, offsets OffsetChain) *Resolution {
	return &Resolution{
		Query:         query,
		Timestamp:     TimeToFloat(r.clock.Now()),
		IsEpochInput:  true,
		RepresentsNow: true,
		Base:          BaseNow,
		Offsets:       offsets,
	}
}

// Bounds of the timestamps that render as four-digit years.
const (
	minTimestamp = -62135596800 // 0001-01-01T00:00:00Z
	maxTimestamp = 253402300799 // 9999-12-31T23:59:59Z
)

// Representable reports whether ts is finite and falls within years 1-9999.
func Representable(ts float64) bool {
	return !math.IsNaN(ts) && ts >= minTimestamp && ts <= maxTimestamp
}

// TimeToFloat returns t as fractional seconds since the Unix epoch.
func TimeToFloat(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// FloatToTime is the inverse of TimeToFloat, rounded to the nanosecond.
func FloatToTime(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	nsec := math.Round(frac * 1e9)
	return time.Unix(int64(sec), int64(nsec))
}
