// Package display renders a resolved timestamp as labeled, copyable values.
package display

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrygo/epochwf/plugin/epoch"
)

const (
	localLayout = "2006-01-02 15:04:05 MST"
	utcLayout   = "2006-01-02 15:04:05 UTC"
	isoLayout   = "2006-01-02T15:04:05-07:00"
	isoLayoutUs = "2006-01-02T15:04:05.000000-07:00"
)

// Item is one labeled value. Arg is what gets copied; it defaults to Title.
type Item struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Arg      string `json:"arg"`
}

func newItem(title, subtitle string) Item {
	return Item{Title: title, Subtitle: subtitle, Arg: title}
}

// EpochData holds every representation of one timestamp.
type EpochData struct {
	Timestamp float64
	EpochS    decimal.Decimal
	EpochMs   decimal.Decimal
	EpochUs   decimal.Decimal
	EpochNs   decimal.Decimal
	Local     time.Time
	UTC       time.Time
}

// NewEpochData splits ts into its representations. The epoch integers are
// truncated toward zero from the shortest decimal form of ts, so 1.5 seconds
// yields exactly 1500 milliseconds; they are decimals because nanoseconds
// past year 2262 do not fit in an int64. Times are rounded to the microsecond.
func NewEpochData(ts float64, loc *time.Location) EpochData {
	if loc == nil {
		loc = time.Local
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(ts, 'f', -1, 64))
	if err != nil {
		d = decimal.NewFromFloat(ts)
	}
	t := epoch.FloatToTime(ts).Round(time.Microsecond)
	return EpochData{
		Timestamp: ts,
		EpochS:    d.Truncate(0),
		EpochMs:   d.Shift(3).Truncate(0),
		EpochUs:   d.Shift(6).Truncate(0),
		EpochNs:   d.Shift(9).Truncate(0),
		Local:     t.In(loc),
		UTC:       t.UTC(),
	}
}

// ISO8601 formats the local time with its offset. Microseconds are printed
// only when non-zero.
func (e EpochData) ISO8601() string {
	if e.Local.Nanosecond()/1000 != 0 {
		return e.Local.Format(isoLayoutUs)
	}
	return e.Local.Format(isoLayout)
}

func (e EpochData) localItem() Item {
	return newItem(e.Local.Format(localLayout), "Local time ("+e.Local.Format("Mon")+")")
}

func (e EpochData) utcItem() Item {
	return newItem(e.UTC.Format(utcLayout), "UTC time ("+e.UTC.Format("Mon")+")")
}

func (e EpochData) isoItem() Item {
	return newItem(e.ISO8601(), "ISO 8601 format")
}

func (e EpochData) epochItems(suffix string) []Item {
	return []Item{
		newItem(e.EpochMs.String(), "Milliseconds"+suffix),
		newItem(e.EpochS.String(), "Seconds"+suffix),
		newItem(e.EpochUs.String(), "Microseconds"+suffix),
		newItem(e.EpochNs.String(), "Nanoseconds"+suffix),
	}
}

// FromEpoch lists the human-readable forms first, for numeric input.
// showNow marks the epoch values as the current time.
func (e EpochData) FromEpoch(showNow bool) []Item {
	suffix := ""
	if showNow {
		suffix = " (Now)"
	}
	items := []Item{e.localItem(), e.utcItem(), e.isoItem()}
	return append(items, e.epochItems(suffix)...)
}

// FromDate lists the epoch values first, for calendar input.
func (e EpochData) FromDate() []Item {
	items := e.epochItems("")
	return append(items, e.localItem(), e.utcItem(), e.isoItem())
}

// Render returns the display items for a resolution, or nil when res is nil.
func Render(res *epoch.Resolution, loc *time.Location) []Item {
	if res == nil {
		return nil
	}
	data := NewEpochData(res.Timestamp, loc)
	if res.IsEpochInput {
		return data.FromEpoch(res.RepresentsNow)
	}
	return data.FromDate()
}
