package epoch

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// offsetPattern matches one signed offset token, e.g. "+2h", "- 1 day".
	offsetPattern = regexp.MustCompile(`(?i)([+\-])\s*(\d+)\s*(\w+)`)
	// offsetStartPattern finds where the offset chain begins: a token at the
	// start of the query or right after whitespace.
	offsetStartPattern = regexp.MustCompile(`(?i)(^|\s)[+\-]\s*\d+\s*\w+`)
)

// Unit is the normalized unit of an offset token.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// unitAliases maps lower-cased unit words to units. "M" lower-cases to "m"
// and therefore means minutes.
var unitAliases = map[string]Unit{
	"s":       UnitSecond,
	"sec":     UnitSecond,
	"second":  UnitSecond,
	"seconds": UnitSecond,
	"m":       UnitMinute,
	"min":     UnitMinute,
	"minute":  UnitMinute,
	"minutes": UnitMinute,
	"h":       UnitHour,
	"hour":    UnitHour,
	"hours":   UnitHour,
	"d":       UnitDay,
	"day":     UnitDay,
	"days":    UnitDay,
	"w":       UnitWeek,
	"week":    UnitWeek,
	"weeks":   UnitWeek,
	"month":   UnitMonth,
	"months":  UnitMonth,
	"y":       UnitYear,
	"year":    UnitYear,
	"years":   UnitYear,
}

// Seconds returns the fixed length of one unit. Months and years are
// 30 and 365 days; no calendar arithmetic is applied.
func (u Unit) Seconds() int64 {
	switch u {
	case UnitSecond:
		return 1
	case UnitMinute:
		return 60
	case UnitHour:
		return 3600
	case UnitDay:
		return 86400
	case UnitWeek:
		return 7 * 86400
	case UnitMonth:
		return 30 * 86400
	case UnitYear:
		return 365 * 86400
	default:
		return 0
	}
}

func (u Unit) String() string {
	switch u {
	case UnitSecond:
		return "seconds"
	case UnitMinute:
		return "minutes"
	case UnitHour:
		return "hours"
	case UnitDay:
		return "days"
	case UnitWeek:
		return "weeks"
	case UnitMonth:
		return "months"
	case UnitYear:
		return "years"
	default:
		return "unknown"
	}
}

// LookupUnit normalizes a unit word. The lookup is case-insensitive.
func LookupUnit(word string) (Unit, bool) {
	u, ok := unitAliases[strings.ToLower(word)]
	return u, ok
}

// Offset is one signed token of an offset chain.
type Offset struct {
	Sign      int // +1 or -1
	Magnitude int64
	Unit      Unit
	Raw       string
}

// Seconds returns the signed contribution of the offset.
func (o Offset) Seconds() int64 {
	return int64(o.Sign) * o.Magnitude * o.Unit.Seconds()
}

// OffsetChain is the ordered list of offsets found in a query.
type OffsetChain []Offset

// Seconds returns the total duration of the chain in seconds.
func (c OffsetChain) Seconds() int64 {
	var total int64
	for _, o := range c {
		total = saturatingAdd(total, o.Seconds())
	}
	return total
}

// Duration returns the total as a time.Duration, clamped to its range.
func (c OffsetChain) Duration() time.Duration {
	secs := c.Seconds()
	maxSecs := int64(math.MaxInt64 / int64(time.Second))
	switch {
	case secs > maxSecs:
		return time.Duration(math.MaxInt64)
	case secs < -maxSecs:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(secs) * time.Second
}

// ParseOffsets scans the whole query for offset tokens. Tokens with an unknown
// unit, or a magnitude too large to express in seconds, are skipped.
func ParseOffsets(query string) OffsetChain {
	matches := offsetPattern.FindAllStringSubmatch(query, -1)
	chain := make(OffsetChain, 0, len(matches))
	for _, m := range matches {
		unit, ok := LookupUnit(m[3])
		if !ok {
			continue
		}
		magnitude, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || magnitude > math.MaxInt64/unit.Seconds() {
			continue
		}
		sign := 1
		if m[1] == "-" {
			sign = -1
		}
		chain = append(chain, Offset{
			Sign:      sign,
			Magnitude: magnitude,
			Unit:      unit,
			Raw:       m[0],
		})
	}
	return chain
}

// OffsetStart returns the byte index where the offset chain begins, or false
// when the query holds no offset token at a word boundary.
func OffsetStart(query string) (int, bool) {
	loc := offsetStartPattern.FindStringIndex(query)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}
