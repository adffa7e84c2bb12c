package epoch

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-15 12:00:00 UTC
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	return NewResolver(clockwork.NewFakeClockAt(fixedNow), time.UTC)
}

func TestResolver_Scenarios(t *testing.T) {
	resolver := newTestResolver()

	tests := []struct {
		name          string
		query         string
		wantDate      string
		wantEpoch     bool
		wantNow       bool
		wantBase      BaseKind
		wantTimestamp float64 // checked when non-zero
	}{
		{"dash date", "2025-12-01", "2025-12-01", false, false, BaseCalendar, 1764547200},
		{"year-less date", "12/25", "2025-12-25", false, false, BaseCalendar, 0},
		{"seconds", "1733900000", "2024-12-11", true, false, BaseEpoch, 1733900000},
		{"milliseconds", "1733900000000", "2024-12-11", true, false, BaseEpoch, 1733900000},
		{"offset chain", "2025-12-01 -1d +4d - 1y + 20w", "2025-04-23", false, false, BaseCalendar, 0},
		{"empty", "", "2025-06-15", true, true, BaseNow, 1749988800},
		{"whitespace only", "   ", "2025-06-15", true, true, BaseNow, 1749988800},
		{"offsets from now", "+2 hours", "2025-06-15", true, true, BaseNow, 1749988800 + 7200},
		{"epoch with offset", "1733900000 +1h", "2024-12-11", true, false, BaseEpoch, 1733903600},
		{"datetime with offset", "2025-12-01 10:00 -30m", "2025-12-01", false, false, BaseCalendar, 1764547200 + 9*3600 + 30*60},
		{"unknown offset unit ignored", "2025-12-01 +3 parsecs", "2025-12-01", false, false, BaseCalendar, 1764547200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolver.Resolve(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, res.Time(time.UTC).Format("2006-01-02"))
			assert.Equal(t, tt.wantEpoch, res.IsEpochInput)
			assert.Equal(t, tt.wantNow, res.RepresentsNow)
			assert.Equal(t, tt.wantBase, res.Base)
			assert.Equal(t, tt.query, res.Query)
			if tt.wantTimestamp != 0 {
				assert.InDelta(t, tt.wantTimestamp, res.Timestamp, 1e-6)
			}
		})
	}
}

func TestResolver_Failures(t *testing.T) {
	resolver := newTestResolver()

	tests := []struct {
		name     string
		query    string
		wantCode ErrorCode
	}{
		{"not a date", "not-a-date", CodeUnrecognizedDateFormat},
		{"bad date with valid offsets", "2025-13-45 +1d", CodeUnrecognizedDateFormat},
		{"words before offset", "tomorrow +1h", CodeUnrecognizedDateFormat},
		{"offset beyond year 9999", "+9000 years", CodeEmptyResult},
		{"epoch beyond year 9999", "99999999999 +5000 years", CodeEmptyResult},
		{"epoch overflowing float64", "9" + strings.Repeat("9", 400), CodeNumericOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolver.Resolve(tt.query)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.wantCode, CodeOf(err))
		})
	}
}

func TestResolver_OffsetsRecorded(t *testing.T) {
	res, err := newTestResolver().Resolve("1733900000 +1h -2m")
	require.NoError(t, err)
	require.Len(t, res.Offsets, 2)
	assert.Equal(t, UnitSeconds, res.EpochUnit)
	assert.Equal(t, int64(3600-120), res.Offsets.Seconds())
}

func TestResolver_EpochUnitReported(t *testing.T) {
	res, err := newTestResolver().Resolve("1733900000123456")
	require.NoError(t, err)
	assert.Equal(t, UnitMicroseconds, res.EpochUnit)
	assert.InDelta(t, 1733900000.123456, res.Timestamp, 1e-6)
}

// Every non-empty base lands in exactly one branch: digits, calendar, or failure.
func TestResolver_BaseClassificationIsTotal(t *testing.T) {
	resolver := newTestResolver()

	inputs := map[string]BaseKind{
		"0":          BaseEpoch,
		"42":         BaseEpoch,
		"2025/01/01": BaseCalendar,
		"1 2":        BaseCalendar,
	}
	for input, want := range inputs {
		res, err := resolver.Resolve(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, res.Base, input)
		assert.Equal(t, want == BaseEpoch, res.IsEpochInput, input)
		assert.False(t, res.RepresentsNow, input)
	}

	for _, input := range []string{"abc", "12:30", "2025-12-01T00:00:00Z", "1.5"} {
		_, err := resolver.Resolve(input)
		assert.Error(t, err, input)
	}
}

func TestResolver_CalendarInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	resolver := NewResolver(clockwork.NewFakeClockAt(fixedNow), loc)

	res, err := resolver.Resolve("2025-12-01")
	require.NoError(t, err)
	assert.InDelta(t, 1764547200-8*3600, res.Timestamp, 1e-6)
	assert.Equal(t, "2025-12-01 00:00:00", res.Time(loc).Format("2006-01-02 15:04:05"))
	assert.Equal(t, loc, resolver.Location())
}

func TestFloatToTime(t *testing.T) {
	ts := TimeToFloat(time.Date(2025, 12, 1, 10, 30, 0, 500000000, time.UTC))
	assert.InDelta(t, 1764585000.5, ts, 1e-9)

	back := FloatToTime(ts).UTC()
	assert.Equal(t, "2025-12-01 10:30:00.500", back.Format("2006-01-02 15:04:05.000"))
}

func TestRepresentable(t *testing.T) {
	assert.True(t, Representable(0))
	assert.True(t, Representable(253402300799))
	assert.False(t, Representable(253402300800))
	assert.False(t, Representable(-62135596801))
}
