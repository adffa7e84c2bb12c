package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/epochwf/plugin/epoch"
)

func TestNewEpochData(t *testing.T) {
	data := NewEpochData(1733900000.5, time.UTC)

	assert.Equal(t, "1733900000", data.EpochS.String())
	assert.Equal(t, "1733900000500", data.EpochMs.String())
	assert.Equal(t, "1733900000500000", data.EpochUs.String())
	assert.Equal(t, "1733900000500000000", data.EpochNs.String())
	assert.Equal(t, "2024-12-11 06:53:20", data.UTC.Format("2006-01-02 15:04:05"))
}

func TestNewEpochData_TruncatesTowardZero(t *testing.T) {
	data := NewEpochData(-1.5, time.UTC)
	assert.Equal(t, "-1", data.EpochS.String())
	assert.Equal(t, "-1500", data.EpochMs.String())
}

func TestNewEpochData_NanosecondsBeyondInt64(t *testing.T) {
	data := NewEpochData(253402300799, time.UTC)
	assert.Equal(t, "253402300799000000000", data.EpochNs.String())
}

func TestEpochData_ISO8601(t *testing.T) {
	cst := time.FixedZone("CST", 8*3600)

	assert.Equal(t, "2024-12-11T14:53:20+08:00", NewEpochData(1733900000, cst).ISO8601())
	assert.Equal(t, "2024-12-11T06:53:20.500000+00:00", NewEpochData(1733900000.5, time.UTC).ISO8601())
}

func TestEpochData_FromEpoch(t *testing.T) {
	cst := time.FixedZone("CST", 8*3600)
	items := NewEpochData(1733900000, cst).FromEpoch(false)
	require.Len(t, items, 7)

	assert.Equal(t, Item{Title: "2024-12-11 14:53:20 CST", Subtitle: "Local time (Wed)", Arg: "2024-12-11 14:53:20 CST"}, items[0])
	assert.Equal(t, "2024-12-11 06:53:20 UTC", items[1].Title)
	assert.Equal(t, "UTC time (Wed)", items[1].Subtitle)
	assert.Equal(t, "ISO 8601 format", items[2].Subtitle)
	assert.Equal(t, "1733900000000", items[3].Title)
	assert.Equal(t, "Milliseconds", items[3].Subtitle)
	assert.Equal(t, "1733900000", items[4].Title)
	assert.Equal(t, "Seconds", items[4].Subtitle)
	assert.Equal(t, "Microseconds", items[5].Subtitle)
	assert.Equal(t, "Nanoseconds", items[6].Subtitle)
}

func TestEpochData_FromEpochNow(t *testing.T) {
	items := NewEpochData(1733900000, time.UTC).FromEpoch(true)
	require.Len(t, items, 7)
	assert.Equal(t, "Local time (Wed)", items[0].Subtitle)
	assert.Equal(t, "Milliseconds (Now)", items[3].Subtitle)
	assert.Equal(t, "Nanoseconds (Now)", items[6].Subtitle)
}

func TestEpochData_FromDate(t *testing.T) {
	items := NewEpochData(1733900000, time.UTC).FromDate()
	require.Len(t, items, 7)

	subtitles := make([]string, 0, len(items))
	for _, it := range items {
		subtitles = append(subtitles, it.Subtitle)
		assert.Equal(t, it.Title, it.Arg)
	}
	assert.Equal(t, []string{
		"Milliseconds",
		"Seconds",
		"Microseconds",
		"Nanoseconds",
		"Local time (Wed)",
		"UTC time (Wed)",
		"ISO 8601 format",
	}, subtitles)
}

func TestRender(t *testing.T) {
	assert.Nil(t, Render(nil, time.UTC))

	fromDate := Render(&epoch.Resolution{Timestamp: 1733900000, Base: epoch.BaseCalendar}, time.UTC)
	require.Len(t, fromDate, 7)
	assert.Equal(t, "Milliseconds", fromDate[0].Subtitle)

	fromNow := Render(&epoch.Resolution{Timestamp: 1733900000, IsEpochInput: true, RepresentsNow: true}, time.UTC)
	require.Len(t, fromNow, 7)
	assert.Equal(t, "Local time (Wed)", fromNow[0].Subtitle)
	assert.Equal(t, "Seconds (Now)", fromNow[4].Subtitle)
}
