package epoch

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Resolve(t *testing.T) {
	svc := NewService("Asia/Shanghai", WithClock(clockwork.NewFakeClockAt(fixedNow)))
	ctx := context.Background()

	t.Run("CalendarInServiceTimezone", func(t *testing.T) {
		res, err := svc.Resolve(ctx, "2025-12-01 08:00")
		require.NoError(t, err)
		assert.Equal(t, "2025-12-01 00:00", res.Time(time.UTC).Format("2006-01-02 15:04"))
		assert.False(t, res.IsEpochInput)
	})

	t.Run("EmptyIsNow", func(t *testing.T) {
		res, err := svc.Resolve(ctx, "")
		require.NoError(t, err)
		assert.True(t, res.RepresentsNow)
		assert.InDelta(t, TimeToFloat(fixedNow), res.Timestamp, 1e-6)
	})

	t.Run("Failure", func(t *testing.T) {
		res, err := svc.Resolve(ctx, "not-a-date")
		require.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestService_Location(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	assert.Equal(t, loc.String(), NewService("Asia/Shanghai").Location().String())
	assert.Equal(t, time.Local, NewService("").Location())
	assert.Equal(t, time.Local, NewService("Local").Location())
}

func TestService_UnknownTimezoneFallsBackToLocal(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	svc := NewService("Mars/Olympus_Mons", WithLogger(logger))
	assert.Equal(t, time.Local, svc.Location())
	assert.Contains(t, buf.String(), "unknown timezone")
}

func TestService_LogsResolution(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewService("UTC", WithClock(clockwork.NewFakeClockAt(fixedNow)), WithLogger(logger))

	_, err := svc.Resolve(context.Background(), "1733900000")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "base=epoch")

	_, err = svc.Resolve(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "code=UNRECOGNIZED_DATE_FORMAT")
}
