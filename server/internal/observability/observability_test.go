package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reqCtx := NewRequestContextWithID(logger, "req-1", "/api/v1/resolve", "10.0.0.1")
	reqCtx.Info("resolved", slog.String(LogFieldQuery, "-1d"))
	reqCtx.Error("failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "route=/api/v1/resolve")
	assert.Contains(t, out, "client=10.0.0.1")
	assert.Contains(t, out, "query=-1d")
	assert.Contains(t, out, "error=boom")
}

func TestRequestContext_GeneratedID(t *testing.T) {
	a := NewRequestContext(nil, "/healthz", "")
	b := NewRequestContext(nil, "/healthz", "")
	assert.Len(t, a.RequestID, 36)
	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.GreaterOrEqual(t, a.DurationMs(), int64(0))
}

func TestRequestContext_FromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	reqCtx := NewRequestContext(nil, "/", "")
	got, ok := FromContext(WithRequestContext(context.Background(), reqCtx))
	require.True(t, ok)
	assert.Same(t, reqCtx, got)
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics(10)
	for i := 1; i <= 20; i++ {
		m.RecordRequest(time.Duration(i)*time.Millisecond, i%4 == 0)
	}
	m.RecordResolution("epoch")
	m.RecordResolution("epoch")
	m.RecordResolution("calendar")
	m.RecordFailure("UNRECOGNIZED_DATE_FORMAT")
	m.RecordRateLimited()

	s := m.Snapshot()
	assert.Equal(t, int64(20), s.RequestTotal)
	assert.Equal(t, int64(5), s.RequestFailed)
	assert.Equal(t, int64(1), s.RateLimited)
	assert.Equal(t, map[string]int64{"epoch": 2, "calendar": 1}, s.Resolutions)
	assert.Equal(t, map[string]int64{"UNRECOGNIZED_DATE_FORMAT": 1}, s.Failures)
	// Only the last 10 samples (11ms..20ms) are kept.
	assert.Equal(t, 10, s.DurationCount)
	assert.Equal(t, int64(15), s.AvgLatencyMs)
	assert.Equal(t, int64(15), s.P50LatencyMs)
	assert.Equal(t, int64(20), s.P95LatencyMs)
	assert.InDelta(t, 75.0, s.SuccessRate(), 1e-9)

	m.Reset()
	s = m.Snapshot()
	assert.Zero(t, s.RequestTotal)
	assert.Empty(t, s.Resolutions)
	assert.Equal(t, 100.0, s.SuccessRate())
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordResolution("now")
			m.RecordRequest(time.Millisecond, false)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), m.Snapshot().Resolutions["now"])
	assert.Equal(t, int64(50), m.Snapshot().RequestTotal)
}
