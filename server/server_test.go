package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/epochwf/internal/profile"
	"github.com/hrygo/epochwf/plugin/epoch"
)

func TestNewServer(t *testing.T) {
	p := &profile.Profile{Mode: "dev", Timezone: "UTC"}
	require.NoError(t, p.Validate())

	s, err := NewServer(context.Background(), p, epoch.NewService("UTC"), nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"history":false`)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resolve?q=0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1970-01-01 00:00:00 UTC")
}

func TestNewServer_NilService(t *testing.T) {
	_, err := NewServer(context.Background(), &profile.Profile{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestServer_StartShutdown(t *testing.T) {
	p := &profile.Profile{Mode: "dev", Addr: "127.0.0.1", Port: 0}
	require.NoError(t, p.Validate())
	s, err := NewServer(context.Background(), p, epoch.NewService("UTC"), nil, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool { return s.echoServer.ListenerAddr() != nil }, testTimeout, testTick)
	s.Shutdown(context.Background())
	assert.NoError(t, <-done)
}

const (
	testTimeout = 5 * time.Second
	testTick    = 10 * time.Millisecond
)
