package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/epochwf/internal/profile"
	"github.com/hrygo/epochwf/plugin/epoch"
	apiv1 "github.com/hrygo/epochwf/server/router/api/v1"
	"github.com/hrygo/epochwf/server/service/history"
	"github.com/hrygo/epochwf/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer wires the HTTP API. s may be nil when history is disabled.
func NewServer(_ context.Context, profile *profile.Profile, timestampService epoch.TimestampService, s *store.Store, logger *slog.Logger) (*Server, error) {
	if timestampService == nil {
		return nil, errors.New("timestamp service is nil")
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Server.ReadHeaderTimeout = 10 * time.Second

	apiService := apiv1.NewAPIV1Service(profile, timestampService, history.NewRecorder(s), logger)
	echoServer.HTTPErrorHandler = apiv1.HTTPErrorHandler(echoServer)
	apiService.RegisterRoutes(echoServer)

	return &Server{
		Profile:    profile,
		Store:      s,
		echoServer: echoServer,
		apiService: apiService,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("start HTTP server", slog.String("address", address))
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start HTTP server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("server shutting down")
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			slog.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
	slog.Info("server stopped properly")
}
