package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/epochwf/internal/profile"
	"github.com/hrygo/epochwf/plugin/epoch"
	apierrors "github.com/hrygo/epochwf/server/internal/errors"
	"github.com/hrygo/epochwf/server/internal/observability"
	ratelimit "github.com/hrygo/epochwf/server/middleware"
	"github.com/hrygo/epochwf/server/service/history"
)

type APIV1Service struct {
	Profile          *profile.Profile
	TimestampService epoch.TimestampService
	History          *history.Recorder
	Metrics          *observability.Metrics
	Logger           *slog.Logger

	rateLimiter *ratelimit.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, timestampService epoch.TimestampService, recorder *history.Recorder, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:          profile,
		TimestampService: timestampService,
		History:          recorder,
		Metrics:          observability.NewMetrics(1000),
		Logger:           logger,
		rateLimiter:      ratelimit.NewRateLimiter(profile.RateLimit, profile.RateBurst),
	}
}

// RegisterRoutes mounts the JSON API and the health check on echoServer.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	echoServer.GET("/healthz", s.Healthz)

	api := echoServer.Group("/api/v1",
		middleware.CORS(),
		s.requestContextMiddleware,
		s.rateLimiter.Middleware(s.rateLimited),
	)
	api.GET("/resolve", s.Resolve)
	api.GET("/history", s.ListHistory)
	api.DELETE("/history", s.ClearHistory)
	api.GET("/system/metrics", s.GetMetricsOverview)
}

// requestContextMiddleware attaches a RequestContext and records request metrics.
func (s *APIV1Service) requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqCtx := observability.NewRequestContext(s.Logger, c.Path(), c.RealIP())
		c.SetRequest(c.Request().WithContext(observability.WithRequestContext(c.Request().Context(), reqCtx)))
		c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)

		err := next(c)
		status := c.Response().Status
		if err != nil {
			if apiErr, ok := err.(*apierrors.APIError); ok {
				status = apiErr.HTTPStatus()
			} else {
				status = http.StatusInternalServerError
			}
		}
		s.Metrics.RecordRequest(reqCtx.Duration(), status >= http.StatusBadRequest)
		reqCtx.Debug("request served",
			slog.Int("status", status),
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
		)
		return err
	}
}

func (s *APIV1Service) rateLimited(c echo.Context) error {
	s.Metrics.RecordRateLimited()
	return writeError(c, apierrors.RateLimitExceeded("too many requests"))
}

// HTTPErrorHandler renders APIError values as the JSON error envelope and
// falls back to echo's default handler for everything else.
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if apiErr, ok := err.(*apierrors.APIError); ok {
			if err := c.JSON(apiErr.HTTPStatus(), apiErr); err != nil {
				slog.Error("failed to write error response", slog.String("error", err.Error()))
			}
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func writeError(c echo.Context, apiErr *apierrors.APIError) error {
	if reqCtx, ok := observability.FromContext(c.Request().Context()); ok && apiErr.Code == apierrors.ErrCodeInternal {
		reqCtx.Error("request failed", apiErr, slog.String(observability.LogFieldErrorCode, string(apiErr.Code)))
	}
	return c.JSON(apiErr.HTTPStatus(), apiErr)
}
