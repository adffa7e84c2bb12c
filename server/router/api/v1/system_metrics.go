package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/epochwf/internal/version"
	"github.com/hrygo/epochwf/server/internal/observability"
	"github.com/hrygo/epochwf/server/timezone"
)

// MetricsOverviewResponse represents the overview response of system metrics
type MetricsOverviewResponse struct {
	*observability.MetricsSnapshot
	SuccessRate float64 `json:"success_rate"`
}

// GetMetricsOverview returns the in-process request and resolution counters.
// GET /api/v1/system/metrics
func (s *APIV1Service) GetMetricsOverview(c echo.Context) error {
	snapshot := s.Metrics.Snapshot()
	return c.JSON(http.StatusOK, MetricsOverviewResponse{
		MetricsSnapshot: snapshot,
		SuccessRate:     snapshot.SuccessRate(),
	})
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Timezone string `json:"timezone"`
	History  bool   `json:"history"`
}

// Healthz reports liveness along with the effective configuration.
func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  version.GetCurrentVersion(s.Profile.Mode),
		Timezone: timezone.Name(s.TimestampService.Location()),
		History:  s.History.Enabled(),
	})
}
