package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/epochwf/plugin/display"
	"github.com/hrygo/epochwf/plugin/epoch"
	apierrors "github.com/hrygo/epochwf/server/internal/errors"
	"github.com/hrygo/epochwf/server/internal/observability"
)

// ResolveResponse is the body of GET /api/v1/resolve.
type ResolveResponse struct {
	Query         string         `json:"query"`
	Resolved      bool           `json:"resolved"`
	Timestamp     *float64       `json:"timestamp,omitempty"`
	IsEpochInput  bool           `json:"is_epoch_input"`
	RepresentsNow bool           `json:"represents_now"`
	Items         []display.Item `json:"items"`
}

// Resolve resolves the q parameter and returns its display items.
// An unresolvable query is not an HTTP error: it yields resolved=false and
// no items, unless strict=true asks for a 422 instead.
// GET /api/v1/resolve?q=...
func (s *APIV1Service) Resolve(c echo.Context) error {
	ctx := c.Request().Context()
	query := c.QueryParam("q")

	strict := false
	if raw := c.QueryParam("strict"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return writeError(c, apierrors.InvalidArgument("strict must be a boolean"))
		}
		strict = v
	}

	res, err := s.TimestampService.Resolve(ctx, query)
	if _, recordErr := s.History.Record(ctx, query, res); recordErr != nil {
		if reqCtx, ok := observability.FromContext(ctx); ok {
			reqCtx.Warn("history not recorded", slog.String("error", recordErr.Error()))
		}
	}

	response := ResolveResponse{Query: query, Items: []display.Item{}}
	if err != nil {
		s.Metrics.RecordFailure(string(epoch.CodeOf(err)))
		if strict {
			return writeError(c, apierrors.Unresolvable(query, err))
		}
		return c.JSON(http.StatusOK, response)
	}

	s.Metrics.RecordResolution(res.Base.String())
	response.Resolved = true
	response.Timestamp = &res.Timestamp
	response.IsEpochInput = res.IsEpochInput
	response.RepresentsNow = res.RepresentsNow
	response.Items = display.Render(res, s.TimestampService.Location())
	return c.JSON(http.StatusOK, response)
}
