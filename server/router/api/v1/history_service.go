package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/hrygo/epochwf/server/internal/errors"
	"github.com/hrygo/epochwf/store"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

// HistoryRecord is the JSON form of a stored query.
type HistoryRecord struct {
	UID           string  `json:"uid"`
	Query         string  `json:"query"`
	Succeeded     bool    `json:"succeeded"`
	Timestamp     float64 `json:"timestamp"`
	IsEpochInput  bool    `json:"is_epoch_input"`
	RepresentsNow bool    `json:"represents_now"`
	CreatedTs     int64   `json:"created_ts"`
}

func convertHistoryRecord(r *store.QueryRecord) HistoryRecord {
	return HistoryRecord{
		UID:           r.UID,
		Query:         r.Query,
		Succeeded:     r.Succeeded,
		Timestamp:     r.Timestamp,
		IsEpochInput:  r.IsEpochInput,
		RepresentsNow: r.RepresentsNow,
		CreatedTs:     r.CreatedTs,
	}
}

// ListHistory returns the most recent queries, newest first.
// GET /api/v1/history?limit=50
func (s *APIV1Service) ListHistory(c echo.Context) error {
	if !s.History.Enabled() {
		return writeError(c, apierrors.ServiceUnavailable("history is disabled"))
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxHistoryLimit {
			return writeError(c, apierrors.InvalidArgument("limit must be between 1 and 1000"))
		}
		limit = v
	}

	list, err := s.History.List(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, apierrors.Internal("failed to list history", err))
	}
	records := make([]HistoryRecord, 0, len(list))
	for _, r := range list {
		records = append(records, convertHistoryRecord(r))
	}
	return c.JSON(http.StatusOK, map[string]any{"records": records})
}

// ClearHistory deletes every stored query.
// DELETE /api/v1/history
func (s *APIV1Service) ClearHistory(c echo.Context) error {
	if !s.History.Enabled() {
		return writeError(c, apierrors.ServiceUnavailable("history is disabled"))
	}
	deleted, err := s.History.Clear(c.Request().Context())
	if err != nil {
		return writeError(c, apierrors.Internal("failed to clear history", err))
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}
