// Package epoch resolves free-form launcher queries into timestamps.
//
// A query is an optional base (empty, an epoch numeral, or a calendar date)
// followed by an optional chain of signed offsets such as "+2h -1d".
package epoch

import (
	"context"
	"time"
)

// TimestampService resolves queries for the CLI and HTTP surfaces.
type TimestampService interface {
	// Resolve turns a query into a Resolution.
	// Supports: "", "1733900000", "1733900000000", "2025-12-01 10:00",
	// "12/25", "2025-12-01 -1d +4d", "+2 hours".
	Resolve(ctx context.Context, query string) (*Resolution, error)

	// Location returns the timezone calendar dates are anchored to.
	Location() *time.Location
}
