package epoch

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Service implements TimestampService on top of a Resolver.
type Service struct {
	resolver *Resolver
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// WithClock sets the clock used for "now" and for year-less dates.
func WithClock(clock clockwork.Clock) Option {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService creates a new timestamp service. An empty or unknown timezone
// falls back to the host's local timezone.
func NewService(timezone string, opts ...Option) *Service {
	o := &serviceOptions{
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			o.logger.Warn("unknown timezone, using local", slog.String("timezone", timezone), slog.String("error", err.Error()))
		} else {
			loc = l
		}
	}

	return &Service{
		resolver: NewResolver(o.clock, loc),
		logger:   o.logger,
	}
}

// Resolve resolves a query.
func (s *Service) Resolve(ctx context.Context, query string) (*Resolution, error) {
	res, err := s.resolver.Resolve(query)
	if err != nil {
		s.logger.DebugContext(ctx, "query not resolved",
			slog.String("query", query),
			slog.String("code", string(CodeOf(err))),
		)
		return nil, err
	}

	s.logger.DebugContext(ctx, "query resolved",
		slog.String("query", query),
		slog.String("base", res.Base.String()),
		slog.Float64("timestamp", res.Timestamp),
		slog.Int("offsets", len(res.Offsets)),
	)
	return res, nil
}

// Location returns the timezone calendar dates are anchored to.
func (s *Service) Location() *time.Location {
	return s.resolver.Location()
}

// Ensure Service implements TimestampService
var _ TimestampService = (*Service)(nil)
