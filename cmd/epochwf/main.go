package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/epochwf/internal/profile"
	"github.com/hrygo/epochwf/internal/version"
	"github.com/hrygo/epochwf/plugin/epoch"
	"github.com/hrygo/epochwf/server"
	"github.com/hrygo/epochwf/server/service/history"
	"github.com/hrygo/epochwf/server/timezone"
	"github.com/hrygo/epochwf/store"
	"github.com/hrygo/epochwf/store/db"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	profile *profile.Profile
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "epochwf [query...]",
		Short: "Convert dates, epoch numbers and relative offsets into timestamps",
		Long: `epochwf resolves a free-form query such as "1733900000", "2025-12-01 -1d"
or "+2h" and prints the result as local time, UTC, ISO 8601 and epoch seconds,
milliseconds, microseconds and nanoseconds. Without a query it shows now.

Queries starting with a sign must follow "--", as in: epochwf -- -1d`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	// Flags after the first query word belong to the query ("2025-12-01 -1d").
	rootCmd.Flags().SetInterspersed(false)

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "demo", `mode of the application, "prod", "dev" or "demo"`)
	flags.String("data", "", "data directory for the sqlite history")
	flags.String("driver", "sqlite", `history database driver, "sqlite" or "postgres"`)
	flags.String("dsn", "", "history database source name")
	flags.Bool("history", false, "record resolved queries")
	flags.String("timezone", "", `IANA timezone queries are interpreted in (default: host local time)`)
	flags.StringP("output", "o", profile.OutputAlfred, "output format: alfred, text or json")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")

	a.v.SetEnvPrefix("epochwf")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"mode", "data", "driver", "dsn", "history", "timezone", "output", "log-level"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(a.newServeCommand(), a.newHistoryCommand(), newVersionCommand())
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	a.profile = &profile.Profile{
		Mode:      a.v.GetString("mode"),
		Addr:      a.v.GetString("addr"),
		Port:      a.v.GetInt("port"),
		Data:      a.v.GetString("data"),
		Driver:    a.v.GetString("driver"),
		DSN:       a.v.GetString("dsn"),
		History:   a.v.GetBool("history"),
		Timezone:  a.v.GetString("timezone"),
		Output:    a.v.GetString("output"),
		RateLimit: a.v.GetFloat64("rate-limit"),
		RateBurst: a.v.GetInt("rate-burst"),
	}
	a.profile.FromEnv()
	if a.profile.Version == "" {
		a.profile.Version = version.GetCurrentVersion(a.profile.Mode)
	}
	if err := a.profile.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func (a *app) timestampService() *epoch.Service {
	return epoch.NewService(a.profile.Timezone, epoch.WithLogger(a.logger))
}

// openStore returns nil when history is disabled.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if !a.profile.History {
		return nil, nil
	}
	dbDriver, err := db.NewDBDriver(a.profile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	s := store.New(dbDriver, a.profile)
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, errors.Wrap(err, "failed to migrate")
	}
	return s, nil
}

func (a *app) runQuery(ctx context.Context, w io.Writer, query string) error {
	svc := a.timestampService()
	res, resolveErr := svc.Resolve(ctx, query)

	s, err := a.openStore(ctx)
	if err != nil {
		// History is a convenience; the result is still printed.
		a.logger.Warn("history unavailable", slog.String("error", err.Error()))
	}
	if s != nil {
		defer s.Close()
		_, _ = history.NewRecorder(s).Record(ctx, query, res)
	}

	if err := writeResult(w, a.profile.Output, query, res, svc.Location()); err != nil {
		return err
	}
	if resolveErr != nil && a.profile.Output == profile.OutputText {
		return errors.Errorf("cannot resolve %q", query)
	}
	return nil
}

func (a *app) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolver as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			svc := a.timestampService()
			srv, err := server.NewServer(ctx, a.profile, svc, s, a.logger)
			if err != nil {
				return errors.Wrap(err, "failed to create server")
			}

			a.logger.Info("serving",
				slog.String("version", a.profile.Version),
				slog.String("timezone", timezone.Describe(svc.Location(), time.Now())),
				slog.Bool("history", s != nil),
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Start(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				srv.Shutdown(context.Background())
				return nil
			})
			return g.Wait()
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "address of server")
	flags.Int("port", 8081, "port of server")
	flags.Float64("rate-limit", 10, "API requests per second allowed per client")
	flags.Int("rate-burst", 20, "burst size of the per-client rate limiter")
	for _, name := range []string{"addr", "port", "rate-limit", "rate-burst"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func (a *app) newHistoryCommand() *cobra.Command {
	var limit int
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recorded queries",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if !a.profile.History {
				return errors.New("history is disabled; pass --history or set EPOCHWF_HISTORY=true")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			recorder := history.NewRecorder(s)

			if clearAll {
				deleted, err := recorder.Clear(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", deleted)
				return nil
			}

			records, err := recorder.List(ctx, limit)
			if err != nil {
				return err
			}
			return writeHistory(cmd.OutOrStdout(), a.profile.Output, records)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of records to list")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every record")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			mode, _ := cmd.Flags().GetString("mode")
			fmt.Fprintln(cmd.OutOrStdout(), version.String(mode))
		},
	}
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
