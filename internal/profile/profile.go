package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/epochwf/server/timezone"
)

// Output formats for resolved queries on the command line.
const (
	OutputAlfred = "alfred"
	OutputText   = "text"
	OutputJSON   = "json"
)

// Profile is the configuration shared by the CLI and the HTTP server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// Driver is the history database driver (sqlite or postgres)
	Driver string
	// DSN points to where the query history is stored
	DSN string
	// Version is the current version of epochwf
	Version string

	// Timezone is the IANA name queries are interpreted in; empty or "Local" means the host zone.
	Timezone string
	// Output is the CLI output format: alfred, text or json.
	Output string
	// History enables recording resolved queries.
	History bool
	// RateLimit is the number of API requests per second allowed per client.
	RateLimit float64
	// RateBurst is the burst size of the per-client limiter.
	RateBurst int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv fills unset fields from the environment Alfred provides to
// workflows, so the script filter needs no flags.
func (p *Profile) FromEnv() {
	if p.Data == "" {
		p.Data = os.Getenv("alfred_workflow_data")
	}
	if p.Timezone == "" {
		p.Timezone = getEnvOrDefault("TZ", "")
	}
	if p.Version == "" {
		p.Version = os.Getenv("alfred_workflow_version")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".epochwf"
	}
	return filepath.Join(home, ".epochwf")
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	switch p.Output {
	case "":
		p.Output = OutputAlfred
	case OutputAlfred, OutputText, OutputJSON:
	default:
		return errors.Errorf("unknown output format %q: expected alfred, text or json", p.Output)
	}

	if !timezone.IsValidTimezone(p.Timezone) {
		return errors.Errorf("unknown timezone %q", p.Timezone)
	}

	if p.RateLimit <= 0 {
		p.RateLimit = 10
	}
	if p.RateBurst <= 0 {
		p.RateBurst = 20
	}

	if !p.History {
		return nil
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}
	if p.Driver == "postgres" {
		if p.DSN == "" {
			return errors.New("postgres history requires a dsn")
		}
		return nil
	}

	if p.Data == "" {
		p.Data = defaultDataDir()
		if err := os.MkdirAll(p.Data, 0o755); err != nil {
			slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
			return err
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.DSN == "" {
		p.DSN = filepath.Join(dataDir, fmt.Sprintf("epochwf_%s.db", p.Mode))
	}
	return nil
}
