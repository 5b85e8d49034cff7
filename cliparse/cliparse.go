package cliparse

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go-simpler.org/env"

	"github.com/danielhkuo/repwatch/models"
)

// Database types accepted by DATABASE_TYPE / --database-type.
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseMemory   = "memory"
)

type Config struct {
	Port         int    `env:"PORT" default:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" default:"sqlite"`
	RedisURL     string `env:"REDIS_URL"`
	TaxonomyFile string `env:"TAXONOMY_FILE"`

	ImportanceScale int `env:"IMPORTANCE_SCALE" default:"3"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// Preference writes per second per client IP, and the burst allowance.
	PreferenceRateLimit float64 `env:"PREFERENCE_RATE_LIMIT" default:"5"`
	PreferenceBurst     int     `env:"PREFERENCE_BURST" default:"10"`
}

// Scale returns the configured importance scale.
func (c Config) Scale() models.ImportanceScale {
	return models.ImportanceScale(c.ImportanceScale)
}

// Flags holds the command-line overrides registered on a flag set.
type Flags struct {
	fs     *pflag.FlagSet
	values Config
}

// BindFlags registers the configuration flags on fs. Call Resolve after the
// flag set has been parsed.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	v := &f.values

	// Network and storage (can be CLI args or env)
	fs.IntVarP(&v.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&v.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&v.DatabaseType, "database-type", "t", "", "Database type (postgres, sqlite or memory)")
	fs.StringVar(&v.RedisURL, "redis-url", "", "Redis URL for recently viewed representatives")

	// Scoring
	fs.StringVar(&v.TaxonomyFile, "taxonomy", "", "YAML issue taxonomy (default built-in)")
	fs.IntVar(&v.ImportanceScale, "importance-scale", 0, "Importance scale (3 or 5)")

	// Logging and limits
	fs.StringVar(&v.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&v.LogFormat, "log-format", "", "Log format (text or json)")
	fs.Float64Var(&v.PreferenceRateLimit, "preference-rate", 0, "Preference writes per second per client")
	fs.IntVar(&v.PreferenceBurst, "preference-burst", 0, "Preference write burst per client")

	return f
}

// Resolve builds the Config: flags that were set win over the environment,
// the environment wins over a .env file, and that wins over defaults.
func (f *Flags) Resolve() (Config, error) {
	return f.resolve(true)
}

// ResolveWithoutStorage is Resolve for commands that never open a store;
// database settings are not required.
func (f *Flags) ResolveWithoutStorage() (Config, error) {
	return f.resolve(false)
}

func (f *Flags) resolve(storage bool) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	v := f.values
	if f.fs.Changed("port") {
		cfg.Port = v.Port
	}
	if f.fs.Changed("database-url") {
		cfg.DatabaseURL = v.DatabaseURL
	}
	if f.fs.Changed("database-type") {
		cfg.DatabaseType = v.DatabaseType
	}
	if f.fs.Changed("redis-url") {
		cfg.RedisURL = v.RedisURL
	}
	if f.fs.Changed("taxonomy") {
		cfg.TaxonomyFile = v.TaxonomyFile
	}
	if f.fs.Changed("importance-scale") {
		cfg.ImportanceScale = v.ImportanceScale
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = v.LogLevel
	}
	if f.fs.Changed("log-format") {
		cfg.LogFormat = v.LogFormat
	}
	if f.fs.Changed("preference-rate") {
		cfg.PreferenceRateLimit = v.PreferenceRateLimit
	}
	if f.fs.Changed("preference-burst") {
		cfg.PreferenceBurst = v.PreferenceBurst
	}

	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if storage {
		if err := validateStorage(cfg); err != nil {
			return Config{}, err
		}
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFlags parses args and resolves the configuration.
func ParseFlags(args []string) (Config, error) {
	fs := pflag.NewFlagSet("repwatch", pflag.ContinueOnError)
	f := BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return f.Resolve()
}

func validateStorage(cfg Config) error {
	switch cfg.DatabaseType {
	case DatabasePostgres, DatabaseSQLite:
		if cfg.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case DatabaseMemory:
	default:
		return fmt.Errorf("unknown database type %q (use postgres, sqlite or memory)", cfg.DatabaseType)
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}

	if !cfg.Scale().Valid() {
		return fmt.Errorf("importance scale must be 3 or 5, got %d", cfg.ImportanceScale)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q (use text or json)", cfg.LogFormat)
	}

	if cfg.PreferenceRateLimit <= 0 {
		return errors.New("preference rate limit must be positive")
	}
	if cfg.PreferenceBurst < 1 {
		return errors.New("preference burst must be at least 1")
	}

	return nil
}
