package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/repwatch/cliparse"
	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/issues"
	"github.com/danielhkuo/repwatch/middleware"
	"github.com/danielhkuo/repwatch/report"
	"github.com/danielhkuo/repwatch/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repwatch",
		Short: "Congressional vote alignment service",
		Long: `repwatch scores how closely a representative's recorded votes match
a user's own opinions on the same roll calls.

Configuration comes from flags, environment variables or a .env file,
in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cliparse.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(serveCmd(flags))
	rootCmd.AddCommand(ingestCmd(flags))
	rootCmd.AddCommand(alignCmd(flags))
	rootCmd.AddCommand(classifyCmd(flags))

	return rootCmd
}

// loadConfig resolves configuration and installs the default logger.
// Commands that never open a store pass storage=false.
func loadConfig(flags *cliparse.Flags, storage bool) (cliparse.Config, error) {
	resolve := flags.Resolve
	if !storage {
		resolve = flags.ResolveWithoutStorage
	}
	cfg, err := resolve()
	if err != nil {
		return cfg, err
	}
	if err := setupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupLogger installs a text or JSON slog handler on stderr so that
// command output on stdout stays clean.
func setupLogger(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func serveCmd(flags *cliparse.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			mux := router.NewRouter(router.Deps{
				Store:       a.store,
				Engine:      a.engine,
				Preferences: a.prefs,
				Ingester:    a.ingester,
				Classifier:  a.classifier,
				Recent:      a.recent,
				Clock:       a.clock,
				Metrics:     a.metrics,
				Registry:    a.registry,
			}, cfg)

			server := http.Server{
				Handler:           middleware.CORS(mux),
				Addr:              ":" + strconv.Itoa(cfg.Port),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("shutdown failed", "error", err)
				}
			}()

			slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType, "scale", cfg.ImportanceScale)
			err = server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server closed: %w", err)
			}
			slog.Info("Server closed")
			return nil
		},
	}
}

func ingestCmd(flags *cliparse.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Load members and roll calls from a JSON export",
		Long: `Load members and roll calls from a JSON export file.

Invalid records are skipped and counted; re-running the same export is
idempotent.

Example:
  repwatch ingest congress-118.json --database-url ./repwatch.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, true)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			export, err := ingest.LoadExport(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.ingester.IngestExport(cmd.Context(), export)
			if err != nil {
				return err
			}
			return report.Summary(cmd.OutOrStdout(), summary)
		},
	}
}

func alignCmd(flags *cliparse.Flags) *cobra.Command {
	var userID, repID string

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Print a user's alignment with a representative",
		Long: `Compute and print every alignment breakdown for one user and one
representative.

Example:
  repwatch align --user 4f7c... --rep A000370`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, true)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.store.GetRepresentative(cmd.Context(), repID)
			if err != nil {
				return err
			}

			result, err := a.engine.Compute(cmd.Context(), userID, repID)
			if err != nil {
				return err
			}
			return report.Alignment(cmd.OutOrStdout(), rep, result, a.clock.Now())
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&repID, "rep", "", "Representative ID")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("rep")
	return cmd
}

func classifyCmd(flags *cliparse.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <title> [description]",
		Short: "Print the issue category for a bill",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, false)
			if err != nil {
				return err
			}

			classifier, err := issues.Load(cfg.TaxonomyFile)
			if err != nil {
				return err
			}

			var description string
			if len(args) > 1 {
				description = args[1]
			}
			fmt.Fprintln(cmd.OutOrStdout(), classifier.Classify(args[0], description))
			return nil
		},
	}
}
