package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"eventbuddy/config"
	"eventbuddy/internal/adapters/auth"
	"eventbuddy/internal/adapters/ical"
	"eventbuddy/internal/adapters/metrics"
	transport "eventbuddy/internal/delivery/http"
	"eventbuddy/internal/domain"
	"eventbuddy/internal/notify"
	"eventbuddy/internal/services"
)

var (
	dataSourceFlag = &cli.StringFlag{Name: "data-source", Usage: "Snapshot file, http(s) URL or postgres DSN. Overrides DATA_SOURCE."}
	initSchemaFlag = &cli.BoolFlag{Name: "init-schema", Usage: "Create the postgres tables before loading."}
)

// loadData loads the configured snapshot into planner. On failure the planner
// stays empty but usable.
func loadData(ctx context.Context, c *cli.Context, cfg *config.Config, logger *slog.Logger, planner *services.Planner) error {
	source := cfg.DataSource
	if c.IsSet(dataSourceFlag.Name) {
		source = c.String(dataSourceFlag.Name)
	}
	return loadSource(ctx, logger, planner, source, c.Bool(initSchemaFlag.Name), cfg.LoadTimeout)
}

// loadSource opens source and loads it into planner. Failing to open the
// source is reported like any other load failure.
func loadSource(ctx context.Context, logger *slog.Logger, planner *services.Planner, source string, initSchema bool, timeout time.Duration) error {
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loader, closeLoader, err := openLoader(loadCtx, source, initSchema)
	if err != nil {
		return planner.ReportLoadFailure(loadCtx, fmt.Errorf("open data source: %w", err))
	}
	defer closeLoader()

	if loader == nil {
		logger.Info("no data source configured, starting empty")
		return planner.LoadSnapshot(domain.Snapshot{})
	}
	return planner.Load(loadCtx, loader)
}

func serveCommand(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Load the data source and serve the JSON API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "Listen port. Overrides PORT."},
			dataSourceFlag,
			initSchemaFlag,
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			bus := notify.NewBus(logger)
			planner := services.NewPlanner(logger, services.WithBus(bus))
			observer, err := metrics.NewObserver(reg, planner)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}
			observer.Attach(bus)

			if err := loadData(ctx, c, cfg, logger, planner); err != nil {
				logger.Error("initial load failed, serving empty store", "error", err)
			}

			var verifier domain.TokenVerifier
			if cfg.JWTSecret != "" {
				verifier = auth.NewJWT(cfg.JWTSecret)
			} else {
				logger.Warn("JWT_SECRET not set, mutating routes are open")
			}

			port := cfg.Port
			if c.IsSet("port") {
				port = c.String("port")
			}
			srv := &http.Server{
				Addr: ":" + port,
				Handler: transport.NewRouter(logger, planner, transport.RouterConfig{
					Verifier:       verifier,
					Gatherer:       reg,
					AllowedOrigins: cfg.AllowedOrigins,
				}),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				// No WriteTimeout: /notifications streams for as long as the client stays.
				IdleTimeout: 60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func exportCommand(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the events of the data source as an iCalendar file.",
		Flags: []cli.Flag{
			dataSourceFlag,
			initSchemaFlag,
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file. Defaults to stdout."},
			&cli.StringFlag{Name: "status", Value: domain.FilterAll, Usage: "Only events with this status (planned, done)."},
			&cli.StringFlag{Name: "tag", Value: domain.FilterAll, Usage: "Only events carrying this tag id."},
			&cli.StringFlag{Name: "participant", Value: domain.FilterAll, Usage: "Only events linking this participant id."},
		},
		Action: func(c *cli.Context) error {
			planner := services.NewPlanner(logger)
			if err := loadData(c.Context, c, cfg, logger, planner); err != nil {
				return err
			}
			if err := planner.SetStatusFilter(c.String("status")); err != nil {
				return err
			}
			planner.SetTagFilter(c.String("tag"))
			planner.SetParticipantFilter(c.String("participant"))

			var w io.Writer = os.Stdout
			path := c.String("output")
			if path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer f.Close()
				w = f
			}
			events := planner.FilteredEvents()
			if err := ical.NewExporter(planner).Encode(w, events); err != nil {
				return err
			}
			if path != "" {
				logger.Info("events exported", "count", len(events), "file", path)
			}
			return nil
		},
	}
}

func tokenCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a bearer token for the mutating API routes.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: "ui", Usage: "Token subject."},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "Token lifetime."},
		},
		Action: func(c *cli.Context) error {
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET environment variable not set")
			}
			token, err := auth.NewJWT(cfg.JWTSecret).Issue(c.String("subject"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}
