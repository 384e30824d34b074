package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func (a *application) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the dashboard API and charts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Usage: "listen address (overrides server.address)"},
		},
		Action: func(c *cli.Context) error {
			if v := c.String("address"); v != "" {
				a.cfg.Server.Address = v
			}
			handler, err := a.dashboardHandler()
			if err != nil {
				return err
			}
			return a.listen(c.Context, handler)
		},
	}
}

// dashboardHandler assembles the HTTP routes for the configured dataset source.
func (a *application) dashboardHandler() (http.Handler, error) {
	var source leaderboardhandlers.DatasetSource
	switch a.cfg.Dashboard.Source {
	case config.SourceDatabase:
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		svc, err := a.resultsService(db)
		if err != nil {
			return nil, err
		}
		source = leaderboardhandlers.DatabaseSource{Service: svc}
	default:
		source = leaderboardhandlers.FileSource{Path: a.cfg.Ingest.Output}
	}

	filter := leaderboardservice.Filter{
		MaxPuzzle:        a.cfg.Dashboard.MaxPuzzle,
		ExcludePuzzles:   a.cfg.Dashboard.ExcludePuzzles,
		Players:          a.cfg.Dashboard.Players,
		RequireFullSlate: a.cfg.Dashboard.RequireFullSlate,
	}
	handlers := leaderboardhandlers.NewLeaderboardHandlers(source, filter, a.logger, a.tracing.Tracer("dashboard"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", observability.MetricsHandler(a.registry))
	handlers.Register(r)

	return otelhttp.NewHandler(r, "dashboard"), nil
}

// listen serves handler until ctx ends or the process is signalled.
func (a *application) listen(ctx context.Context, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         a.cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, "Dashboard listening", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
