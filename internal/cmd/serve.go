package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fintrack/backend/internal/config"
	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/reports"
	"github.com/fintrack/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	config string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the API server" }
func (*serveCmd) Usage() string {
	return `fintrack serve [-config <file>]

  Runs the HTTP API. Configuration is read from the embedded defaults,
  the optional YAML file, a .env file and FINTRACK_ environment variables.
`
}

func (s *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.config, "config", "", "Path of a YAML configuration file.")
}

func (s *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(s.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	err = cfg.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	gin.SetMode(cfg.Server.Mode)
	setupLogging(cfg)

	err = serve(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Server")
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func serve(ctx context.Context, cfg config.Config) error {
	url, err := cfg.URL()
	if err != nil {
		return err
	}

	// Create data directory
	err = os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	db, err := models.Connect(cfg.Database.Path)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	r, teardown, err := router.Config(url, cfg.Server)
	defer teardown()
	if err != nil {
		return err
	}

	co := v1.NewController(db, reports.Config{
		TrendMonths: cfg.Dashboard.TrendMonths,
		RecentLimit: cfg.Dashboard.RecentLimit,
	})
	router.AttachRoutes(co, r.Group(url.Path), cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("backend startup complete")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
