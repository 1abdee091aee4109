package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"KrakenCandles/internal/chart"
	"KrakenCandles/internal/collector"
	"KrakenCandles/internal/config"
	"KrakenCandles/internal/model"
	"KrakenCandles/internal/recorder"
	"KrakenCandles/internal/scheduler"
	"KrakenCandles/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the candlestick page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openRecorder falls back to a no-op recorder when SQLite cannot be opened.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

func defaultQuery(cfg *config.Config) model.Query {
	// Validate has already parsed both dates.
	start, _ := cfg.ChartStart()
	end, _ := cfg.ChartEnd()
	return model.Query{Pair: cfg.Chart.Pair, Start: start, End: end, Interval: cfg.Chart.Interval}
}

func serve(cfg *config.Config) error {
	log.Info().Msg("KrakenCandles starting...")
	gin.SetMode(cfg.Server.Mode)

	fetcher := collector.NewKrakenFetcher(cfg.Kraken.BaseURL, cfg.KrakenTimeout(), cfg.Proxy)
	log.Info().Str("source", fetcher.Name()).Str("base_url", cfg.Kraken.BaseURL).Msg("data source ready")

	col := collector.NewCollector(fetcher, chart.NewCandlestickRenderer())

	rec := openRecorder(cfg)
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Schedule.Enabled {
		sched := scheduler.NewScheduler(ctx, col, rec, cfg.Chart.Pair, cfg.Chart.Interval, cfg.Schedule.LookbackDays)
		if err := sched.Register(cfg.Schedule.SnapshotCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info().Msg("RUN_ON_START enabled, recording snapshot now")
			go func() {
				if err := sched.RunNow(); err != nil {
					log.Error().Err(err).Msg("startup snapshot failed")
				}
			}()
		}
	}

	handler := web.NewHandler(col, rec, defaultQuery(cfg))
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.NewRouter(handler, cfg.Server.RateLimit, cfg.Server.RateBurst),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("KrakenCandles stopped")
	return nil
}
