package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fourscore/solver/internal/eval"
	"github.com/fourscore/solver/internal/game"
	"github.com/fourscore/solver/internal/httpapi"
	"github.com/fourscore/solver/internal/logx"
)

func main() {
	var (
		// Server
		addr = flag.String("addr", ":8080", "listen address")

		// Solve pool
		workers    = flag.Int("workers", 0, "solver workers (0 = default)")
		queueSize  = flag.Int("queue-size", 0, "pending request capacity (0 = default)")
		tableSlots = flag.Int("table-slots", 0, "transposition table slots per worker (0 = default)")

		// Sessions
		sessionAge = flag.Duration("session-age", 30*time.Minute, "drop games idle longer than this (0 = never)")

		// Logging
		logLevel = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	pool := eval.NewPool(eval.Config{
		Logger:     logger.With().Str("component", "solve-pool").Logger(),
		NumWorkers: *workers,
		QueueSize:  *queueSize,
		TableSize:  *tableSlots,
	})
	games := game.NewManager()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         *addr,
		Handler:      httpapi.NewRouter(logger, pool, games),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("api server")
		}
	}()

	go func() {
		if err := pool.Run(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("solve pool stopped")
		}
	}()

	// Drop sessions nobody has touched in a while.
	if *sessionAge > 0 {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := games.Sweep(*sessionAge); n > 0 {
						logger.Info().Int("removed", n).Msg("swept idle games")
					}
				}
			}
		}()
	}

	<-ctx.Done()
	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}

	logger.Info().Msg("shutdown complete")
}
