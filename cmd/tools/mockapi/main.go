package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atikurraha/admin-frontend/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":5000", "Listen address")
	products := flag.Int("products", 42, "Number of seeded products")
	latency := flag.Duration("latency", 0, "Delay added to every request (e.g. 800ms)")
	failureRate := flag.Float64("failure-rate", 0, "Fraction of requests answered with 500 (0..1)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	srv := &http.Server{
		Addr: *addr,
		Handler: mockapi.NewServer(mockapi.Seed(*products, time.Now()), mockapi.Options{
			Latency:     *latency,
			FailureRate: *failureRate,
			Logger:      logger,
		}).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("mockapi_listen",
		slog.String("addr", *addr),
		slog.Int("products", *products),
		slog.Duration("latency", *latency),
		slog.Float64("failure_rate", *failureRate),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("mockapi_exit", slog.Any("err", err))
		os.Exit(1)
	}
}
