package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/atikurraha/admin-frontend/internal/config"
	apphttp "github.com/atikurraha/admin-frontend/internal/http"
	"github.com/atikurraha/admin-frontend/internal/http/middleware"
	"github.com/atikurraha/admin-frontend/internal/http/viewsession"
	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
	"github.com/atikurraha/admin-frontend/internal/storage"
	"github.com/atikurraha/admin-frontend/internal/ui/dashboard"
	"github.com/atikurraha/admin-frontend/internal/ui/productlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.Any("err", err))
		os.Exit(1)
	}

	logger := slog.New(middleware.NewContextHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.SetDefault(logger)
	if cfg.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server_exit", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.LogAttrs(ctx, slog.LevelInfo, "starting", cfg.LogAttrs()...)

	api := catalog.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)

	store, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("storage_ready", slog.String("driver", store.Driver))

	g, gctx := errgroup.WithContext(ctx)

	sessions := viewsession.New(gctx, cfg.ViewSessionTTL, func() viewsession.Views {
		return viewsession.Views{
			Products:  productlist.New(api, logger),
			Dashboard: dashboard.New(api, logger),
		}
	}, logger)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: apphttp.NewRouter(apphttp.Deps{
			Logger:    logger,
			Config:    cfg,
			Sessions: sessions,
			Thumbs:   store.Resolver,
			Location: time.Local,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		return sessions.Run(gctx, cfg.ViewSessionTTL/4)
	})
	g.Go(func() error {
		logger.Info("http_listen", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("http_shutdown")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
