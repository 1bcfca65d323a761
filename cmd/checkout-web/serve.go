package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cheertaboi/checkout-flows/internal/api"
	"github.com/Cheertaboi/checkout-flows/internal/api/middleware"
	"github.com/Cheertaboi/checkout-flows/internal/cache"
	"github.com/Cheertaboi/checkout-flows/internal/concurrency"
	"github.com/Cheertaboi/checkout-flows/internal/logger"
	"github.com/Cheertaboi/checkout-flows/internal/models"
	"github.com/Cheertaboi/checkout-flows/internal/repository"
	"github.com/Cheertaboi/checkout-flows/internal/service"
	"github.com/Cheertaboi/checkout-flows/pkg/config"
	"github.com/Cheertaboi/checkout-flows/pkg/httpclient"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	backend := repository.NewPaymentBackend(cfg.BaseURL, httpclient.New())
	flows := repository.NewFlowRepo()
	visits, err := cache.NewVisitCache[*service.Checkout](cfg.VisitTTL, cfg.MaxVisits)
	if err != nil {
		return err
	}
	limiter, err := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	if err != nil {
		return err
	}

	checkout := service.NewCheckoutService(
		backend,
		repository.NewCatalogRepo(),
		models.NewRedirectPolicy(cfg.AllowedRedirectHosts),
		visits,
		log,
	)
	account := service.NewAccountService(backend, log)

	handler := api.NewRouter(flows, checkout, account, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(limiter.Limit)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	waitSweeper := concurrency.Every(ctx, time.Minute, func(context.Context) {
		if n := checkout.SweepVisits(); n > 0 {
			log.Debug("expired visits dropped", zap.Int("count", n))
		}
	})

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	log.Info("starting checkout-web",
		zap.String("addr", cfg.Addr),
		zap.String("backend", cfg.BaseURL),
		zap.Strings("redirect_hosts", cfg.AllowedRedirectHosts),
		zap.Int("max_visits", cfg.MaxVisits),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	<-idleConnsClosed
	waitSweeper()
	log.Info("server stopped")
	return nil
}
