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

	"posmejia/internal/config"
	"posmejia/internal/handler"
	"posmejia/internal/infra"
	"posmejia/internal/middleware"
	"posmejia/internal/repository"
	"posmejia/internal/router"
	"posmejia/internal/service"
	"posmejia/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	if err := os.MkdirAll(cfg.ReportStoragePath, 0o755); err != nil {
		log.Fatal().Err(err).Str("path", cfg.ReportStoragePath).Msg("failed to create report storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg, mailCB)
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP_HOST not set: report e-mails are disabled")
	}
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	repos := service.Repos{
		Ventas:    repository.NewVentaRepository(db),
		Productos: repository.NewProductoRepository(db),
		Gastos:    repository.NewGastoAdminRepository(db),
		Nominas:   repository.NewNominaRepository(db),
		Lienzo:    repository.NewLienzoRepository(db),
		Clientes:  repository.NewClienteRepository(db),
		Metas:     repository.NewMetaAhorroRepository(db),
	}

	// ── Services ─────────────────────────────────────────────────────────────
	opts := service.Options{
		Location:               cfg.Location(),
		CostoHistoricoEstricto: !cfg.CostoFallbackProducto,
	}
	// A nil *RedisCache must not become a non-nil Cache interface.
	if cache := infra.NewRedisCache(rdb, "posmejia:", cfg.CacheTTL()); cache != nil {
		opts.Cache = cache
	}

	finanzasSvc := service.NewFinanzasService(repos, opts)
	reporteSvc := service.NewReporteService(repos, opts, dispatcher, cfg.ReportStoragePath, cfg.BusinessName)
	ahorroSvc := service.NewAhorroService(repos, opts)

	// ── Workers ──────────────────────────────────────────────────────────────
	pool := worker.NewPool(rdb, map[string]worker.Handler{
		worker.JobReportePDF: worker.NewReporteWorker(reporteSvc, dispatcher, cfg.ReportStoragePath, cfg.BusinessName),
		worker.JobEmail:      worker.NewEmailWorker(mailer),
	})
	pool.Start(ctx, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{Queue: rdb, CB: mailCB})

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.RunPurge(ctx, time.Minute)

	// ── HTTP ─────────────────────────────────────────────────────────────────
	r := router.New(cfg, router.Handlers{
		Health:   handler.Health(db, rdb, mailCB),
		Finanzas: handler.NewFinanzasHandler(finanzasSvc),
		Reportes: handler.NewReportesHandler(reporteSvc),
		Ahorro:   handler.NewAhorroHandler(ahorroSvc),
	}, limiter)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("timezone", cfg.Timezone).Msgf("posmejia finance backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Stop workers after HTTP so no new jobs are accepted mid-drain.
	cancel()
	pool.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()
	log.Info().Msg("server exited")
}
