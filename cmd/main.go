package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"building-catalog-service/internal/api"
	"building-catalog-service/internal/config"
	"building-catalog-service/internal/logger"
	"building-catalog-service/internal/store"
)

func main() {
	// A missing .env is fine; the environment may be set some other way.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(api.ServiceName, true, "info")
		logger.Logger.Fatal().Err(err).Msg("error loading configuration")
	}

	logger.Init(api.ServiceName, cfg.IsDevelopment(), cfg.LogLevel)
	log := logger.Logger
	if envErr != nil {
		log.Info().Msg("no .env file loaded, relying on system environment")
	}
	log.Info().Str("env", cfg.AppEnv).Str("log_level", cfg.LogLevel).Msg("starting service")

	// --- Catalog Source ---
	src, pg := setupSource(cfg, log)

	// --- Catalog, Metrics & Handlers ---
	catalog := store.NewCatalog(logger.Component("catalog"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := api.NewMetrics(reg)

	renderer, err := api.NewHTMLRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	httpAPIHandler := api.NewHTTPHandler(catalog, renderer, metrics, cfg.HttpServer.CORSOrigins, logger.Component("http"))
	if pg != nil {
		httpAPIHandler.WithDBCheck(pg)
	}

	grpcServer, healthServer := api.NewGRPCServer(logger.Component("grpc"))

	// The catalog loads in the background; until it is installed every view
	// renders the loading state.
	go loadCatalog(cfg, catalog, src, metrics, healthServer, log)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, log)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		log.Info().Str("port", cfg.HttpServer.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server ListenAndServe error")
		}
		log.Info().Msg("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Server ---
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.GrpcServer.Port).Msg("failed to listen for gRPC")
	}

	go func() {
		log.Info().Str("port", cfg.GrpcServer.Port).Msg("gRPC server listening")
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Fatal().Err(err).Msg("gRPC server Serve error")
		}
		log.Info().Msg("gRPC server has stopped")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(log, httpServer, grpcServer, healthServer, pg, shutdownComplete)

	<-shutdownComplete
	log.Info().Msg("service shutdown sequence finished")
}

// setupSource picks the configured product source. A database that cannot be
// reached yields a nil source, which makes the catalog install the fallback list.
func setupSource(cfg *config.Config, log zerolog.Logger) (store.ProductSource, *store.PostgresSource) {
	switch cfg.Catalog.SourceKind {
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize database connection")
			return nil, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ping database")
			closeWithWarning(db, log, "error closing unreachable database")
			return nil, nil
		}
		log.Info().Str("host", cfg.Postgres.Host).Str("db", cfg.Postgres.DBName).Msg("database connection established")
		pg := store.NewPostgresSource(db)
		return pg, pg
	default:
		log.Info().Str("source", cfg.Catalog.Source).Msg("using product document source")
		return store.NewDocumentSource(cfg.Catalog.Source, cfg.Catalog.FetchTimeout), nil
	}
}

// closeWithWarning closes c and logs a failure at warn level.
func closeWithWarning(c io.Closer, log zerolog.Logger, msg string) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg(msg)
	}
}

func loadCatalog(cfg *config.Config, catalog *store.Catalog, src store.ProductSource, metrics *api.Metrics, hs *health.Server, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	defer cancel()

	snap := catalog.Load(ctx, src)
	metrics.ObserveLoad(snap)
	api.MarkCatalogLoaded(hs, snap)
	log.Info().Str("origin", snap.Origin).Int("products", len(snap.Products)).Msg("catalog ready")
}

func setupBaseMiddleware(router *chi.Mux, log zerolog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.RequestLogger(logger.Component("access")))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	log.Info().Msg("base HTTP middleware registered")
}

func waitForShutdown(
	log zerolog.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	healthServer *health.Server,
	pg *store.PostgresSource,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	log.Info().Str("signal", receivedSignal.String()).Msg("starting graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	healthServer.Shutdown()

	log.Info().Msg("attempting to gracefully shut down gRPC server")
	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	log.Info().Msg("attempting to gracefully shut down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server graceful shutdown failed")
	} else {
		log.Info().Msg("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		log.Info().Msg("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		log.Warn().Err(shutdownCtx.Err()).Msg("gRPC server graceful shutdown timed out, forcing stop")
		grpcServer.Stop()
	}

	if pg != nil {
		closeWithWarning(pg, log, "error closing database connection")
	}

	log.Info().Msg("graceful shutdown sequence completed")
}
