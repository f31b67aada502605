package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/imagedex/internal/config"
	dbRedis "github.com/kailas-cloud/imagedex/internal/db/redis"
	"github.com/kailas-cloud/imagedex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/imagedex/internal/logger"
	"github.com/kailas-cloud/imagedex/internal/metrics"
	imagerepo "github.com/kailas-cloud/imagedex/internal/repository/image"
	chiTransport "github.com/kailas-cloud/imagedex/internal/transport/chi"
	openaiRanker "github.com/kailas-cloud/imagedex/internal/transport/openai"
	analyzeuc "github.com/kailas-cloud/imagedex/internal/usecase/analyze"
	healthuc "github.com/kailas-cloud/imagedex/internal/usecase/health"
	imagesuc "github.com/kailas-cloud/imagedex/internal/usecase/images"
	scoreuc "github.com/kailas-cloud/imagedex/internal/usecase/score"
	searchuc "github.com/kailas-cloud/imagedex/internal/usecase/search"
	"github.com/kailas-cloud/imagedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting imagedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create metadata store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Metadata store not ready", zap.Error(err))
	}
	logger.Info("Connected to metadata store")

	// Register ranker metrics explicitly (no init())
	metrics.RegisterRankerMetrics()

	// External ranker: disabled configuration is a mode switch, not an error.
	ranker := openaiRanker.NewRanker(&openaiRanker.Config{
		APIKey:        cfg.Ranker.APIKey,
		BaseURL:       cfg.Ranker.BaseURL,
		Model:         cfg.Ranker.Model,
		Temperature:   cfg.Ranker.Temperature,
		MaxTokens:     cfg.Ranker.MaxTokens,
		Timeout:       time.Duration(cfg.Ranker.TimeoutSec) * time.Second,
		MaxCandidates: cfg.Ranker.MaxCandidates,
		Logger:        logger,
	})
	logger.Info("External ranker configured",
		zap.Bool("enabled", ranker.Enabled()),
		zap.String("model", cfg.Ranker.Model),
	)

	repo := imagerepo.New(store).WithKeyPrefix(cfg.Storage.KeyPrefix)

	analyzer := analyzeuc.New(analyzeuc.DefaultTables())
	scorer := scoreuc.New()
	searchSvc := searchuc.New(repo, ranker, analyzer, scorer)
	imagesSvc := imagesuc.New(repo)
	healthSvc := healthuc.New(store, ranker)

	server := chiTransport.NewServer(searchSvc, imagesSvc, healthSvc, logger).
		WithSearchLimits(request.Limits{
			DefaultPageSize: cfg.Search.DefaultPageSize,
			MaxPageSize:     cfg.Search.MaxPageSize,
			DefaultMinScore: cfg.Search.DefaultMinScore,
		})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
