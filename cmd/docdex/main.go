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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/parcelam/docdex/internal/config"
	"github.com/parcelam/docdex/internal/index"
	"github.com/parcelam/docdex/internal/index/pinecone"
	"github.com/parcelam/docdex/internal/index/redis"
	logpkg "github.com/parcelam/docdex/internal/logger"
	"github.com/parcelam/docdex/internal/metrics"
	chiTransport "github.com/parcelam/docdex/internal/transport/chi"
	openaiEmb "github.com/parcelam/docdex/internal/transport/openai"
	healthuc "github.com/parcelam/docdex/internal/usecase/health"
	ingestuc "github.com/parcelam/docdex/internal/usecase/ingest"
	queryuc "github.com/parcelam/docdex/internal/usecase/query"
	tenantuc "github.com/parcelam/docdex/internal/usecase/tenant"
	"github.com/parcelam/docdex/internal/version"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_driver", cfg.Index.Driver),
	)

	// Register index and embedding metrics explicitly (no init())
	metrics.RegisterIndexMetrics()
	metrics.RegisterEmbeddingMetrics()

	idx, err := buildIndex(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create index client", zap.Error(err))
	}
	defer idx.Close()

	// Create use case services
	ingestSvc := ingestuc.New(idx).WithBatchSize(cfg.Index.BatchSize)
	querySvc := queryuc.New(idx).
		WithRerankModel(cfg.Index.RerankModel).
		WithDefaultTopK(cfg.Index.DefaultTopK)
	tenantSvc := tenantuc.New(idx)
	healthSvc := healthuc.New(idx)

	server := chiTransport.NewServer(ingestSvc, querySvc, tenantSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// buildIndex creates the index client for the configured driver.
func buildIndex(cfg config.Config, logger *zap.Logger) (index.Client, error) {
	switch cfg.Index.Driver {
	case "pinecone":
		return pinecone.New(pinecone.Config{
			APIKey:     cfg.Pinecone.APIKey,
			IndexHost:  cfg.Pinecone.IndexHost,
			ControlURL: cfg.Pinecone.ControlURL,
			Timeout:    time.Duration(cfg.Pinecone.TimeoutSec) * time.Second,
		})
	case "redis":
		embedder := openaiEmb.NewEmbedder(openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})

		idx, err := redis.New(redis.Config{
			Addrs:      cfg.Redis.Addrs,
			Password:   cfg.Redis.Password,
			KeyPrefix:  cfg.Redis.KeyPrefix,
			Dimensions: cfg.Embedding.Dimensions,
		}, embedder)
		if err != nil {
			return nil, err
		}

		readiness := time.Duration(cfg.Redis.ReadinessTimeout) * time.Second
		if err := idx.WaitForReady(context.Background(), readiness); err != nil {
			idx.Close()
			return nil, err
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		return idx, nil
	default:
		return nil, fmt.Errorf("unknown index driver %q", cfg.Index.Driver)
	}
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

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
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
