package api

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/logger"
	"github.com/hpungsan/sift/internal/metrics"
)

//go:embed docs/api.md
var docsFS embed.FS

// NewServer creates and configures the HTTP server for the Sift API.
func NewServer(db *sql.DB, cfg *config.Config, log *zap.Logger, version string) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           NewHandler(db, cfg, log, version),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed handler with the full middleware chain.
func NewHandler(db *sql.DB, cfg *config.Config, log *zap.Logger, version string) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	h := &Handlers{
		db:      db,
		cfg:     cfg,
		log:     log,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax. The literal
	// filter-by-natural-language route wins over the {value} wildcard.
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /strings", h.HandleCreate)
	mux.HandleFunc("GET /strings", h.HandleFilter)
	mux.HandleFunc("GET /strings/filter-by-natural-language", h.HandleQuery)
	mux.HandleFunc("GET /strings/{value}", h.HandleFetch)
	mux.HandleFunc("DELETE /strings/{value}", h.HandleDelete)

	var handler http.Handler = mux
	if cfg.RateLimitPerMinute > 0 {
		handler = newRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst).Middleware(handler)
	}
	handler = securityHeaders(handler)
	handler = cors(handler)
	handler = metrics.Middleware(handler)
	handler = accessLog(log)(handler)
	handler = processTime(handler)
	handler = requestID(handler)

	return handler
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log *zap.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("sift API listening", zap.String("addr", "http://"+srv.Addr))

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
