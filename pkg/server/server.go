package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/chargeplan/chargeplan/pkg/controller"
	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/report"
	"github.com/chargeplan/chargeplan/pkg/storage"
	"github.com/levenlabs/go-lflag"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// maxRequestBodySize bounds charging request bodies.
const maxRequestBodySize = 1 << 20

// Server handles the HTTP API for computing, storing and exporting charging
// cost projections.
type Server struct {
	controller *controller.Controller
	storage    storage.Database
	reports    *report.Generator

	listenAddr string
	httpServer *http.Server
	serverName string

	// calcCache holds computed projections keyed by request body hash. nil
	// disables caching.
	calcCache *cache.Cache
	// limiter is nil when rate limiting is disabled.
	limiter *ipRateLimiter
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(c *controller.Controller, s storage.Database) *Server {
	srv := &Server{
		controller: c,
		storage:    s,
		reports:    report.NewGenerator(),
		serverName: "chargeplan",
	}
	revision := os.Getenv("K_REVISION")
	if revision != "" {
		srv.serverName = revision
	}

	// get the port from PORT when running in cloud run
	port := os.Getenv("PORT")
	if port == "" {
		// otherwise default to 8080
		port = "8080"
	}

	listenAddr := lflag.String("http-listen", ":"+port, "HTTP server listen address")
	rateLimit := lflag.Duration("rate-limit", 100*time.Millisecond, "Minimum average interval between API requests per client IP (0 disables rate limiting)")
	rateLimitBurst := lflag.Int("rate-limit-burst", 20, "Number of API requests a client IP may burst above the rate limit")
	calcCacheDuration := lflag.Duration("calculate-cache-duration", 10*time.Minute, "Duration to cache calculated projections by request body (0 disables caching)")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		if *rateLimit > 0 {
			if *rateLimitBurst <= 0 {
				panic(fmt.Sprintf("rate-limit-burst must be positive: %d", *rateLimitBurst))
			}
			srv.limiter = newIPRateLimiter(rate.Every(*rateLimit), *rateLimitBurst)
		}
		if d := *calcCacheDuration; d > 0 {
			srv.calcCache = cache.New(d, 2*d)
		}
	})

	return srv
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/calculate", s.handleCalculate)
	apiMux.HandleFunc("POST /api/projections", s.handleCreateProjection)
	apiMux.HandleFunc("GET /api/projections", s.handleListProjections)
	apiMux.HandleFunc("GET /api/projections/{id}", s.handleGetProjection)
	apiMux.HandleFunc("GET /api/projections/{id}/export", s.handleExportProjection)
	apiMux.HandleFunc("GET /api/rates", s.handleGetRates)
	apiMux.HandleFunc("GET /api/list/vehicle-classes", s.handleListVehicleClasses)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.rateLimitMiddleware(apiMux))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.revisionMiddleware(s.requestMiddleware(gziphandler.GzipHandler(s.securityHeadersMiddleware(mux))))
}

// Run starts the HTTP server and blocks until the context is canceled or an error occurs.
// It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	// use a channel to capturing server errors
	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		// Context canceled, shut down gracefully
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		slog.Warn("failed to write error response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func writeJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) revisionMiddleware(next http.Handler) http.Handler {
	if s.serverName == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}
