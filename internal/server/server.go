package server

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
	log "github.com/sirupsen/logrus"

	"healthdata/internal/dispatch"
)

// Config holds server dependencies.
type Config struct {
	Service         *dispatch.Service
	MetricsHandler  http.Handler // nil disables /metrics
	ShutdownTimeout time.Duration
}

type Server struct {
	Router chi.Router
	Config Config
}

func New(cfg Config) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Config: cfg}
	s.registerRoutes()
	return s
}

// Run serves on addr until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down server")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

func (s *Server) registerRoutes() {
	h := &Handler{Service: s.Config.Service}

	s.Router.Get("/healthz", HealthCheck)
	if s.Config.MetricsHandler != nil {
		s.Router.Method(http.MethodGet, "/metrics", s.Config.MetricsHandler)
	}

	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Get("/providers", h.ListProviders)
		r.Get("/providers/{id}", h.GetProvider)
		r.Get("/metrics", h.ListMetrics)
		r.Get("/resolve", h.Resolve)
		r.Get("/resolutions", h.ListResolutions)
	})
}

// RequestLogger logs method, path, status and duration of each request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": chimw.GetReqID(r.Context()),
		}).Debug("request")
	})
}
