// Package server is the HTTP front door: every request except /metrics is
// checked against one rate limiter before it is routed.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/config"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter"
	httplimiter "github.com/momahgoub172/rate-limiting-algorithms/pkg/ratelimiter"
)

type Server struct {
	cfg    config.ServerConfig
	http   *http.Server
	logger *zap.Logger
}

func New(cfg config.ServerConfig, limiter ratelimiter.RateLimiter, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(limiter, gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter serves 200 on GET / and 404 on anything else, after the limiter
// has admitted the request. /metrics bypasses the limiter.
func NewRouter(limiter ratelimiter.RateLimiter, gatherer prometheus.Gatherer) http.Handler {
	limit := httplimiter.Middleware(&httplimiter.Config{Limiter: limiter})
	notFound := limit(http.HandlerFunc(http.NotFound))

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.With(limit).Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.NotFound(notFound.ServeHTTP)
	r.MethodNotAllowed(notFound.ServeHTTP)
	return r
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down server")
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
