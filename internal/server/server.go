// Package server exposes detection and grading over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/abhisek/erdgrade/internal/config"
	"github.com/abhisek/erdgrade/internal/detect"
	"github.com/abhisek/erdgrade/internal/feedback"
	"github.com/abhisek/erdgrade/internal/grading"
	"github.com/abhisek/erdgrade/internal/llm"
	"github.com/abhisek/erdgrade/internal/metrics"
)

// RunIDHeader carries the ID that tags a request's model calls in the
// event log.
const RunIDHeader = "X-Run-ID"

// Server wires the HTTP routes to the grading pipeline.
type Server struct {
	cfg      config.Config
	version  string
	grader   *grading.Grader
	detector *detect.Detector
	renderer *feedback.Renderer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Options are the collaborators a Server needs. Provider may be nil, in
// which case detection is unavailable and feedback uses the template.
type Options struct {
	Provider llm.Provider
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Version  string
}

// New creates a Server.
func New(cfg config.Config, opts Options) *Server {
	s := &Server{
		cfg:     cfg,
		version: opts.Version,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.version == "" {
		s.version = "dev"
	}
	s.grader = grading.New(grading.WithLogger(s.logger))
	if opts.Provider != nil {
		s.detector = detect.NewDetector(opts.Provider, detect.DefaultConfig(), s.logger)
		s.renderer = feedback.NewRenderer(opts.Provider, feedback.DefaultConfig(), s.logger)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{RunIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(s.cfg.BodyLimitBytes()))
		if s.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		}
		r.Use(runID)
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Post("/detect-erd", s.handleDetectERD)
		r.Post("/detect-rubric", s.handleDetectRubric)
		r.Post("/autograde-erd", s.handleAutograde)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.HTTPAddr, "version", s.version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// runID assigns each request a UUID that is echoed in the response and
// attached to every model call the request makes.
func runID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RunIDHeader, id)
		next.ServeHTTP(w, r.WithContext(llm.WithRunID(r.Context(), id)))
	})
}
