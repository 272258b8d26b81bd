package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"StockSandbox/internal/collector"
	"StockSandbox/internal/model"
	"StockSandbox/internal/recorder"
)

// Options configures the HTTP server.
type Options struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	DefaultWindow model.Window
}

// Server exposes generated series as JSON.
type Server struct {
	opts       Options
	source     *collector.SyntheticSource
	collector  *collector.Collector
	recorder   recorder.Recorder
	logger     zerolog.Logger
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates a server backed by the given synthetic source.
func NewServer(opts Options, src *collector.SyntheticSource, rec recorder.Recorder, logger zerolog.Logger) *Server {
	if opts.DefaultWindow == "" {
		opts.DefaultWindow = model.WindowMonth
	}
	s := &Server{
		opts:      opts,
		source:    src,
		collector: collector.NewCollector(src, logger),
		recorder:  rec,
		logger:    logger.With().Str("component", "api").Logger(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	apiV1 := s.router.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/series/{symbol}", s.handleGetSeries).Methods(http.MethodGet)
	apiV1.HandleFunc("/periods", s.handleGetPeriods).Methods(http.MethodGet)
	apiV1.HandleFunc("/symbols", s.handleGetSymbols).Methods(http.MethodGet)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens until Stop is called. It returns http.ErrServerClosed after a clean stop.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}
	s.logger.Info().Str("address", s.opts.Addr).Msg("starting HTTP server")
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info().Msg("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error().Interface("panic", err).Str("path", r.URL.Path).Msg("panic recovered")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
