package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchtips/internal/config"
	"github.com/yourusername/matchtips/internal/league"
	"github.com/yourusername/matchtips/internal/stats"
	"github.com/yourusername/matchtips/internal/tips"
)

// Server is the HTTP API server. It reads the statistics cache and delegates
// inference to the engine; it never writes the cache.
type Server struct {
	registry      *league.Registry
	cache         *stats.Store
	engine        *tips.Engine
	analysisCache *AnalysisCache
	logger        *logrus.Logger
	serviceName   string
	httpServer    *http.Server
}

// New creates the API server.
func New(cfg *config.Config, registry *league.Registry, cache *stats.Store, engine *tips.Engine, logger *logrus.Logger) *Server {
	s := &Server{
		registry:      registry,
		cache:         cache,
		engine:        engine,
		analysisCache: NewAnalysisCache(cfg.AnalysisCacheTTL()),
		logger:        logger,
		serviceName:   cfg.App.Name,
	}

	router := chi.NewRouter()
	router.Use(s.requestLogger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	router.Use(corsHandler.Handler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/leagues", s.handleLeagues)
	})

	router.Get("/health", s.handleHealth)
	router.Get("/live", s.handleHealth)
	router.Get("/ready", s.handleReady)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("API server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger tags every request with an ID and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.status,
			"duration":   time.Since(start).String(),
		}).Debug("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
