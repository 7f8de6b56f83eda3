// Package server exposes the roadmap catalog over HTTP.
//
// Routes live under /api and mirror the read paths the TUI consumes:
// the roadmap, the per-level detail bundle, the industry insights, and
// flat listings of skills, courses, projects and roles.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rvanmaanen/skillpath/internal/store"
	"github.com/rvanmaanen/skillpath/pkg/version"
)

// Server wires the catalog store into an HTTP handler.
type Server struct {
	store  *store.Store
	logger *zap.Logger
}

// New creates a server around an opened store.
func New(st *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{store: st, logger: logger}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("", s.handleRoot).Methods("GET")
	api.HandleFunc("/", s.handleRoot).Methods("GET")
	api.HandleFunc("/roadmap", s.handleRoadmap).Methods("GET")
	api.HandleFunc("/roadmap/level/{id}", s.handleLevelDetail).Methods("GET")
	api.HandleFunc("/skills", s.handleSkills).Methods("GET")
	api.HandleFunc("/courses", s.handleCourses).Methods("GET")
	api.HandleFunc("/projects", s.handleProjects).Methods("GET")
	api.HandleFunc("/roles", s.handleRoles).Methods("GET")
	api.HandleFunc("/industry-insights", s.handleInsights).Methods("GET")

	r.Use(s.logRequests, allowCORS)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// with a short grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening",
			zap.String("addr", addr),
			zap.String("version", version.Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
