// Package server exposes the capacity engine as a JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexiusacademia/rcflex/internal/config"
	"github.com/alexiusacademia/rcflex/internal/log"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// statusRecorder keeps the status, size and error of a response for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
	err    error
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// recordError attaches a handler error to the request log line
func recordError(w http.ResponseWriter, err error) {
	if rec, ok := w.(*statusRecorder); ok {
		rec.err = err
	}
}

// RequestLogger assigns a request ID and logs each request
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, r)

		log.LogHTTPRequest(log.HTTPRequest{
			RequestID:  id,
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rec.status,
			Duration:   time.Since(start),
			Size:       rec.size,
			RemoteAddr: r.RemoteAddr,
			Err:        rec.err,
		})
	})
}

// NewRouter registers the API routes
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger)

	router.HandleFunc("/healthz", h.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/evaluate", h.Evaluate).Methods("POST")
	api.HandleFunc("/layout", h.Layout).Methods("POST")
	api.HandleFunc("/bars", h.Bars).Methods("GET")
	// designations contain slashes, e.g. 5/8"
	api.HandleFunc("/bars/{designation:.+}", h.Bar).Methods("GET")

	return router
}

// Server is the HTTP server for the API
type Server struct {
	http *http.Server
}

// New creates a server listening on the configured address
func New(catalog *steel.Catalog, cfg config.Config) *Server {
	h := &Handler{Catalog: catalog, Config: cfg}
	return &Server{
		http: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          zap.NewStdLog(log.GetZapLogger()),
		},
	}
}

// Run serves until ctx is cancelled, then shuts down within 5 seconds
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Infof("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
