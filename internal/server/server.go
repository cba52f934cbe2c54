// Package server implements the mypoly HTTP preview server.
//
// Every request decodes its own customization state from the query string,
// so handlers share nothing mutable but the artifact cache. Routes:
//
//	GET /healthz
//	GET /catalog              categories, options, palettes and shape params
//	GET /avatar.{svg,png,toml}
//	GET /model.{svg,png,toml,json,obj,mtl,dot,tree.svg}
//
// Query parameters map onto state mutators: a category name selects an
// option (?hair=hair-2), color.<slot> sets a color (?color.skin=8D5524) and
// a shape parameter name sets it (?height=1.2). seed randomizes the state
// before the explicit values are applied. w, h, yaw and detailed tune the
// render. Validation errors answer 400 with the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mypoly/pkg/buildinfo"
	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = "127.0.0.1:8420"

	// VersionHeader carries buildinfo.Short on every response.
	VersionHeader = "X-Mypoly-Version"

	// CacheHeader reports HIT or MISS for rendered artifacts.
	CacheHeader = "X-Cache"

	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves avatar previews.
type Server struct {
	catalog *catalog.Catalog
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
}

// New creates a server rendering through runner. A nil catalog uses
// catalog.Default.
func New(cat *catalog.Catalog, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cat == nil {
		cat = catalog.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{catalog: cat, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "image/svg+xml", "application/json", "application/toml", "model/obj", "model/mtl", "text/vnd.graphviz"))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(versionHeader)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/catalog", s.handleCatalog)

	for _, format := range pipeline.Formats(catalog.Flat) {
		r.Get("/avatar."+format, s.handleArtifact(catalog.Flat, format))
	}
	for _, format := range pipeline.Formats(catalog.Solid) {
		r.Get("/model."+format, s.handleArtifact(catalog.Solid, format))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, notFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr, "version", buildinfo.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down preview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// =============================================================================
// Middleware
// =============================================================================

func versionHeader(next http.Handler) http.Handler {
	short := buildinfo.Short()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(VersionHeader, short)
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
