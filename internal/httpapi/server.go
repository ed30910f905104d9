// Package httpapi exposes structurization as an HTTP service: POST a CFG
// fixture, get back the structured graph and diagnostics, and look up past
// runs by id. Routing is a chi.Router, following the retry/cache
// conventions of pkg/httputil carried over into request handling
// (namespaced cache keys, explicit miss-vs-error returns).
package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ardenhollis/structurize/pkg/audit"
	"github.com/ardenhollis/structurize/pkg/cache"
)

// Server holds the dependencies every handler needs.
type Server struct {
	Logger *log.Logger
	Cache  cache.Cache
	Audit  audit.Store
}

// New creates a Server. cache and store may be nil-free stand-ins
// (cache.NewNullCache(), audit.NewMemoryStore()) for standalone use.
func New(logger *log.Logger, c cache.Cache, store audit.Store) *Server {
	return &Server{Logger: logger, Cache: c, Audit: store}
}

// Router builds the route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/structurize", s.handleStructurize)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Get("/healthz", s.handleHealthz)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Infof("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
