// Package server exposes the persisted catalog and family maps over a
// read-only HTTP API.
//
// Routes:
//
//	GET /healthz
//	GET /languages                      sorted language codes
//	GET /languages/{id}                 one catalog record
//	GET /languages/{id}/fallback-chain  codes from id to its root
//	GET /families                       sorted family codes
//	GET /families/{id}                  one family lineage
//
// The server only reads what a run has written; it never calls back into
// the resolvers.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lahtis/glfm/pkg/buildinfo"
	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/fallback"
	"github.com/lahtis/glfm/pkg/language"
)

const shutdownTimeout = 5 * time.Second

// Server serves one catalog and family map.
type Server struct {
	catalog  language.Catalog
	families language.FamilyMap
	logger   *log.Logger
}

// New creates a server. Nil maps are served as empty.
func New(catalog language.Catalog, families language.FamilyMap, logger *log.Logger) *Server {
	if catalog == nil {
		catalog = language.Catalog{}
	}
	if families == nil {
		families = language.FamilyMap{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{catalog: catalog, families: families, logger: logger}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Route("/languages", func(r chi.Router) {
		r.Get("/", s.listLanguages)
		r.Get("/{id}", s.getLanguage)
		r.Get("/{id}/fallback-chain", s.getFallbackChain)
	})
	r.Route("/families", func(r chi.Router) {
		r.Get("/", s.listFamilies)
		r.Get("/{id}", s.getFamily)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "languages", len(s.catalog), "families", len(s.families))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   buildinfo.Version,
		"languages": len(s.catalog),
		"families":  len(s.families),
	})
}

func (s *Server) listLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Codes())
}

func (s *Server) getLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := codeParam(w, r)
	if !ok {
		return
	}
	rec, ok := s.catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "language %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getFallbackChain(w http.ResponseWriter, r *http.Request) {
	id, ok := codeParam(w, r)
	if !ok {
		return
	}
	if _, ok := s.catalog.Get(id); !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "language %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, fallback.Chain(s.catalog, id))
}

func (s *Server) listFamilies(w http.ResponseWriter, _ *http.Request) {
	codes := make([]string, 0, len(s.families))
	for code := range s.families {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	writeJSON(w, http.StatusOK, codes)
}

func (s *Server) getFamily(w http.ResponseWriter, r *http.Request) {
	id, ok := codeParam(w, r)
	if !ok {
		return
	}
	l, ok := s.families[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "family %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// codeParam reads the {id} parameter, answering 400 when it is not a
// well-formed code.
func codeParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateCode(id); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			writeError(w, http.StatusBadRequest, e)
		}
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.Error) {
	writeJSON(w, status, err)
}
