// Package api serves maps and position recalculation over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /maps
//	POST   /maps                      {"name": "..."}
//	GET    /maps/{id}
//	PATCH  /maps/{id}                 {"name": "..."}
//	DELETE /maps/{id}
//	PUT    /maps/{id}/pois            [POI, ...]
//	POST   /maps/{id}/recalculate     ?save=true&refresh=true
//	GET    /maps/{id}/graph           ?format=dot|svg&detailed=true
//	POST   /recalculate               [POI, ...]
//	POST   /validate                  {"records": [...], "pois": [...], "poi": {...}}
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/poimap/pkg/pipeline"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by runner. The runner must have a store for
// the /maps routes.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger.WithPrefix("api")}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.health)

	r.Route("/maps", func(r chi.Router) {
		r.Get("/", s.listMaps)
		r.Post("/", s.createMap)
		r.Route("/{mapID}", func(r chi.Router) {
			r.Get("/", s.getMap)
			r.Patch("/", s.renameMap)
			r.Delete("/", s.deleteMap)
			r.Put("/pois", s.putPOIs)
			r.Post("/recalculate", s.recalculateMap)
			r.Get("/graph", s.graph)
		})
	})

	r.Post("/recalculate", s.recalculate)
	r.Post("/validate", s.validate)

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
