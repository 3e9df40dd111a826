// Package server exposes the analysis core and the document store over HTTP.
// The API mirrors the review UI's needs: segmentation and analysis of pasted
// text, document CRUD, and report export.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avoronov/clauselint/internal/model"
	"github.com/avoronov/clauselint/internal/pipeline"
	"github.com/avoronov/clauselint/internal/store"
	"github.com/avoronov/clauselint/internal/worker"
)

// Server wires the router, middleware, pipeline and store together.
type Server struct {
	router   *mux.Router
	handler  http.Handler
	pipeline *pipeline.Pipeline
	store    store.Store
	cfg      *model.Config
}

// New creates a server over the given store and pipeline.
func New(cfg *model.Config, st store.Store, p *pipeline.Pipeline) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		pipeline: p,
		store:    st,
		cfg:      cfg,
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/segment", s.handleSegment).Methods(http.MethodPost)
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)

	api.HandleFunc("/documents", s.handleCreateDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents", s.handleListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id:[0-9]+}", s.handleGetDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id:[0-9]+}", s.handleUpdateDocument).Methods(http.MethodPut)
	api.HandleFunc("/documents/{id:[0-9]+}", s.handleDeleteDocument).Methods(http.MethodDelete)
	api.HandleFunc("/documents/{id:[0-9]+}/analyze", s.handleAnalyzeDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id:[0-9]+}/report", s.handleDocumentReport).Methods(http.MethodGet)

	// The chain wraps the router, not the routes, so CORS preflights and rate
	// limiting apply before route matching.
	var handler http.Handler = s.router
	if cfg.Server.RateLimit > 0 {
		handler = RateLimit(worker.NewLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst))(handler)
	}
	handler = CORS(cfg.Server.CORSOrigins)(handler)
	handler = Recoverer(handler)
	handler = Logger(handler)
	s.handler = handler

	return s
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.handler }

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving clauselint API on %s", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.WriteTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
