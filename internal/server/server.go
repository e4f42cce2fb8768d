// Package server provides the HTTP API over the section manifest.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/shiori/internal/config"
	"github.com/hyperjump/shiori/internal/frameworks"
	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/query"
	"github.com/hyperjump/shiori/internal/viewer"
	"go.uber.org/zap"
)

// Server is the HTTP server for the section search API. The manifest it
// serves can be swapped atomically when the corpus is rebuilt.
type Server struct {
	engine     *query.Engine
	frameworks *frameworks.Table // may be nil when no table is configured
	links      *viewer.Links
	config     *config.Config
	logger     *zap.Logger
	server     *http.Server

	mu       sync.RWMutex
	manifest models.Manifest // nil until a manifest is loaded
}

// NewServer creates a server with the given dependencies. frameworksTable
// may be nil; the resolve endpoint then reports it as unavailable.
func NewServer(
	engine *query.Engine,
	frameworksTable *frameworks.Table,
	links *viewer.Links,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:     engine,
		frameworks: frameworksTable,
		links:      links,
		config:     cfg,
		logger:     logger,
	}
}

// SetManifest replaces the manifest served to queries. Safe to call while
// the server is running.
func (s *Server) SetManifest(m models.Manifest) {
	s.mu.Lock()
	s.manifest = m
	s.mu.Unlock()
}

// Manifest returns the currently served manifest, or nil when none is loaded.
func (s *Server) Manifest() models.Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manifest
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/resolve", s.handleResolve)
	r.Get("/api/v1/documents", s.handleDocuments)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
