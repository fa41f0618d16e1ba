// Package server exposes the block store over HTTP: a JSON REST API for
// block reads and writes, archive export/import, and a websocket endpoint
// for change notifications.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/octoboard/octoboard/internal/blocks"
	"github.com/octoboard/octoboard/internal/ws"
)

// Store is the persistence surface the server needs.
type Store interface {
	InsertBlocks(ctx context.Context, blockSet []blocks.Block) error
	GetSubTree(ctx context.Context, rootID string, depth int) ([]blocks.Block, error)
	GetBlocksWithType(ctx context.Context, blockType blocks.Type) ([]blocks.Block, error)
	GetBlocksWithParent(ctx context.Context, parentID string) ([]blocks.Block, error)
	GetAllBlocks(ctx context.Context) ([]blocks.Block, error)
	DeleteBlock(ctx context.Context, id string, deleteAt int64) ([]blocks.Block, error)
}

// Server routes block API requests to the store and notifies websocket
// listeners of every persisted change.
type Server struct {
	store  Store
	hub    *ws.Hub
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates a Server with all routes registered.
func New(store Store, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		hub:    ws.NewHub(logger),
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/blocks", s.handleGetBlocks)
	s.mux.HandleFunc("POST /api/v1/blocks", s.handlePostBlocks)
	s.mux.HandleFunc("GET /api/v1/blocks/export", s.handleExport)
	s.mux.HandleFunc("POST /api/v1/blocks/import", s.handleImport)
	s.mux.HandleFunc("GET /api/v1/blocks/{id}/subtree", s.handleGetSubTree)
	s.mux.HandleFunc("DELETE /api/v1/blocks/{id}", s.handleDeleteBlock)
	s.mux.Handle("GET /ws/onchange", s.hub)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handle registers an extra handler on the server mux, for mounting
// additional surfaces such as the MCP endpoint.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
