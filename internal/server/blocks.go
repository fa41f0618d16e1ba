package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/octoboard/octoboard/internal/blocks"
	"github.com/octoboard/octoboard/internal/sqlite"
)

const defaultSubTreeDepth = 2

// handleGetBlocks serves GET /api/v1/blocks?type= or ?parent_id=.
// Exactly one of the two query parameters must be given.
func (s *Server) handleGetBlocks(w http.ResponseWriter, r *http.Request) {
	blockType := r.URL.Query().Get("type")
	parentID := r.URL.Query().Get("parent_id")

	var (
		result []blocks.Block
		err    error
	)
	switch {
	case blockType != "" && parentID != "":
		s.writeError(w, http.StatusBadRequest, "type and parent_id are mutually exclusive")
		return
	case blockType != "":
		if !blocks.IsKnownType(blocks.Type(blockType)) {
			s.writeError(w, http.StatusBadRequest, "unknown block type: "+blockType)
			return
		}
		result, err = s.store.GetBlocksWithType(r.Context(), blocks.Type(blockType))
	case parentID != "":
		result, err = s.store.GetBlocksWithParent(r.Context(), parentID)
	default:
		s.writeError(w, http.StatusBadRequest, "type or parent_id is required")
		return
	}
	if err != nil {
		s.logger.Error("failed to list blocks", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list blocks")
		return
	}
	if result == nil {
		result = []blocks.Block{}
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetSubTree(w http.ResponseWriter, r *http.Request) {
	rootID := r.PathValue("id")
	depth := defaultSubTreeDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid depth: "+raw)
			return
		}
		depth = parsed
	}

	subtree, err := s.store.GetSubTree(r.Context(), rootID, depth)
	if err != nil {
		s.logger.Error("failed to get subtree", "rootID", rootID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get subtree")
		return
	}
	if subtree == nil {
		subtree = []blocks.Block{}
	}
	s.writeJSON(w, http.StatusOK, subtree)
}

// handlePostBlocks upserts a batch of blocks. Blocks of unknown type are
// skipped and counted rather than failing the batch.
func (s *Server) handlePostBlocks(w http.ResponseWriter, r *http.Request) {
	var batch []blocks.Block
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid block batch: "+err.Error())
		return
	}

	accepted := make([]blocks.Block, 0, len(batch))
	skipped := 0
	for _, b := range batch {
		if b.ID == "" {
			s.writeError(w, http.StatusBadRequest, "block is missing an id")
			return
		}
		if !blocks.IsKnownType(b.Type) {
			s.logger.Warn("skipping block of unknown type", "id", b.ID, "type", b.Type)
			skipped++
			continue
		}
		accepted = append(accepted, b)
	}

	if err := s.store.InsertBlocks(r.Context(), accepted); err != nil {
		s.logger.Error("failed to insert blocks", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to insert blocks")
		return
	}
	s.hub.BroadcastChanges(accepted)

	s.writeJSON(w, http.StatusOK, map[string]int{
		"inserted": len(accepted),
		"skipped":  skipped,
	})
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.store.DeleteBlock(r.Context(), id, time.Now().UnixMilli())
	if errors.Is(err, sqlite.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "block not found: "+id)
		return
	}
	if err != nil {
		s.logger.Error("failed to delete block", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete block")
		return
	}
	s.hub.BroadcastChanges(deleted)

	s.writeJSON(w, http.StatusOK, map[string]int{"deleted": len(deleted)})
}
