package server

import (
	"net/http"

	"github.com/octoboard/octoboard/internal/archive"
	"github.com/octoboard/octoboard/internal/blocks"
)

// handleExport streams the whole store as an archive. Board blocks become
// board records, everything else becomes block records. Tombstones are not
// exported.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.GetAllBlocks(r.Context())
	if err != nil {
		s.logger.Error("failed to export blocks", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to export blocks")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", `attachment; filename="export`+archive.Extension+`"`)

	writer := archive.NewWriter(w)
	if err := writer.WriteHeader(); err != nil {
		s.logger.Error("failed to write archive header", "error", err)
		return
	}
	for _, b := range all {
		if !b.IsLive() {
			continue
		}
		if b.Type == blocks.TypeBoard {
			err = writer.WriteBoard(b)
		} else {
			err = writer.WriteBlock(b)
		}
		if err != nil {
			s.logger.Error("failed to write archive record", "id", b.ID, "error", err)
			return
		}
	}
}

// handleImport reads an archive from the request body and upserts its
// records into the store. Records of unknown block type are skipped and
// counted rather than failing the import.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	boards, blockSet, err := archive.ParseReader(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid archive: "+err.Error())
		return
	}

	accepted := make([]blocks.Block, 0, len(boards)+len(blockSet))
	skipped := 0
	acceptedBoards := 0
	for _, b := range append(boards, blockSet...) {
		if !blocks.IsKnownType(b.Type) {
			s.logger.Warn("skipping archive record of unknown type", "id", b.ID, "type", b.Type)
			skipped++
			continue
		}
		if b.Type == blocks.TypeBoard {
			acceptedBoards++
		}
		accepted = append(accepted, b)
	}

	if err := s.store.InsertBlocks(r.Context(), accepted); err != nil {
		s.logger.Error("failed to import blocks", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to import blocks")
		return
	}
	s.hub.BroadcastChanges(accepted)

	s.writeJSON(w, http.StatusOK, map[string]int{
		"boards":  acceptedBoards,
		"blocks":  len(accepted) - acceptedBoards,
		"skipped": skipped,
	})
}
