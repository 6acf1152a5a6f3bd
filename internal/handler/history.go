package handler

import (
	"log/slog"
	"net/http"

	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
	"github.com/jonesrussell/stash/internal/history"
	"github.com/jonesrussell/stash/internal/httputil"
)

// HistoryHandler drives a per-session undo/redo stack over HTTP. The stack
// is in-memory only; nothing here touches persistent storage beyond seeding
// a new session from the content's current body.
type HistoryHandler struct {
	sessions       *history.SessionRegistry
	contentService captureSvc.ContentService
	logger         *slog.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(
	sessions *history.SessionRegistry,
	contentService captureSvc.ContentService,
	logger *slog.Logger,
) *HistoryHandler {
	return &HistoryHandler{
		sessions:       sessions,
		contentService: contentService,
		logger:         logger,
	}
}

// stack fetches (or seeds) the session stack for the request's content.
func (h *HistoryHandler) stack(w http.ResponseWriter, r *http.Request) (*history.Stack, bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return nil, false
	}
	contentID, ok := requirePathID(w, r, "id")
	if !ok {
		return nil, false
	}

	content, err := h.contentService.GetContent(r.Context(), userID, contentID)
	if err != nil {
		handleError(w, err)
		return nil, false
	}

	return h.sessions.Get(userID, contentID, content.Content), true
}

// GetHistory reports the session's current stack state
// GET /api/contents/{id}/history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	stack, ok := h.stack(w, r)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, historyResponse{State: stack.Snapshot()})
}

// Push records an edit snapshot
// POST /api/contents/{id}/history/push
func (h *HistoryHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req historyPushRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stack, ok := h.stack(w, r)
	if !ok {
		return
	}

	stack.Push(req.Content)
	httputil.RespondJSON(w, http.StatusOK, historyResponse{State: stack.Snapshot()})
}

// Undo steps the session back one snapshot. At the beginning of history
// this is a no-op, not an error.
// POST /api/contents/{id}/history/undo
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	stack, ok := h.stack(w, r)
	if !ok {
		return
	}

	stack.Undo()
	httputil.RespondJSON(w, http.StatusOK, historyResponse{State: stack.Snapshot()})
}

// Redo steps the session forward one snapshot
// POST /api/contents/{id}/history/redo
func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	stack, ok := h.stack(w, r)
	if !ok {
		return
	}

	stack.Redo()
	httputil.RespondJSON(w, http.StatusOK, historyResponse{State: stack.Snapshot()})
}

// EndSession discards the session's history entirely
// DELETE /api/contents/{id}/history
func (h *HistoryHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	contentID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	h.sessions.Drop(userID, contentID)
	w.WriteHeader(http.StatusNoContent)
}
