package handler

import (
	"log/slog"
	"net/http"
	"time"

	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
	"github.com/jonesrussell/stash/internal/httputil"
)

// ContentHandler handles content HTTP requests
type ContentHandler struct {
	contentService captureSvc.ContentService
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService captureSvc.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// CreateContent creates a new content
// POST /api/contents
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req captureSvc.CreateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.UserID = userID

	content, err := h.contentService.CreateContent(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, content)
}

// ListContents lists the user's contents
// GET /api/contents?archived=true
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	includeArchived := r.URL.Query().Get("archived") == "true"

	contents, err := h.contentService.ListContents(r.Context(), userID, includeArchived)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contentListResponse{
		Contents: contents,
		Total:    len(contents),
	})
}

// SearchContents searches the user's contents
// GET /api/contents/search?q=...
func (h *ContentHandler) SearchContents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	contents, err := h.contentService.SearchContents(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contentListResponse{
		Contents: contents,
		Total:    len(contents),
	})
}

// GetContent retrieves a content by ID
// GET /api/contents/{id}
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	content, err := h.contentService.GetContent(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// UpdateContent updates a content
// PATCH /api/contents/{id}
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req captureSvc.UpdateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.contentService.UpdateContent(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// ArchiveContent soft-deletes a content
// POST /api/contents/{id}/archive
func (h *ContentHandler) ArchiveContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.contentService.ArchiveContent(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteContent permanently removes a content
// DELETE /api/contents/{id}
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteContent(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ContentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
