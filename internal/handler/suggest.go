package handler

import (
	"log/slog"
	"net/http"

	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
	"github.com/jonesrussell/stash/internal/httputil"
)

// SuggestHandler handles AI metadata suggestion requests
type SuggestHandler struct {
	suggester captureSvc.Suggester
	logger    *slog.Logger
}

// NewSuggestHandler creates a new suggest handler. A nil suggester means
// suggestions are disabled (no API key configured).
func NewSuggestHandler(suggester captureSvc.Suggester, logger *slog.Logger) *SuggestHandler {
	return &SuggestHandler{
		suggester: suggester,
		logger:    logger,
	}
}

// Suggest returns a proposed title, tags, and summary for pasted text
// POST /api/suggest
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	if h.suggester == nil {
		httputil.RespondError(w, http.StatusServiceUnavailable, "suggestions are not configured")
		return
	}

	var req suggestRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestion, err := h.suggester.Suggest(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, suggestion)
}
