package handler

import (
	"log/slog"
	"net/http"

	serviceCapture "github.com/jonesrussell/stash/internal/service/capture"

	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
	"github.com/jonesrussell/stash/internal/httputil"
)

// VersionHandler handles version HTTP requests
type VersionHandler struct {
	versionService captureSvc.VersionService
	revertWorkflow *serviceCapture.RevertWorkflow
	logger         *slog.Logger
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(
	versionService captureSvc.VersionService,
	revertWorkflow *serviceCapture.RevertWorkflow,
	logger *slog.Logger,
) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		revertWorkflow: revertWorkflow,
		logger:         logger,
	}
}

// ListVersions lists a content's versions newest-first
// GET /api/contents/{id}/versions
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	contentID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	versions, err := h.versionService.ListVersions(r.Context(), userID, contentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versionListResponse{
		Versions: versions,
		Total:    len(versions),
	})
}

// CreateVersion snapshots the content's current body as a new version
// POST /api/contents/{id}/versions
func (h *VersionHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	contentID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req createVersionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	version, err := h.versionService.CreateVersion(r.Context(), userID, contentID, req.Comment)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, version)
}

// CompareVersions diffs two distinct versions of a content
// GET /api/contents/{id}/versions/compare?from={versionID}&to={versionID}
//
// The lower version number always renders as "old" regardless of which
// query parameter carried it.
func (h *VersionHandler) CompareVersions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	contentID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		httputil.RespondError(w, http.StatusBadRequest, "from and to version IDs are required")
		return
	}

	comparison, err := h.versionService.CompareVersions(r.Context(), userID, contentID, from, to)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comparison)
}

// Revert restores a prior version as the content's live body
// POST /api/contents/{id}/revert
func (h *VersionHandler) Revert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	contentID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req revertRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.VersionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "version_id is required")
		return
	}

	content, err := h.revertWorkflow.Revert(r.Context(), userID, contentID, req.VersionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}
