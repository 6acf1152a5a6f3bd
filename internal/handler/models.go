package handler

import (
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	"github.com/jonesrussell/stash/internal/history"
)

// contentListResponse wraps a content listing
type contentListResponse struct {
	Contents []models.Content `json:"contents"`
	Total    int              `json:"total"`
}

// versionListResponse wraps a version listing
type versionListResponse struct {
	Versions []models.Version `json:"versions"`
	Total    int              `json:"total"`
}

// createVersionRequest is the body for POST /api/contents/{id}/versions
type createVersionRequest struct {
	Comment string `json:"comment,omitempty"`
}

// revertRequest is the body for POST /api/contents/{id}/revert
type revertRequest struct {
	VersionID string `json:"version_id"`
}

// historyPushRequest is the body for POST /api/contents/{id}/history/push
type historyPushRequest struct {
	Content string `json:"content"`
}

// historyResponse reports the stack state after a history operation
type historyResponse struct {
	history.State
}

// suggestRequest is the body for POST /api/suggest
type suggestRequest struct {
	Content string `json:"content"`
}
