package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonesrussell/stash/internal/domain"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
)

// RevertState is the workflow's observable state.
type RevertState string

const (
	RevertIdle      RevertState = "idle"
	RevertReverting RevertState = "reverting"
	RevertError     RevertState = "error"
)

// RevertWorkflow promotes a prior version to be the content's live body.
// Transitions: idle -> reverting -> idle on success, or
// idle -> reverting -> error -> idle on failure with no state applied.
//
// A successful revert always records itself as a new version, so history is
// never silently lost: reverting to version N on a content at version M
// produces version M+1 whose body equals version N's.
type RevertWorkflow struct {
	versions captureSvc.VersionService

	mu     sync.Mutex
	states map[string]RevertState // keyed by content ID
	logger *slog.Logger
}

// NewRevertWorkflow creates a revert workflow over the version service.
func NewRevertWorkflow(versions captureSvc.VersionService, logger *slog.Logger) *RevertWorkflow {
	return &RevertWorkflow{
		versions: versions,
		states:   make(map[string]RevertState),
		logger:   logger,
	}
}

// State returns the workflow state for a content.
func (w *RevertWorkflow) State(contentID string) RevertState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if state, ok := w.states[contentID]; ok {
		return state
	}
	return RevertIdle
}

// Revert restores the chosen version as the content's live body and records
// the restore as a new version. Only one revert per content may be in
// flight; a second concurrent request fails the precondition.
func (w *RevertWorkflow) Revert(ctx context.Context, userID, contentID, versionID string) (*models.Content, error) {
	if err := w.enter(contentID); err != nil {
		return nil, err
	}

	content, restored, err := w.versions.RevertToVersion(ctx, userID, contentID, versionID)
	if err != nil {
		w.fail(contentID)
		return nil, err
	}

	// Record the revert itself so the pre-revert state stays reachable
	version, err := w.versions.CreateVersion(ctx, userID, contentID,
		fmt.Sprintf("reverted to version %d", restored.VersionNumber))
	if err != nil {
		w.fail(contentID)
		return nil, err
	}
	content.VersionNumber = version.VersionNumber

	w.finish(contentID)
	return content, nil
}

// enter transitions idle -> reverting, rejecting overlapping reverts.
func (w *RevertWorkflow) enter(contentID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.states[contentID] == RevertReverting {
		return &domain.PreconditionError{Message: "a revert is already in flight for this content"}
	}
	w.states[contentID] = RevertReverting
	return nil
}

// fail transitions reverting -> error -> idle. The error state is
// observable only through the surfaced error; the map returns to idle so
// the caller can retry.
func (w *RevertWorkflow) fail(contentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.logger.Warn("revert failed", "content_id", contentID)
	delete(w.states, contentID)
}

func (w *RevertWorkflow) finish(contentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.states, contentID)
}
