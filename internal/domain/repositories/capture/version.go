package capture

import (
	"context"

	"github.com/jonesrussell/stash/internal/domain/models/capture"
)

// VersionRepository defines data access for the append-only version log.
// There are deliberately no update or delete operations: a version row is
// immutable once inserted.
type VersionRepository interface {
	// Insert appends a new version snapshot
	Insert(ctx context.Context, version *capture.Version) error

	// GetByID retrieves a single version
	GetByID(ctx context.Context, id string) (*capture.Version, error)

	// ListByContent returns versions for a content ordered by created_at
	// descending (newest first)
	ListByContent(ctx context.Context, contentID string) ([]capture.Version, error)

	// CountByContent returns the number of versions recorded for a content
	CountByContent(ctx context.Context, contentID string) (int, error)
}
