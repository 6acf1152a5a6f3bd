package capture

import (
	"context"

	"github.com/jonesrussell/stash/internal/domain/models/capture"
)

// ContentRepository defines data access operations for live contents.
type ContentRepository interface {
	// Create creates a new content row
	Create(ctx context.Context, content *capture.Content) error

	// GetByID retrieves a content by ID, scoped to its owner
	GetByID(ctx context.Context, id, userID string) (*capture.Content, error)

	// Update updates an existing content row
	Update(ctx context.Context, content *capture.Content) error

	// Archive soft-deletes a content via the archived flag
	Archive(ctx context.Context, id, userID string) error

	// Delete permanently removes a content and its versions
	Delete(ctx context.Context, id, userID string) error

	// List lists a user's contents newest-first. Archived contents are
	// excluded unless includeArchived is set.
	List(ctx context.Context, userID string, includeArchived bool) ([]capture.Content, error)

	// Search matches title, body, and tags case-insensitively
	Search(ctx context.Context, userID, query string) ([]capture.Content, error)
}
