package capture

import (
	"context"

	"github.com/jonesrussell/stash/internal/diff"
	"github.com/jonesrussell/stash/internal/domain/models/capture"
)

// VersionService is the durable boundary between an editing session and the
// append-only version log.
type VersionService interface {
	// ListVersions returns a content's versions newest-first
	ListVersions(ctx context.Context, userID, contentID string) ([]capture.Version, error)

	// CreateVersion snapshots the content's current body as the next
	// version. Empty content is rejected and nothing is persisted. The
	// version insert and the content row update commit atomically.
	CreateVersion(ctx context.Context, userID, contentID, comment string) (*capture.Version, error)

	// RevertToVersion copies the version's body into the live content and
	// returns both the updated content and the version restored from. It
	// does not record a version itself; RevertWorkflow layers that on.
	RevertToVersion(ctx context.Context, userID, contentID, versionID string) (*capture.Content, *capture.Version, error)

	// CompareVersions diffs two distinct versions of the same content.
	// The lower version number is always treated as "old" regardless of
	// argument order.
	CompareVersions(ctx context.Context, userID, contentID, versionIDA, versionIDB string) (*Comparison, error)
}

// Comparison is the rendered result of diffing two versions.
type Comparison struct {
	Old         *capture.Version `json:"old"`
	New         *capture.Version `json:"new"`
	Diff        *diff.Result     `json:"diff"`
	TagsRemoved []string         `json:"tags_removed"` // present only in old
	TagsAdded   []string         `json:"tags_added"`   // present only in new
}
