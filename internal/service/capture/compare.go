package capture

import (
	"github.com/jonesrussell/stash/internal/diff"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"
)

// Compare diffs two versions of the same content. The lower version number
// is always treated as "old" regardless of argument order, so a diff reads
// old to new even when the caller selected the versions in reverse. Neither
// version is mutated.
func Compare(a, b *models.Version) *captureSvc.Comparison {
	old, new := a, b
	if old.VersionNumber > new.VersionNumber {
		old, new = new, old
	}

	onlyOld, onlyNew := diff.TagSets(old.Tags, new.Tags)

	return &captureSvc.Comparison{
		Old:         old,
		New:         new,
		Diff:        diff.Lines(old.Content, new.Content),
		TagsRemoved: onlyOld,
		TagsAdded:   onlyNew,
	}
}
