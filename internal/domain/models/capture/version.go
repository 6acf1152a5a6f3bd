package capture

import (
	"time"
)

// Version is an immutable snapshot of a Content at a point in time.
// Versions are append-only: no update or reorder once created, and two
// versions of the same content never share a version number.
type Version struct {
	ID            string    `json:"id" db:"id"`
	ContentID     string    `json:"content_id" db:"content_id"`
	Content       string    `json:"content" db:"content"`
	VersionNumber int       `json:"version_number" db:"version_number"`
	Comment       string    `json:"comment,omitempty" db:"comment"`
	Tags          []string  `json:"tags" db:"tags"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Normalize fills defaults for nullable collection fields.
func (v *Version) Normalize() {
	if v.Tags == nil {
		v.Tags = []string{}
	}
}
