package capture

import (
	"time"
)

// Content is the live, editable note owned by a user. Tags and Attachments
// are normalized at the repository boundary: never nil, tags deduped.
type Content struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Title         string    `json:"title" db:"title"` // optional, may be empty
	Content       string    `json:"content" db:"content"`
	Tags          []string  `json:"tags" db:"tags"`
	Attachments   []string  `json:"attachments" db:"attachments"` // ordered external resource URLs
	VersionNumber int       `json:"version_number" db:"version_number"`
	Archived      bool      `json:"archived" db:"archived"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Normalize fills defaults for fields that may arrive null or zero from the
// store, so callers never deal with maybe-nil collections.
func (c *Content) Normalize() {
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Attachments == nil {
		c.Attachments = []string{}
	}
	if c.VersionNumber < 1 {
		c.VersionNumber = 1
	}
}
