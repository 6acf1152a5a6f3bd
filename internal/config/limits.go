package config

const (
	// MaxTitleLength is the maximum length for content titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxTagLength is the maximum length of a single tag.
	MaxTagLength = 64

	// MaxTagsPerContent is the maximum number of tags on one content.
	MaxTagsPerContent = 20

	// MaxVersionCommentLength is the maximum length for a version comment.
	MaxVersionCommentLength = 500

	// MaxContentBytes caps the size of a single content body. Matches the
	// request body limit enforced in httputil.ParseJSON.
	MaxContentBytes = 10 << 20

	// MaxHistoryEntries bounds the in-memory undo/redo stack per editing
	// session. Oldest entries are evicted once the cap is reached.
	MaxHistoryEntries = 500
)
