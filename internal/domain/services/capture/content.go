package capture

import (
	"context"

	"github.com/jonesrussell/stash/internal/domain/models/capture"
)

// ContentService handles business logic for live contents.
type ContentService interface {
	// CreateContent creates a new content and records its first version
	CreateContent(ctx context.Context, req *CreateContentRequest) (*capture.Content, error)

	// GetContent retrieves a content
	// userID is used for authorization check
	GetContent(ctx context.Context, userID, contentID string) (*capture.Content, error)

	// UpdateContent updates a content's title, body, tags, or attachments
	UpdateContent(ctx context.Context, userID, contentID string, req *UpdateContentRequest) (*capture.Content, error)

	// ArchiveContent soft-deletes a content
	ArchiveContent(ctx context.Context, userID, contentID string) error

	// DeleteContent permanently removes a content and its version log
	DeleteContent(ctx context.Context, userID, contentID string) error

	// ListContents lists a user's contents newest-first
	ListContents(ctx context.Context, userID string, includeArchived bool) ([]capture.Content, error)

	// SearchContents matches title, body, and tags
	SearchContents(ctx context.Context, userID, query string) ([]capture.Content, error)
}

// CreateContentRequest represents a content creation request
type CreateContentRequest struct {
	UserID      string   `json:"-"` // Set by handler from auth context, not from request body
	Title       string   `json:"title"`
	Content     string   `json:"content"` // required, non-empty
	Tags        []string `json:"tags,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// UpdateContentRequest represents a content update request. Nil fields are
// left unchanged.
type UpdateContentRequest struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Attachments *[]string `json:"attachments,omitempty"`
}
