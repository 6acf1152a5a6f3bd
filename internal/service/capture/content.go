package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonesrussell/stash/internal/config"
	"github.com/jonesrussell/stash/internal/domain"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	captureRepo "github.com/jonesrussell/stash/internal/domain/repositories/capture"
	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// contentService implements the ContentService interface
type contentService struct {
	contentRepo captureRepo.ContentRepository
	versions    captureSvc.VersionService
	logger      *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(
	contentRepo captureRepo.ContentRepository,
	versions captureSvc.VersionService,
	logger *slog.Logger,
) captureSvc.ContentService {
	return &contentService{
		contentRepo: contentRepo,
		versions:    versions,
		logger:      logger,
	}
}

// CreateContent creates a new content and records version 1
func (s *contentService) CreateContent(ctx context.Context, req *captureSvc.CreateContentRequest) (*models.Content, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	content := &models.Content{
		UserID:        req.UserID,
		Title:         strings.TrimSpace(req.Title),
		Content:       req.Content,
		Tags:          normalizeTags(req.Tags),
		Attachments:   req.Attachments,
		VersionNumber: 1,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	// Seed the version log so version_number mirrors the version count
	// from the very first save
	if _, err := s.versions.CreateVersion(ctx, req.UserID, content.ID, "initial"); err != nil {
		return nil, err
	}

	s.logger.Info("content created",
		"content_id", content.ID,
		"user_id", req.UserID,
	)

	return content, nil
}

// GetContent retrieves a content
func (s *contentService) GetContent(ctx context.Context, userID, contentID string) (*models.Content, error) {
	return s.contentRepo.GetByID(ctx, contentID, userID)
}

// UpdateContent updates a content's title, body, tags, or attachments.
// Nil request fields are left unchanged. Updating does not record a
// version; the caller versions explicitly via the version endpoints.
func (s *contentService) UpdateContent(ctx context.Context, userID, contentID string, req *captureSvc.UpdateContentRequest) (*models.Content, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	content, err := s.contentRepo.GetByID(ctx, contentID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		content.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		content.Content = *req.Content
	}
	if req.Tags != nil {
		content.Tags = normalizeTags(*req.Tags)
	}
	if req.Attachments != nil {
		content.Attachments = *req.Attachments
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	return content, nil
}

// ArchiveContent soft-deletes a content
func (s *contentService) ArchiveContent(ctx context.Context, userID, contentID string) error {
	return s.contentRepo.Archive(ctx, contentID, userID)
}

// DeleteContent permanently removes a content and its version log
func (s *contentService) DeleteContent(ctx context.Context, userID, contentID string) error {
	if err := s.contentRepo.Delete(ctx, contentID, userID); err != nil {
		return err
	}

	s.logger.Info("content deleted", "content_id", contentID, "user_id", userID)
	return nil
}

// ListContents lists a user's contents newest-first
func (s *contentService) ListContents(ctx context.Context, userID string, includeArchived bool) ([]models.Content, error) {
	return s.contentRepo.List(ctx, userID, includeArchived)
}

// SearchContents matches title, body, and tags
func (s *contentService) SearchContents(ctx context.Context, userID, query string) ([]models.Content, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}

	return s.contentRepo.Search(ctx, userID, query)
}

// validateCreateRequest validates a create content request
func (s *contentService) validateCreateRequest(req *captureSvc.CreateContentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Content, validation.Required, validation.By(notBlank)),
		validation.Field(&req.Title, validation.Length(0, config.MaxTitleLength)),
		validation.Field(&req.Tags,
			validation.Length(0, config.MaxTagsPerContent),
			validation.Each(validation.Required, validation.Length(1, config.MaxTagLength)),
		),
	)
}

// validateUpdateRequest validates an update content request
func (s *contentService) validateUpdateRequest(req *captureSvc.UpdateContentRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Length(0, config.MaxTitleLength)),
	)
	if err != nil {
		return err
	}

	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return fmt.Errorf("content cannot be blank")
	}
	if req.Tags != nil {
		if len(*req.Tags) > config.MaxTagsPerContent {
			return fmt.Errorf("at most %d tags allowed", config.MaxTagsPerContent)
		}
		for _, tag := range *req.Tags {
			if strings.TrimSpace(tag) == "" {
				return fmt.Errorf("tags cannot be blank")
			}
			if len(tag) > config.MaxTagLength {
				return fmt.Errorf("tag %q exceeds %d characters", tag, config.MaxTagLength)
			}
		}
	}

	return nil
}

// notBlank rejects strings that are empty after trimming
func notBlank(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// normalizeTags trims, drops empties, and dedupes while preserving the
// first occurrence's position (display order may matter to the client).
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
