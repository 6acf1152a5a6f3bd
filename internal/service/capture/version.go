package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonesrussell/stash/internal/config"
	"github.com/jonesrussell/stash/internal/domain"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	"github.com/jonesrussell/stash/internal/domain/repositories"
	captureRepo "github.com/jonesrussell/stash/internal/domain/repositories/capture"
	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"

	"github.com/sethvargo/go-retry"
)

// versionService implements the VersionService interface
type versionService struct {
	contentRepo captureRepo.ContentRepository
	versionRepo captureRepo.VersionRepository
	txManager   repositories.TransactionManager
	locks       *contentLocks
	logger      *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(
	contentRepo captureRepo.ContentRepository,
	versionRepo captureRepo.VersionRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) captureSvc.VersionService {
	return &versionService{
		contentRepo: contentRepo,
		versionRepo: versionRepo,
		txManager:   txManager,
		locks:       newContentLocks(),
		logger:      logger,
	}
}

// ListVersions returns a content's versions newest-first
func (s *versionService) ListVersions(ctx context.Context, userID, contentID string) ([]models.Version, error) {
	// Owner check before touching the version log
	if _, err := s.contentRepo.GetByID(ctx, contentID, userID); err != nil {
		return nil, err
	}

	return s.versionRepo.ListByContent(ctx, contentID)
}

// CreateVersion snapshots the content's current body as the next version.
// The version number is recomputed inside the transaction as count+1; a
// concurrent writer losing the race on the (content_id, version_number)
// unique index triggers a retry with a fresh number.
func (s *versionService) CreateVersion(ctx context.Context, userID, contentID, comment string) (*models.Version, error) {
	if userID == "" {
		return nil, &domain.PreconditionError{Message: "creating a version requires an authenticated user"}
	}
	if len(comment) > config.MaxVersionCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", domain.ErrValidation, config.MaxVersionCommentLength)
	}

	unlock := s.locks.lock(contentID)
	defer unlock()

	content, err := s.contentRepo.GetByID(ctx, contentID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content.Content) == "" {
		return nil, fmt.Errorf("%w: cannot create a version from empty content", domain.ErrValidation)
	}

	var version *models.Version
	backoff := retry.WithMaxRetries(3, retry.NewConstant(25*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt, txErr := s.createVersionTx(ctx, content, comment)
		if txErr != nil {
			if _, conflict := txErr.(*domain.ConflictError); conflict {
				// Another writer claimed this version number first
				return retry.RetryableError(txErr)
			}
			return txErr
		}
		version = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("version created",
		"content_id", contentID,
		"version_number", version.VersionNumber,
	)

	return version, nil
}

// createVersionTx inserts the snapshot and bumps the content row in one
// transaction, so a half-committed state is never visible.
func (s *versionService) createVersionTx(ctx context.Context, content *models.Content, comment string) (*models.Version, error) {
	var version *models.Version

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		count, err := s.versionRepo.CountByContent(txCtx, content.ID)
		if err != nil {
			return err
		}

		version = &models.Version{
			ContentID:     content.ID,
			Content:       content.Content,
			VersionNumber: count + 1,
			Comment:       comment,
			Tags:          append([]string{}, content.Tags...),
		}
		if err := s.versionRepo.Insert(txCtx, version); err != nil {
			return err
		}

		content.VersionNumber = version.VersionNumber
		return s.contentRepo.Update(txCtx, content)
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

// RevertToVersion copies the version's body into the live content and
// refreshes updated_at. Recording the revert as a new version is the
// workflow layer's responsibility, not a hidden side effect here.
func (s *versionService) RevertToVersion(ctx context.Context, userID, contentID, versionID string) (*models.Content, *models.Version, error) {
	if userID == "" {
		return nil, nil, &domain.PreconditionError{Message: "reverting requires an authenticated user"}
	}

	unlock := s.locks.lock(contentID)
	defer unlock()

	content, err := s.contentRepo.GetByID(ctx, contentID, userID)
	if err != nil {
		return nil, nil, err
	}

	version, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return nil, nil, err
	}
	if version.ContentID != contentID {
		return nil, nil, fmt.Errorf("version %s does not belong to content %s: %w", versionID, contentID, domain.ErrNotFound)
	}

	content.Content = version.Content
	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, nil, err
	}

	s.logger.Info("content reverted",
		"content_id", contentID,
		"version_number", version.VersionNumber,
	)

	return content, version, nil
}

// CompareVersions diffs two distinct versions of the same content
func (s *versionService) CompareVersions(ctx context.Context, userID, contentID, versionIDA, versionIDB string) (*captureSvc.Comparison, error) {
	if versionIDA == versionIDB {
		return nil, &domain.PreconditionError{Message: "compare requires two distinct versions"}
	}

	if _, err := s.contentRepo.GetByID(ctx, contentID, userID); err != nil {
		return nil, err
	}

	a, err := s.versionRepo.GetByID(ctx, versionIDA)
	if err != nil {
		return nil, err
	}
	b, err := s.versionRepo.GetByID(ctx, versionIDB)
	if err != nil {
		return nil, err
	}
	if a.ContentID != contentID || b.ContentID != contentID {
		return nil, &domain.PreconditionError{Message: "versions must belong to the compared content"}
	}

	return Compare(a, b), nil
}

// contentLocks serializes writes to a content's version sequence. Postgres
// enforces uniqueness across processes; this closes the race within one.
type contentLocks struct {
	mu    sync.Mutex
	locks map[string]*contentLock
}

type contentLock struct {
	mu   sync.Mutex
	refs int
}

func newContentLocks() *contentLocks {
	return &contentLocks{locks: make(map[string]*contentLock)}
}

// lock acquires the per-content mutex and returns its release func. Lock
// entries are reference counted so the map does not grow unboundedly.
func (c *contentLocks) lock(contentID string) func() {
	c.mu.Lock()
	l, ok := c.locks[contentID]
	if !ok {
		l = &contentLock{}
		c.locks[contentID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, contentID)
		}
		c.mu.Unlock()
	}
}
