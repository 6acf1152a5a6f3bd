package capture

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonesrussell/stash/internal/domain"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	"github.com/jonesrussell/stash/internal/domain/repositories"

	"github.com/google/uuid"
)

// fakeContentRepo is an in-memory ContentRepository. Like a real store it
// hands out copies, so callers never alias its internal state.
type fakeContentRepo struct {
	mu       sync.Mutex
	contents map[string]models.Content

	failUpdate error // when set, Update returns this error
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: make(map[string]models.Content)}
}

func (f *fakeContentRepo) Create(ctx context.Context, content *models.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content.ID = uuid.NewString()
	content.CreatedAt = time.Now()
	content.UpdatedAt = content.CreatedAt
	content.Normalize()
	f.contents[content.ID] = copyContent(*content)
	return nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, id, userID string) (*models.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.contents[id]
	if !ok || stored.UserID != userID {
		return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	c := copyContent(stored)
	return &c, nil
}

func (f *fakeContentRepo) Update(ctx context.Context, content *models.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate != nil {
		return f.failUpdate
	}

	stored, ok := f.contents[content.ID]
	if !ok || stored.UserID != content.UserID {
		return fmt.Errorf("content %s: %w", content.ID, domain.ErrNotFound)
	}
	content.UpdatedAt = time.Now()
	f.contents[content.ID] = copyContent(*content)
	return nil
}

func (f *fakeContentRepo) Archive(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.contents[id]
	if !ok || stored.UserID != userID {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	stored.Archived = true
	stored.UpdatedAt = time.Now()
	f.contents[id] = stored
	return nil
}

func (f *fakeContentRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.contents[id]
	if !ok || stored.UserID != userID {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	delete(f.contents, id)
	return nil
}

func (f *fakeContentRepo) List(ctx context.Context, userID string, includeArchived bool) ([]models.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Content{}
	for _, c := range f.contents {
		if c.UserID != userID {
			continue
		}
		if c.Archived && !includeArchived {
			continue
		}
		out = append(out, copyContent(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeContentRepo) Search(ctx context.Context, userID, query string) ([]models.Content, error) {
	all, err := f.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	out := []models.Content{}
	for _, c := range all {
		if containsFold(c.Title, query) || containsFold(c.Content, query) || tagsContainFold(c.Tags, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeVersionRepo is an in-memory append-only VersionRepository enforcing
// the (content_id, version_number) uniqueness the real table carries.
type fakeVersionRepo struct {
	mu       sync.Mutex
	versions []models.Version
	clock    int

	conflictsLeft int // when > 0, Insert fails with a ConflictError and decrements
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{}
}

func (f *fakeVersionRepo) Insert(ctx context.Context, version *models.Version) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return &domain.ConflictError{
			Message:      fmt.Sprintf("version %d already exists for content %s", version.VersionNumber, version.ContentID),
			ResourceType: "version",
			ResourceID:   version.ContentID,
		}
	}

	for _, v := range f.versions {
		if v.ContentID == version.ContentID && v.VersionNumber == version.VersionNumber {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version %d already exists for content %s", version.VersionNumber, version.ContentID),
				ResourceType: "version",
				ResourceID:   version.ContentID,
			}
		}
	}

	f.clock++
	version.ID = uuid.NewString()
	version.CreatedAt = time.Unix(int64(f.clock), 0)
	version.Normalize()
	f.versions = append(f.versions, copyVersion(*version))
	return nil
}

func (f *fakeVersionRepo) GetByID(ctx context.Context, id string) (*models.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range f.versions {
		if v.ID == id {
			out := copyVersion(v)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
}

func (f *fakeVersionRepo) ListByContent(ctx context.Context, contentID string) ([]models.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Version{}
	for _, v := range f.versions {
		if v.ContentID == contentID {
			out = append(out, copyVersion(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeVersionRepo) CountByContent(ctx context.Context, contentID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, v := range f.versions {
		if v.ContentID == contentID {
			count++
		}
	}
	return count, nil
}

// fakeTxManager runs the function directly; the fakes are already atomic
// enough for these tests.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func copyContent(c models.Content) models.Content {
	c.Tags = append([]string{}, c.Tags...)
	c.Attachments = append([]string{}, c.Attachments...)
	return c
}

func copyVersion(v models.Version) models.Version {
	v.Tags = append([]string{}, v.Tags...)
	return v
}

func containsFold(haystack, needle string) bool {
	return needle != "" && strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func tagsContainFold(tags []string, needle string) bool {
	for _, tag := range tags {
		if containsFold(tag, needle) {
			return true
		}
	}
	return false
}
