package capture

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jonesrussell/stash/internal/domain"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"

	"github.com/stretchr/testify/require"
)

func newTestVersionService(t *testing.T) (captureSvc.VersionService, *fakeContentRepo, *fakeVersionRepo) {
	t.Helper()
	contentRepo := newFakeContentRepo()
	versionRepo := newFakeVersionRepo()
	svc := NewVersionService(contentRepo, versionRepo, fakeTxManager{}, slog.Default())
	return svc, contentRepo, versionRepo
}

func seedContent(t *testing.T, repo *fakeContentRepo, userID, body string, tags ...string) *models.Content {
	t.Helper()
	content := &models.Content{
		UserID:        userID,
		Content:       body,
		Tags:          tags,
		VersionNumber: 1,
	}
	require.NoError(t, repo.Create(context.Background(), content))
	return content
}

func TestCreateVersionAssignsSequentialNumbers(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	v1, err := svc.CreateVersion(ctx, "user-1", content.ID, "first")
	require.NoError(t, err)
	require.Equal(t, 1, v1.VersionNumber)

	v2, err := svc.CreateVersion(ctx, "user-1", content.ID, "second")
	require.NoError(t, err)
	require.Equal(t, 2, v2.VersionNumber)

	// The content row mirrors the version count
	updated, err := contentRepo.GetByID(ctx, content.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, updated.VersionNumber)
}

func TestCreateVersionSnapshotsBodyAndTags(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello", "notes", "go")

	version, err := svc.CreateVersion(ctx, "user-1", content.ID, "snap")
	require.NoError(t, err)
	require.Equal(t, "Hello", version.Content)
	require.Equal(t, []string{"notes", "go"}, version.Tags)
	require.Equal(t, "snap", version.Comment)
}

func TestCreateVersionEmptyContentRejected(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "   \n\t")

	_, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	// Nothing was persisted
	versions, err := svc.ListVersions(ctx, "user-1", content.ID)
	require.NoError(t, err)
	require.Empty(t, versions)
}

func TestCreateVersionRequiresIdentity(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	content := seedContent(t, contentRepo, "user-1", "Hello")

	_, err := svc.CreateVersion(context.Background(), "", content.ID, "")
	require.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestCreateVersionRetriesOnNumberConflict(t *testing.T) {
	svc, contentRepo, versionRepo := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	// First insert loses the numbering race; the retry must succeed
	versionRepo.conflictsLeft = 1

	version, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)
	require.Equal(t, 1, version.VersionNumber)
}

func TestListVersionsNewestFirst(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	_, err := svc.CreateVersion(ctx, "user-1", content.ID, "first")
	require.NoError(t, err)
	_, err = svc.CreateVersion(ctx, "user-1", content.ID, "second")
	require.NoError(t, err)

	versions, err := svc.ListVersions(ctx, "user-1", content.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, 2, versions[0].VersionNumber)
	require.Equal(t, 1, versions[1].VersionNumber)
}

func TestListVersionsChecksOwner(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	content := seedContent(t, contentRepo, "user-1", "Hello")

	_, err := svc.ListVersions(context.Background(), "intruder", content.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevertToVersionCopiesContentWithoutMutatingVersion(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	v1, err := svc.CreateVersion(ctx, "user-1", content.ID, "initial")
	require.NoError(t, err)

	// Edit the live body past the snapshot
	live, err := contentRepo.GetByID(ctx, content.ID, "user-1")
	require.NoError(t, err)
	live.Content = "Hello world"
	require.NoError(t, contentRepo.Update(ctx, live))

	reverted, restored, err := svc.RevertToVersion(ctx, "user-1", content.ID, v1.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello", reverted.Content)
	require.Equal(t, v1.ID, restored.ID)

	// The version row itself is untouched
	versions, err := svc.ListVersions(ctx, "user-1", content.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	require.Equal(t, "Hello", versions[0].Content)
	require.Equal(t, 1, versions[0].VersionNumber)
	require.Equal(t, "initial", versions[0].Comment)
}

func TestRevertToVersionRejectsForeignVersion(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	mine := seedContent(t, contentRepo, "user-1", "Hello")
	other := seedContent(t, contentRepo, "user-1", "Other")

	foreign, err := svc.CreateVersion(ctx, "user-1", other.ID, "")
	require.NoError(t, err)

	_, _, err = svc.RevertToVersion(ctx, "user-1", mine.ID, foreign.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompareVersionsOrdersByNumberRegardlessOfArguments(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	v1, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)

	live, err := contentRepo.GetByID(ctx, content.ID, "user-1")
	require.NoError(t, err)
	live.Content = "Hello\nworld"
	require.NoError(t, contentRepo.Update(ctx, live))

	v2, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)

	forward, err := svc.CompareVersions(ctx, "user-1", content.ID, v1.ID, v2.ID)
	require.NoError(t, err)
	backward, err := svc.CompareVersions(ctx, "user-1", content.ID, v2.ID, v1.ID)
	require.NoError(t, err)

	// Old/new assignment is identical either way
	require.Equal(t, v1.ID, forward.Old.ID)
	require.Equal(t, v2.ID, forward.New.ID)
	require.Equal(t, v1.ID, backward.Old.ID)
	require.Equal(t, v2.ID, backward.New.ID)

	require.Equal(t, 1, forward.Diff.Additions)
	require.Equal(t, 0, forward.Diff.Deletions)
}

func TestCompareVersionsIdenticalContentYieldsEmptyDiff(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	v1, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)
	v2, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)

	comparison, err := svc.CompareVersions(ctx, "user-1", content.ID, v1.ID, v2.ID)
	require.NoError(t, err)
	require.Zero(t, comparison.Diff.Additions)
	require.Zero(t, comparison.Diff.Deletions)
	require.Empty(t, comparison.TagsAdded)
	require.Empty(t, comparison.TagsRemoved)
}

func TestCompareVersionsRequiresDistinctIDs(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello")

	v1, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)

	_, err = svc.CompareVersions(ctx, "user-1", content.ID, v1.ID, v1.ID)
	require.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestCompareVersionsReportsTagSetDifferences(t *testing.T) {
	svc, contentRepo, _ := newTestVersionService(t)
	ctx := context.Background()
	content := seedContent(t, contentRepo, "user-1", "Hello", "draft", "go")

	v1, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)

	live, err := contentRepo.GetByID(ctx, content.ID, "user-1")
	require.NoError(t, err)
	live.Tags = []string{"go", "published"}
	require.NoError(t, contentRepo.Update(ctx, live))

	v2, err := svc.CreateVersion(ctx, "user-1", content.ID, "")
	require.NoError(t, err)

	comparison, err := svc.CompareVersions(ctx, "user-1", content.ID, v2.ID, v1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"draft"}, comparison.TagsRemoved)
	require.Equal(t, []string{"published"}, comparison.TagsAdded)
}
