package capture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonesrussell/stash/internal/domain"
	models "github.com/jonesrussell/stash/internal/domain/models/capture"
	captureRepo "github.com/jonesrussell/stash/internal/domain/repositories/capture"
	"github.com/jonesrussell/stash/internal/repository/postgres"
)

// PostgresVersionRepository implements the VersionRepository interface.
// The table carries a unique index on (content_id, version_number); an
// insert that loses a numbering race surfaces domain.ErrConflict so the
// caller can recompute and retry.
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *postgres.RepositoryConfig) captureRepo.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Insert appends a new version snapshot
func (r *PostgresVersionRepository) Insert(ctx context.Context, version *models.Version) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (content_id, content, version_number, comment, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at
	`, r.tables.ContentVersions)

	version.Normalize()

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		version.ContentID,
		version.Content,
		version.VersionNumber,
		version.Comment,
		version.Tags,
	).Scan(&version.ID, &version.CreatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version %d already exists for content %s", version.VersionNumber, version.ContentID),
				ResourceType: "version",
				ResourceID:   version.ContentID,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("content %s: %w", version.ContentID, domain.ErrNotFound)
		}
		return &domain.PersistenceError{Op: "insert version", Err: err}
	}

	return nil
}

// GetByID retrieves a single version
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, content_id, content, version_number, comment, tags, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.ContentVersions)

	var version models.Version
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&version.ID,
		&version.ContentID,
		&version.Content,
		&version.VersionNumber,
		&version.Comment,
		&version.Tags,
		&version.CreatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
		}
		return nil, &domain.PersistenceError{Op: "get version", Err: err}
	}

	version.Normalize()
	return &version, nil
}

// ListByContent returns versions ordered by created_at descending
func (r *PostgresVersionRepository) ListByContent(ctx context.Context, contentID string) ([]models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, content_id, content, version_number, comment, tags, created_at
		FROM %s
		WHERE content_id = $1
		ORDER BY created_at DESC
	`, r.tables.ContentVersions)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, contentID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list versions", Err: err}
	}
	defer rows.Close()

	versions := []models.Version{}
	for rows.Next() {
		var version models.Version
		err := rows.Scan(
			&version.ID,
			&version.ContentID,
			&version.Content,
			&version.VersionNumber,
			&version.Comment,
			&version.Tags,
			&version.CreatedAt,
		)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan version", Err: err}
		}
		version.Normalize()
		versions = append(versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate versions", Err: err}
	}

	return versions, nil
}

// CountByContent returns the number of versions recorded for a content
func (r *PostgresVersionRepository) CountByContent(ctx context.Context, contentID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE content_id = $1
	`, r.tables.ContentVersions)

	var count int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, contentID).Scan(&count); err != nil {
		return 0, &domain.PersistenceError{Op: "count versions", Err: err}
	}

	return count, nil
}
