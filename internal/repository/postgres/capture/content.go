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

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *postgres.RepositoryConfig) captureRepo.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const contentColumns = "id, user_id, title, content, tags, attachments, version_number, archived, created_at, updated_at"

// Create creates a new content row
func (r *PostgresContentRepository) Create(ctx context.Context, content *models.Content) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, content, tags, attachments, version_number, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at
	`, r.tables.Contents)

	content.Normalize()

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		content.UserID,
		content.Title,
		content.Content,
		content.Tags,
		content.Attachments,
		content.VersionNumber,
		content.Archived,
	).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)

	if err != nil {
		return &domain.PersistenceError{Op: "create content", Err: err}
	}

	return nil
}

// GetByID retrieves a content by ID, scoped to its owner
func (r *PostgresContentRepository) GetByID(ctx context.Context, id, userID string) (*models.Content, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, contentColumns, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	return r.scanContent(executor.QueryRow(ctx, query, id, userID), id)
}

// Update updates the mutable fields of a content row
func (r *PostgresContentRepository) Update(ctx context.Context, content *models.Content) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, tags = $3, attachments = $4, version_number = $5, archived = $6, updated_at = now()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`, r.tables.Contents)

	content.Normalize()

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		content.Title,
		content.Content,
		content.Tags,
		content.Attachments,
		content.VersionNumber,
		content.Archived,
		content.ID,
		content.UserID,
	).Scan(&content.UpdatedAt)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return fmt.Errorf("content %s: %w", content.ID, domain.ErrNotFound)
		}
		return &domain.PersistenceError{Op: "update content", Err: err}
	}

	return nil
}

// Archive soft-deletes a content via the archived flag
func (r *PostgresContentRepository) Archive(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET archived = true, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return &domain.PersistenceError{Op: "archive content", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete permanently removes a content. Version rows go with it via the
// ON DELETE CASCADE foreign key.
func (r *PostgresContentRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return &domain.PersistenceError{Op: "delete content", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List lists a user's contents newest-first
func (r *PostgresContentRepository) List(ctx context.Context, userID string, includeArchived bool) ([]models.Content, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
	`, contentColumns, r.tables.Contents)
	if !includeArchived {
		query += " AND archived = false"
	}
	query += " ORDER BY updated_at DESC"

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list contents", Err: err}
	}
	defer rows.Close()

	return r.collectContents(rows)
}

// Search matches title, body, and tags case-insensitively
func (r *PostgresContentRepository) Search(ctx context.Context, userID, query string) ([]models.Content, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND archived = false
		  AND (title ILIKE $2 OR content ILIKE $2 OR EXISTS (
			SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2
		  ))
		ORDER BY updated_at DESC
	`, contentColumns, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, userID, "%"+query+"%")
	if err != nil {
		return nil, &domain.PersistenceError{Op: "search contents", Err: err}
	}
	defer rows.Close()

	return r.collectContents(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresContentRepository) scanContent(row rowScanner, id string) (*models.Content, error) {
	var content models.Content
	err := row.Scan(
		&content.ID,
		&content.UserID,
		&content.Title,
		&content.Content,
		&content.Tags,
		&content.Attachments,
		&content.VersionNumber,
		&content.Archived,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, &domain.PersistenceError{Op: "get content", Err: err}
	}

	content.Normalize()
	return &content, nil
}

func (r *PostgresContentRepository) collectContents(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]models.Content, error) {
	contents := []models.Content{}
	for rows.Next() {
		var content models.Content
		err := rows.Scan(
			&content.ID,
			&content.UserID,
			&content.Title,
			&content.Content,
			&content.Tags,
			&content.Attachments,
			&content.VersionNumber,
			&content.Archived,
			&content.CreatedAt,
			&content.UpdatedAt,
		)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan content", Err: err}
		}
		content.Normalize()
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate contents", Err: err}
	}

	return contents, nil
}
