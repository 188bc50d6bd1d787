package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresVersionRepository implements the VersionRepository interface.
//
// Version-number assignment is serialized per document by locking the head
// row (SELECT ... FOR UPDATE) before computing max(version)+1. The unique
// (document_id, version) constraint is the backstop: if two writers somehow
// race past the lock, the second insert fails and surfaces ErrConflict
// instead of corrupting the chain.
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tm     repositories.TransactionManager
	tables *TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(cfg *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   cfg.Pool,
		tm:     NewTransactionManager(cfg.Pool),
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

// CreateVersion appends a snapshot to the document's chain and rewrites the
// head in the same transaction.
func (r *PostgresVersionRepository) CreateVersion(ctx context.Context, documentID string, params repositories.CreateVersionParams) (*models.DocumentVersion, error) {
	var version *models.DocumentVersion

	err := r.tm.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.pool)

		// Lock the head row; this serializes concurrent appends per document.
		lockQuery := fmt.Sprintf(`
			SELECT id FROM %s WHERE id = $1 FOR UPDATE
		`, r.tables.Documents)

		var headID string
		if err := executor.QueryRow(txCtx, lockQuery, documentID).Scan(&headID); err != nil {
			if IsPgNoRowsError(err) {
				return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
			}
			return fmt.Errorf("lock document: %w", err)
		}

		// Current chain tip, if any
		tipQuery := fmt.Sprintf(`
			SELECT id, version FROM %s
			WHERE document_id = $1
			ORDER BY version DESC
			LIMIT 1
		`, r.tables.DocumentVersions)

		nextVersion := 1
		var previousVersionID *string
		var tipID string
		var tipVersion int
		err := executor.QueryRow(txCtx, tipQuery, documentID).Scan(&tipID, &tipVersion)
		switch {
		case err == nil:
			nextVersion = tipVersion + 1
			previousVersionID = &tipID
		case IsPgNoRowsError(err):
			// First recorded version
		default:
			return fmt.Errorf("get latest version: %w", err)
		}

		now := time.Now()
		version = &models.DocumentVersion{
			ID:                uuid.NewString(),
			DocumentID:        documentID,
			Version:           nextVersion,
			Title:             params.Title,
			Content:           params.Content,
			DiffContent:       params.DiffContent,
			PreviousVersionID: previousVersionID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (id, document_id, version, title, content, diff_content, previous_version_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, r.tables.DocumentVersions)

		_, err = executor.Exec(txCtx, insertQuery,
			version.ID,
			version.DocumentID,
			version.Version,
			version.Title,
			version.Content,
			version.DiffContent,
			version.PreviousVersionID,
			version.CreatedAt,
			version.UpdatedAt,
		)
		if err != nil {
			if IsPgDuplicateError(err) {
				return fmt.Errorf("version %d of document %s: %w", nextVersion, documentID, domain.ErrConflict)
			}
			return fmt.Errorf("insert version: %w", err)
		}

		// The new snapshot becomes the head state.
		headQuery := fmt.Sprintf(`
			UPDATE %s
			SET title = $1, content = $2, current_version_id = $3, updated_at = $4
			WHERE id = $5
		`, r.tables.Documents)

		if _, err := executor.Exec(txCtx, headQuery, version.Title, version.Content, version.ID, now, documentID); err != nil {
			return fmt.Errorf("update document head: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

// ListVersions returns the document's versions ordered by version ascending
func (r *PostgresVersionRepository) ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version, title, content, diff_content, previous_version_id, created_at, updated_at
		FROM %s
		WHERE document_id = $1
		ORDER BY version ASC
	`, r.tables.DocumentVersions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	versions := []models.DocumentVersion{}
	for rows.Next() {
		var v models.DocumentVersion
		err := rows.Scan(
			&v.ID,
			&v.DocumentID,
			&v.Version,
			&v.Title,
			&v.Content,
			&v.DiffContent,
			&v.PreviousVersionID,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}

	return versions, nil
}

// GetVersion retrieves one version scoped to its document
func (r *PostgresVersionRepository) GetVersion(ctx context.Context, documentID, versionID string) (*models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version, title, content, diff_content, previous_version_id, created_at, updated_at
		FROM %s
		WHERE id = $1 AND document_id = $2
	`, r.tables.DocumentVersions)

	executor := GetExecutor(ctx, r.pool)

	var v models.DocumentVersion
	err := executor.QueryRow(ctx, query, versionID, documentID).Scan(
		&v.ID,
		&v.DocumentID,
		&v.Version,
		&v.Title,
		&v.Content,
		&v.DiffContent,
		&v.PreviousVersionID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %s of document %s: %w", versionID, documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version: %w", err)
	}

	return &v, nil
}

// RestoreVersion overwrites the head with the target version's content/title.
// Later versions are left intact: a restore is a forward edit of the head,
// not a history truncation.
func (r *PostgresVersionRepository) RestoreVersion(ctx context.Context, documentID, versionID string) (*models.Document, error) {
	var doc models.Document

	err := r.tm.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.pool)

		versionQuery := fmt.Sprintf(`
			SELECT title, content FROM %s
			WHERE id = $1 AND document_id = $2
		`, r.tables.DocumentVersions)

		var title, content string
		if err := executor.QueryRow(txCtx, versionQuery, versionID, documentID).Scan(&title, &content); err != nil {
			if IsPgNoRowsError(err) {
				return fmt.Errorf("version %s of document %s: %w", versionID, documentID, domain.ErrNotFound)
			}
			return fmt.Errorf("get version: %w", err)
		}

		headQuery := fmt.Sprintf(`
			UPDATE %s
			SET title = $1, content = $2, current_version_id = $3, updated_at = $4
			WHERE id = $5
			RETURNING id, user_id, chat_id, title, content, kind, visibility, current_version_id, style, created_at, updated_at
		`, r.tables.Documents)

		err := executor.QueryRow(txCtx, headQuery, title, content, versionID, time.Now(), documentID).Scan(
			&doc.ID,
			&doc.UserID,
			&doc.ChatID,
			&doc.Title,
			&doc.Content,
			&doc.Kind,
			&doc.Visibility,
			&doc.CurrentVersionID,
			&doc.Style,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			if IsPgNoRowsError(err) {
				return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
			}
			return fmt.Errorf("restore version: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// VerifyChain walks previous_version_id links from the chain tip using a
// depth-bounded recursive CTE, then checks the walk against the stored
// version numbers. A gap, branch or cycle surfaces as ErrConflict.
func (r *PostgresVersionRepository) VerifyChain(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`
		WITH RECURSIVE version_chain AS (
			-- Base case: the chain tip (highest version number)
			SELECT id, previous_version_id, version, 1 as depth
			FROM %s
			WHERE document_id = $1
			  AND version = (SELECT MAX(version) FROM %s WHERE document_id = $1)

			UNION ALL

			-- Recursive case: follow previous_version_id
			SELECT v.id, v.previous_version_id, v.version, vc.depth + 1
			FROM %s v
			INNER JOIN version_chain vc ON v.id = vc.previous_version_id
			WHERE vc.depth < %d
		)
		SELECT version FROM version_chain ORDER BY depth ASC
	`, r.tables.DocumentVersions, r.tables.DocumentVersions, r.tables.DocumentVersions, config.MaxVersionChainDepth)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return fmt.Errorf("walk version chain: %w", err)
	}
	defer rows.Close()

	var walked []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("scan chain node: %w", err)
		}
		walked = append(walked, version)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate chain: %w", err)
	}

	if len(walked) == 0 {
		// No recorded history: the implicit inline state is trivially valid.
		return nil
	}
	if len(walked) >= config.MaxVersionChainDepth {
		return fmt.Errorf("version chain of document %s exceeds depth guard, possible cycle: %w", documentID, domain.ErrConflict)
	}

	// The walk must descend tip..1 with no gaps.
	tip := walked[0]
	if len(walked) != tip {
		return fmt.Errorf("version chain of document %s: tip is %d but walk visited %d nodes: %w",
			documentID, tip, len(walked), domain.ErrConflict)
	}
	for i, version := range walked {
		if version != tip-i {
			return fmt.Errorf("version chain of document %s: expected %d at step %d, found %d: %w",
				documentID, tip-i, i, version, domain.ErrConflict)
		}
	}

	return nil
}
