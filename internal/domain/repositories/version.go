package repositories

import (
	"context"

	"folio/internal/domain/models"
)

// CreateVersionParams carries the snapshot payload for a new version.
// Content is the full body at edit time; DiffContent is an optional opaque
// delta against the predecessor, stored for display only.
type CreateVersionParams struct {
	Title       string
	Content     string
	DiffContent *string
}

// VersionRepository defines data access operations for the version chain.
//
// Implementations must serialize version-number assignment per document:
// two concurrent CreateVersion calls for the same document must never produce
// the same version number or an inconsistent previous-version chain.
type VersionRepository interface {
	// CreateVersion appends a snapshot to the document's chain. The version
	// number is max(existing)+1 and previous_version_id points at the prior
	// latest version (nil for version 1). In the same transaction the head's
	// content, title, current_version_id and updated_at are rewritten.
	// Returns domain.ErrNotFound if the document does not exist and
	// domain.ErrConflict if a concurrent append won the race.
	CreateVersion(ctx context.Context, documentID string, params CreateVersionParams) (*models.DocumentVersion, error)

	// ListVersions returns the document's versions ordered by version number
	// ascending. A document with no recorded history yields an empty slice,
	// not an error.
	ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error)

	// GetVersion retrieves one version. Returns domain.ErrNotFound when the
	// id is unknown or belongs to a different document.
	GetVersion(ctx context.Context, documentID, versionID string) (*models.DocumentVersion, error)

	// RestoreVersion makes the target version's content/title authoritative
	// again by overwriting the head and repointing current_version_id. No
	// version rows are created, deleted or reordered; later versions stay
	// intact so the restore itself can be undone by a further restore.
	RestoreVersion(ctx context.Context, documentID, versionID string) (*models.Document, error)

	// VerifyChain walks previous_version_id links from the latest version
	// down to version 1, bounded by a max-depth guard. Reports a gap, branch
	// or cycle as domain.ErrConflict.
	VerifyChain(ctx context.Context, documentID string) error
}
