// Package cache provides the version-history cache: a read-through,
// explicitly invalidated mapping from document id to its ordered version
// list. Entries carry no TTL; invalidation is event-driven, triggered by
// every mutating operation (edit, restore).
package cache

import (
	"context"

	"folio/internal/domain/models"
)

// VersionLister is the slice of the version store the cache reads through to
type VersionLister interface {
	ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error)
}

// VersionCache caches ordered version lists per document.
//
// InvalidateVersions must never be lost to an in-flight read: a GetVersions
// that started before the invalidation and completes after it must not leave
// stale history in the cache. Implementations guard this with a per-document
// generation counter checked before the read-through result is stored.
type VersionCache interface {
	// GetVersions returns the document's versions ascending by version
	// number, fetching from the store and populating the cache on miss.
	GetVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error)

	// InvalidateVersions unconditionally drops the cached entry for the
	// document. Calling it with nothing cached is a no-op, not an error.
	InvalidateVersions(ctx context.Context, documentID string) error
}
