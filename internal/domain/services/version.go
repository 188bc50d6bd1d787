package services

import (
	"context"

	"folio/internal/domain/models"
)

// NavigationIntent is a user gesture over the version history panel
type NavigationIntent string

const (
	NavNext   NavigationIntent = "next"
	NavPrev   NavigationIntent = "prev"
	NavToggle NavigationIntent = "toggle"
	NavLatest NavigationIntent = "latest"
)

// VersionService orchestrates version browsing and restores. Reads go
// through the version cache; every restore invalidates it and publishes a
// restore event.
type VersionService interface {
	// Versions returns the document's history ascending, through the cache
	Versions(ctx context.Context, documentID string) ([]models.DocumentVersion, error)

	// GetVersion retrieves a single version scoped to the document
	GetVersion(ctx context.Context, documentID, versionID string) (*models.DocumentVersion, error)

	// Restore makes the version at index in the ordered history the head
	// state again. Empty history or an out-of-range index fails with
	// ErrValidation before the store is contacted; a restore already in
	// flight for the same document fails with ErrConflict.
	Restore(ctx context.Context, documentID string, index int) (*models.Document, error)

	// VerifyChain checks the document's chain invariants
	VerifyChain(ctx context.Context, documentID string) error
}
