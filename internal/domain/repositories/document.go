package repositories

import (
	"context"

	"folio/internal/domain/models"
)

// DocumentRepository defines data access operations for document heads
type DocumentRepository interface {
	// Create creates a new document head
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListByUser lists all documents owned by a user, most recently updated first
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)

	// Update overwrites the head's mutable fields (title, content, visibility,
	// style, current_version_id) and refreshes updated_at
	Update(ctx context.Context, doc *models.Document) error

	// Delete deletes a document; its versions go with it (cascade)
	Delete(ctx context.Context, id string) error
}
