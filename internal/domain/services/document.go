package services

import (
	"context"

	"folio/internal/domain/models"
)

// DocumentService handles document head business logic. Every content or
// title edit flows through UpdateDocument, which appends a version to the
// chain; the head row is never rewritten without a matching snapshot.
type DocumentService interface {
	// CreateDocument creates a new document head
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document by id
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// ListDocuments lists a user's documents, most recently updated first
	ListDocuments(ctx context.Context, userID string) ([]models.Document, error)

	// UpdateDocument applies an edit. Title/content changes append a
	// DocumentVersion and invalidate the version cache; visibility/style
	// changes only touch the head.
	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)

	// DeleteDocument deletes a document, cascading to its versions
	DeleteDocument(ctx context.Context, id string) error
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	UserID     string              `json:"-"` // Set by handler from auth context
	ChatID     *string             `json:"chat_id,omitempty"`
	Title      string              `json:"title"`
	Content    *string             `json:"content"` // Pointer: empty string is valid, absent is not
	Kind       models.DocumentKind `json:"kind"`
	Visibility models.Visibility   `json:"visibility,omitempty"` // Defaults to private
	Style      string              `json:"style,omitempty"`
}

// UpdateDocumentRequest represents a document edit
type UpdateDocumentRequest struct {
	Title       *string            `json:"title,omitempty"`
	Content     *string            `json:"content,omitempty"`
	DiffContent *string            `json:"diff_content,omitempty"` // Opaque delta for the new version
	Visibility  *models.Visibility `json:"visibility,omitempty"`
	Style       *string            `json:"style,omitempty"`
}
