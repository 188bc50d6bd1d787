package models

import (
	"time"
)

// DocumentVersion is an immutable snapshot of a document at edit time.
// Versions form a singly linked chain through PreviousVersionID, terminating
// at version 1 (PreviousVersionID nil). Version numbers increase by exactly 1
// along the chain. Rows are never mutated after creation and only removed by
// cascade when the owning document is deleted.
type DocumentVersion struct {
	ID                string    `json:"id" db:"id"`
	DocumentID        string    `json:"document_id" db:"document_id"`
	Version           int       `json:"version" db:"version"` // 1-based, gap-free
	Title             string    `json:"title" db:"title"`
	Content           string    `json:"content" db:"content"`
	DiffContent       *string   `json:"diff_content,omitempty" db:"diff_content"` // Opaque delta vs. predecessor
	PreviousVersionID *string   `json:"previous_version_id,omitempty" db:"previous_version_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
