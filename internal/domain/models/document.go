package models

import (
	"time"
)

// DocumentKind is the closed set of editor surfaces a document can render as.
type DocumentKind string

const (
	KindText  DocumentKind = "text"
	KindCode  DocumentKind = "code"
	KindImage DocumentKind = "image"
	KindSheet DocumentKind = "sheet"
)

// Visibility controls whether a document is shareable.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Document is the mutable head a user interacts with. Its content/title are
// overwritten by edits and restores; history lives in DocumentVersion rows.
// CurrentVersionID points at the version whose content the head carries,
// nil while the document only has its implicit initial state.
type Document struct {
	ID               string       `json:"id" db:"id"`
	UserID           string       `json:"user_id" db:"user_id"`
	ChatID           *string      `json:"chat_id,omitempty" db:"chat_id"` // NULL = not spawned from a chat
	Title            string       `json:"title" db:"title"`
	Content          string       `json:"content" db:"content"`
	Kind             DocumentKind `json:"kind" db:"kind"`
	Visibility       Visibility   `json:"visibility" db:"visibility"`
	CurrentVersionID *string      `json:"current_version_id,omitempty" db:"current_version_id"`
	Style            string       `json:"style,omitempty" db:"style"` // Opaque style metadata
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}
