package service

import (
	"context"

	"folio/internal/domain/models"
	"folio/internal/domain/services"
)

// Viewer is one client session's view of a document's history: the head,
// the fetched version list and the navigation cursor. A failed restore
// leaves every field exactly as it was.
type Viewer struct {
	svc      services.VersionService
	doc      models.Document
	versions []models.DocumentVersion
	nav      Navigation
}

// NewViewer opens a document's history, positioned at the latest version
func NewViewer(ctx context.Context, svc services.VersionService, doc *models.Document) (*Viewer, error) {
	versions, err := svc.Versions(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return &Viewer{
		svc:      svc,
		doc:      *doc,
		versions: versions,
		nav:      NewNavigation(len(versions)),
	}, nil
}

// Navigate applies one navigation intent to the cursor
func (v *Viewer) Navigate(intent services.NavigationIntent) {
	v.nav = v.nav.Apply(intent)
}

// Index returns the currently viewed position in the version list
func (v *Viewer) Index() int {
	return v.nav.Index()
}

// IsAtLatest reports whether the session is viewing the newest version
func (v *Viewer) IsAtLatest() bool {
	return v.nav.IsAtLatest()
}

// Viewing returns the version under the cursor, nil when the document has
// no recorded history (the head's inline state is all there is)
func (v *Viewer) Viewing() *models.DocumentVersion {
	if len(v.versions) == 0 {
		return nil
	}
	version := v.versions[v.nav.Index()]
	return &version
}

// Document returns the session's view of the head
func (v *Viewer) Document() models.Document {
	return v.doc
}

// Versions returns the fetched history
func (v *Viewer) Versions() []models.DocumentVersion {
	return v.versions
}

// Restore makes the currently viewed version the head state. On success the
// session's head is updated, the history is re-read (the restore invalidated
// the cache) and the cursor moves to latest. On failure nothing changes and
// the error is surfaced as-is; the operation is not retried.
func (v *Viewer) Restore(ctx context.Context) error {
	doc, err := v.svc.Restore(ctx, v.doc.ID, v.nav.Index())
	if err != nil {
		return err
	}

	versions, err := v.svc.Versions(ctx, v.doc.ID)
	if err != nil {
		// The restore itself committed; keep the stale list rather than
		// failing the session, the next fetch will catch up.
		versions = v.versions
	}

	v.doc = *doc
	v.versions = versions
	v.nav = NewNavigation(len(versions))
	return nil
}
