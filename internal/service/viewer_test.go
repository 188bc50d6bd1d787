package service

import (
	"context"
	"errors"
	"testing"

	"folio/internal/domain/services"
)

func TestViewerOpensAtLatest(t *testing.T) {
	f := newVersionFixture(t, 3)
	ctx := context.Background()

	doc, err := f.store.GetByID(ctx, f.doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	viewer, err := NewViewer(ctx, f.svc, doc)
	if err != nil {
		t.Fatalf("NewViewer() error = %v", err)
	}

	if !viewer.IsAtLatest() {
		t.Error("viewer did not open at latest")
	}
	viewing := viewer.Viewing()
	if viewing == nil || viewing.Version != 3 {
		t.Errorf("Viewing() = %+v, want version 3", viewing)
	}
}

func TestViewerNoHistory(t *testing.T) {
	f := newVersionFixture(t, 0)
	ctx := context.Background()

	doc, err := f.store.GetByID(ctx, f.doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	viewer, err := NewViewer(ctx, f.svc, doc)
	if err != nil {
		t.Fatalf("NewViewer() error = %v", err)
	}
	if viewer.Viewing() != nil {
		t.Errorf("Viewing() = %+v for a document without history, want nil", viewer.Viewing())
	}
}

func TestViewerRestore(t *testing.T) {
	f := newVersionFixture(t, 3)
	ctx := context.Background()

	doc, err := f.store.GetByID(ctx, f.doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	viewer, err := NewViewer(ctx, f.svc, doc)
	if err != nil {
		t.Fatalf("NewViewer() error = %v", err)
	}

	viewer.Navigate(services.NavPrev)
	viewer.Navigate(services.NavPrev)
	if viewer.Index() != 0 {
		t.Fatalf("Index() = %d, want 0", viewer.Index())
	}

	if err := viewer.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	// After a restore the session shows the rewritten head and the cursor
	// snaps back to latest.
	if got := viewer.Document(); got.Content != "content 1" {
		t.Errorf("session head content = %q, want %q", got.Content, "content 1")
	}
	if !viewer.IsAtLatest() {
		t.Error("cursor not at latest after restore")
	}
	if len(viewer.Versions()) != 3 {
		t.Errorf("session history has %d versions, want 3", len(viewer.Versions()))
	}
}

func TestViewerRestoreFailureLeavesSessionUntouched(t *testing.T) {
	f := newVersionFixture(t, 3)
	ctx := context.Background()

	doc, err := f.store.GetByID(ctx, f.doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	viewer, err := NewViewer(ctx, f.svc, doc)
	if err != nil {
		t.Fatalf("NewViewer() error = %v", err)
	}
	viewer.Navigate(services.NavPrev)

	storeErr := errors.New("connection reset")
	f.gate.mu.Lock()
	f.gate.err = storeErr
	f.gate.mu.Unlock()

	if err := viewer.Restore(ctx); !errors.Is(err, storeErr) {
		t.Fatalf("Restore() error = %v, want %v", err, storeErr)
	}

	if viewer.Index() != 1 {
		t.Errorf("cursor moved on failed restore: index = %d, want 1", viewer.Index())
	}
	if got := viewer.Document(); got.Content != doc.Content {
		t.Errorf("session head changed on failed restore")
	}
}
