package kinds

import (
	"testing"

	"folio/internal/domain/models"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	kinds := r.List()
	if len(kinds) != 4 {
		t.Fatalf("List() returned %d kinds, want 4", len(kinds))
	}

	for _, id := range []models.DocumentKind{
		models.KindText, models.KindCode, models.KindImage, models.KindSheet,
	} {
		if !r.IsValid(id) {
			t.Errorf("IsValid(%q) = false, want true", id)
		}
		kind, err := r.Get(id)
		if err != nil {
			t.Errorf("Get(%q) error = %v", id, err)
			continue
		}
		if kind.DisplayName == "" || kind.Editor == "" {
			t.Errorf("kind %q missing display metadata: %+v", id, kind)
		}
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if r.IsValid("hologram") {
		t.Error("IsValid(hologram) = true, want false")
	}
	if _, err := r.Get("hologram"); err == nil {
		t.Error("Get(hologram) did not fail")
	}
}

func TestRegistryDiffableKinds(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		id   models.DocumentKind
		want bool
	}{
		{models.KindText, true},
		{models.KindCode, true},
		{models.KindImage, false},
	}
	for _, tt := range tests {
		kind, err := r.Get(tt.id)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", tt.id, err)
		}
		if kind.Diffable != tt.want {
			t.Errorf("kind %q diffable = %v, want %v", tt.id, kind.Diffable, tt.want)
		}
	}
}
