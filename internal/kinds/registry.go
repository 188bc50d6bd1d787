// Package kinds holds the closed set of document kinds and their display
// metadata, loaded once from an embedded YAML file.
package kinds

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
	"folio/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Kind describes one document kind for validation and the UI
type Kind struct {
	ID          models.DocumentKind `yaml:"id" json:"id"`
	DisplayName string              `yaml:"display_name" json:"display_name"`
	Editor      string              `yaml:"editor" json:"editor"`
	Description string              `yaml:"description" json:"description"`
	Diffable    bool                `yaml:"diffable" json:"diffable"` // Whether diff_content is meaningful
}

type kindsFile struct {
	Kinds []Kind `yaml:"kinds"`
}

// Registry answers which document kinds exist
type Registry struct {
	mu    sync.RWMutex
	kinds []Kind
	byID  map[models.DocumentKind]*Kind
}

// NewRegistry loads the embedded kind definitions
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("read kinds config: %w", err)
	}

	var file kindsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal kinds config: %w", err)
	}
	if len(file.Kinds) == 0 {
		return nil, fmt.Errorf("kinds config defines no kinds")
	}

	r := &Registry{
		kinds: file.Kinds,
		byID:  make(map[models.DocumentKind]*Kind, len(file.Kinds)),
	}
	for i := range r.kinds {
		r.byID[r.kinds[i].ID] = &r.kinds[i]
	}
	return r, nil
}

// Get returns a kind's metadata
func (r *Registry) Get(id models.DocumentKind) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown document kind: %s", id)
	}
	return kind, nil
}

// IsValid reports whether the kind exists
func (r *Registry) IsValid(id models.DocumentKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// List returns all kinds in YAML order
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kinds
}
