package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// Store is a mutex-guarded in-memory store implementing both the document
// and the version repository interfaces. It backs unit tests and local
// development without a database.
//
// The single mutex serializes all writes, which is exactly the per-document
// serialization the version-number computation needs.
type Store struct {
	mu        sync.Mutex
	documents map[string]*models.Document
	versions  map[string][]*models.DocumentVersion // documentID -> chain, version order
}

var (
	_ repositories.DocumentRepository = (*Store)(nil)
	_ repositories.VersionRepository  = (*Store)(nil)
)

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		documents: make(map[string]*models.Document),
		versions:  make(map[string][]*models.DocumentVersion),
	}
}

// Create creates a new document head
func (s *Store) Create(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if _, ok := s.documents[doc.ID]; ok {
		return fmt.Errorf("document %s already exists: %w", doc.ID, domain.ErrConflict)
	}

	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = doc.CreatedAt

	copied := *doc
	s.documents[doc.ID] = &copied
	return nil
}

// GetByID retrieves a document by ID
func (s *Store) GetByID(ctx context.Context, id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

// ListByUser lists a user's documents, most recently updated first
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Document
	for _, doc := range s.documents {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Update overwrites the head's mutable fields
func (s *Store) Update(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ID]
	if !ok {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	existing.Title = doc.Title
	existing.Content = doc.Content
	existing.Visibility = doc.Visibility
	existing.CurrentVersionID = doc.CurrentVersionID
	existing.Style = doc.Style
	existing.UpdatedAt = time.Now()
	doc.UpdatedAt = existing.UpdatedAt
	return nil
}

// Delete deletes a document and cascades to its versions
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	delete(s.documents, id)
	delete(s.versions, id)
	return nil
}

// CreateVersion appends a snapshot to the chain and rewrites the head.
// The mutex makes the max(version)+1 computation atomic with the insert.
func (s *Store) CreateVersion(ctx context.Context, documentID string, params repositories.CreateVersionParams) (*models.DocumentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	chain := s.versions[documentID]
	nextVersion := 1
	var previousVersionID *string
	if len(chain) > 0 {
		tip := chain[len(chain)-1]
		nextVersion = tip.Version + 1
		tipID := tip.ID
		previousVersionID = &tipID
	}

	now := time.Now()
	version := &models.DocumentVersion{
		ID:                uuid.NewString(),
		DocumentID:        documentID,
		Version:           nextVersion,
		Title:             params.Title,
		Content:           params.Content,
		DiffContent:       params.DiffContent,
		PreviousVersionID: previousVersionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.versions[documentID] = append(chain, version)

	doc.Title = params.Title
	doc.Content = params.Content
	doc.CurrentVersionID = &version.ID
	doc.UpdatedAt = now

	copied := *version
	return &copied, nil
}

// ListVersions returns the chain in version order; empty when no history
func (s *Store) ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain := s.versions[documentID]
	out := make([]models.DocumentVersion, 0, len(chain))
	for _, v := range chain {
		out = append(out, *v)
	}
	return out, nil
}

// GetVersion retrieves one version scoped to its document
func (s *Store) GetVersion(ctx context.Context, documentID, versionID string) (*models.DocumentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.versions[documentID] {
		if v.ID == versionID {
			copied := *v
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("version %s of document %s: %w", versionID, documentID, domain.ErrNotFound)
}

// RestoreVersion overwrites the head with the target's content/title.
// Later versions stay intact.
func (s *Store) RestoreVersion(ctx context.Context, documentID, versionID string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	var target *models.DocumentVersion
	for _, v := range s.versions[documentID] {
		if v.ID == versionID {
			target = v
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("version %s of document %s: %w", versionID, documentID, domain.ErrNotFound)
	}

	doc.Title = target.Title
	doc.Content = target.Content
	doc.CurrentVersionID = &target.ID
	doc.UpdatedAt = time.Now()

	copied := *doc
	return &copied, nil
}

// VerifyChain walks the chain tip-to-root with a depth guard
func (s *Store) VerifyChain(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain := s.versions[documentID]
	if len(chain) == 0 {
		return nil
	}

	byID := make(map[string]*models.DocumentVersion, len(chain))
	for _, v := range chain {
		byID[v.ID] = v
	}

	node := chain[len(chain)-1]
	expected := node.Version
	steps := 0
	for {
		if steps >= config.MaxVersionChainDepth {
			return fmt.Errorf("version chain of document %s exceeds depth guard, possible cycle: %w", documentID, domain.ErrConflict)
		}
		if node.Version != expected {
			return fmt.Errorf("version chain of document %s: expected %d, found %d: %w",
				documentID, expected, node.Version, domain.ErrConflict)
		}
		if node.PreviousVersionID == nil {
			if node.Version != 1 {
				return fmt.Errorf("version chain of document %s: root is version %d, want 1: %w",
					documentID, node.Version, domain.ErrConflict)
			}
			return nil
		}
		prev, ok := byID[*node.PreviousVersionID]
		if !ok {
			return fmt.Errorf("version chain of document %s: dangling previous_version_id %s: %w",
				documentID, *node.PreviousVersionID, domain.ErrConflict)
		}
		node = prev
		expected--
		steps++
	}
}
