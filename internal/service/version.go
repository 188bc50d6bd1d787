package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"folio/internal/cache"
	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
	"folio/internal/notify"
)

// versionService implements the VersionService interface
type versionService struct {
	versionRepo repositories.VersionRepository
	versions    cache.VersionCache
	notifier    notify.Notifier
	logger      *slog.Logger

	// One restore in flight per document; a second attempt is rejected,
	// not queued.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewVersionService creates a new version service
func NewVersionService(
	versionRepo repositories.VersionRepository,
	versions cache.VersionCache,
	notifier notify.Notifier,
	logger *slog.Logger,
) services.VersionService {
	return &versionService{
		versionRepo: versionRepo,
		versions:    versions,
		notifier:    notifier,
		logger:      logger,
		inFlight:    make(map[string]struct{}),
	}
}

// Versions returns the document's history through the cache
func (s *versionService) Versions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	return s.versions.GetVersions(ctx, documentID)
}

// GetVersion retrieves a single version
func (s *versionService) GetVersion(ctx context.Context, documentID, versionID string) (*models.DocumentVersion, error) {
	return s.versionRepo.GetVersion(ctx, documentID, versionID)
}

// Restore makes the version at index the head state again. Restoring the
// already-current version is content-idempotent but still invalidates the
// cache and still counts as a completed restore.
func (s *versionService) Restore(ctx context.Context, documentID string, index int) (*models.Document, error) {
	if err := s.acquire(documentID); err != nil {
		return nil, err
	}
	defer s.release(documentID)

	// Resolve the index against the ordered history before touching the
	// store; a bad index must fail fast.
	versions, err := s.versions.GetVersions(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: document %s has no recorded versions", domain.ErrValidation, documentID)
	}
	if index < 0 || index >= len(versions) {
		return nil, fmt.Errorf("%w: version index %d out of range [0,%d)", domain.ErrValidation, index, len(versions))
	}
	target := versions[index]

	doc, err := s.versionRepo.RestoreVersion(ctx, documentID, target.ID)
	if err != nil {
		return nil, err
	}

	if err := s.versions.InvalidateVersions(ctx, documentID); err != nil {
		// The restore committed; a failed invalidation only risks a stale
		// read later and must not fail the operation.
		s.logger.Warn("version cache invalidation failed after restore",
			"document_id", documentID,
			"version_id", target.ID,
			"error", err,
		)
	}

	s.notifier.PublishRestore(notify.RestoreEvent{
		DocumentID: doc.ID,
		Content:    doc.Content,
		Title:      doc.Title,
	})

	s.logger.Info("version restored",
		"document_id", documentID,
		"version", target.Version,
		"version_id", target.ID,
	)

	return doc, nil
}

// VerifyChain checks the document's chain invariants
func (s *versionService) VerifyChain(ctx context.Context, documentID string) error {
	return s.versionRepo.VerifyChain(ctx, documentID)
}

func (s *versionService) acquire(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[documentID]; busy {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a restore is already in progress for document %s", documentID),
			ResourceType: "document",
			ResourceID:   documentID,
		}
	}
	s.inFlight[documentID] = struct{}{}
	return nil
}

func (s *versionService) release(documentID string) {
	s.mu.Lock()
	delete(s.inFlight, documentID)
	s.mu.Unlock()
}
