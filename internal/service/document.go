package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
	"folio/internal/kinds"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo     repositories.DocumentRepository
	versionRepo repositories.VersionRepository
	versions    cache.VersionCache
	kinds       *kinds.Registry
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	versionRepo repositories.VersionRepository,
	versions cache.VersionCache,
	kindRegistry *kinds.Registry,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:     docRepo,
		versionRepo: versionRepo,
		versions:    versions,
		kinds:       kindRegistry,
		logger:      logger,
	}
}

// CreateDocument creates a new document head. The initial state lives inline
// on the head; the first recorded version appears on the first edit.
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}

	now := time.Now()
	doc := &models.Document{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		ChatID:     req.ChatID,
		Title:      strings.TrimSpace(req.Title),
		Content:    *req.Content,
		Kind:       req.Kind,
		Visibility: visibility,
		Style:      req.Style,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"user_id", doc.UserID,
		"kind", doc.Kind,
		"title", doc.Title,
	)

	return doc, nil
}

// GetDocument retrieves a document by id
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// ListDocuments lists a user's documents
func (s *documentService) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	return s.docRepo.ListByUser(ctx, userID)
}

// UpdateDocument applies an edit. A title or content change appends a
// version (the store rewrites the head in the same transaction) and
// invalidates the cached history; style/visibility changes only touch the
// head row.
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Visibility != nil {
		doc.Visibility = *req.Visibility
	}
	if req.Style != nil {
		doc.Style = *req.Style
	}

	editsContent := req.Title != nil || req.Content != nil
	if !editsContent {
		doc.UpdatedAt = time.Now()
		if err := s.docRepo.Update(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	title := doc.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	content := doc.Content
	if req.Content != nil {
		content = *req.Content
	}

	version, err := s.versionRepo.CreateVersion(ctx, id, repositories.CreateVersionParams{
		Title:       title,
		Content:     content,
		DiffContent: req.DiffContent,
	})
	if err != nil {
		return nil, err
	}

	// Style/visibility are not part of the snapshot; persist them after the
	// version append rewrote the head.
	if req.Visibility != nil || req.Style != nil {
		doc.Title = title
		doc.Content = content
		doc.CurrentVersionID = &version.ID
		doc.UpdatedAt = time.Now()
		if err := s.docRepo.Update(ctx, doc); err != nil {
			return nil, err
		}
	}

	if err := s.versions.InvalidateVersions(ctx, id); err != nil {
		// Stale history is a lower-severity risk than failing the edit.
		s.logger.Warn("version cache invalidation failed after edit",
			"document_id", id,
			"error", err,
		)
	}

	s.logger.Info("document edited",
		"id", id,
		"version", version.Version,
		"version_id", version.ID,
	)

	return s.docRepo.GetByID(ctx, id)
}

// DeleteDocument deletes a document and drops its cached history
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.versions.InvalidateVersions(ctx, id); err != nil {
		s.logger.Warn("version cache invalidation failed after delete",
			"document_id", id,
			"error", err,
		)
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	if req.Content == nil {
		return fmt.Errorf("content must be provided (empty string is allowed)")
	}
	if !s.kinds.IsValid(req.Kind) {
		return fmt.Errorf("unknown document kind: %s", req.Kind)
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxDocumentTitleLength),
		),
		validation.Field(&req.Content,
			validation.Length(0, config.MaxDocumentContentLength),
		),
		validation.Field(&req.Visibility, validation.In(
			models.VisibilityPublic, models.VisibilityPrivate,
		)),
	)
}

// validateUpdateRequest validates a document edit
func (s *documentService) validateUpdateRequest(req *services.UpdateDocumentRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("title cannot be blank")
	}
	if req.Title != nil && len(*req.Title) > config.MaxDocumentTitleLength {
		return fmt.Errorf("title exceeds %d characters", config.MaxDocumentTitleLength)
	}
	if req.Content != nil && len(*req.Content) > config.MaxDocumentContentLength {
		return fmt.Errorf("content exceeds %d bytes", config.MaxDocumentContentLength)
	}
	if req.Visibility != nil {
		switch *req.Visibility {
		case models.VisibilityPublic, models.VisibilityPrivate:
		default:
			return fmt.Errorf("unknown visibility: %s", *req.Visibility)
		}
	}
	return nil
}
