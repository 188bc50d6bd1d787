package handler

import (
	"log/slog"
	"net/http"
	"time"

	"folio/internal/display"
	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// VersionHandler handles version-history HTTP requests
type VersionHandler struct {
	versionService services.VersionService
	logger         *slog.Logger
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(versionService services.VersionService, logger *slog.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

// versionsResponse pairs the raw history with render-ready labels
type versionsResponse struct {
	Versions []versionEntry `json:"versions"`
}

type versionEntry struct {
	ID                string                 `json:"id"`
	Version           int                    `json:"version"`
	Title             string                 `json:"title"`
	DiffContent       *string                `json:"diff_content,omitempty"`
	PreviousVersionID *string                `json:"previous_version_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	Display           display.VersionDisplay `json:"display"`
}

// ListVersions returns the document's history, oldest first
// GET /api/documents/{id}/versions
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	versions, err := h.versionService.Versions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	now := time.Now()
	resp := versionsResponse{Versions: make([]versionEntry, len(versions))}
	for i, v := range versions {
		resp.Versions[i] = versionEntry{
			ID:                v.ID,
			Version:           v.Version,
			Title:             v.Title,
			DiffContent:       v.DiffContent,
			PreviousVersionID: v.PreviousVersionID,
			CreatedAt:         v.CreatedAt,
			Display:           display.ForVersion(v, now),
		}
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// GetVersion retrieves one version with its full content
// GET /api/documents/{id}/versions/{versionId}
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	versionID := r.PathValue("versionId")
	if id == "" || versionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document and version IDs are required")
		return
	}

	version, err := h.versionService.GetVersion(r.Context(), id, versionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, version)
}

// restoreRequest targets a position in the ordered history
type restoreRequest struct {
	Index int `json:"index"`
}

// RestoreVersion makes the version at the given history index the head again
// POST /api/documents/{id}/restore
func (h *VersionHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	var req restoreRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.versionService.Restore(r.Context(), id, req.Index)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// VerifyChain checks the chain invariants, for operators and tests
// GET /api/documents/{id}/versions/verify
func (h *VersionHandler) VerifyChain(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	if err := h.versionService.VerifyChain(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
