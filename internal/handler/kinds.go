package handler

import (
	"net/http"

	"folio/internal/httputil"
	"folio/internal/kinds"
)

// KindsHandler exposes the document kind registry
type KindsHandler struct {
	registry *kinds.Registry
}

// NewKindsHandler creates a new kinds handler
func NewKindsHandler(registry *kinds.Registry) *KindsHandler {
	return &KindsHandler{registry: registry}
}

// ListKinds returns the closed set of document kinds
// GET /api/kinds
func (h *KindsHandler) ListKinds(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"kinds": h.registry.List(),
	})
}
