package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/cache"
	"folio/internal/domain/models"
	"folio/internal/kinds"
	"folio/internal/middleware"
	"folio/internal/notify"
	"folio/internal/repository/memory"
	"folio/internal/service"
)

// newTestServer wires the full handler stack over the in-memory store, with
// the same routes and middleware the server binary registers.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	versionCache := cache.NewMemoryCache(store)
	registry, err := kinds.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	bus := notify.NewBus(logger)

	docService := service.NewDocumentService(store, store, versionCache, registry, logger)
	versionService := service.NewVersionService(store, versionCache, bus, logger)

	docHandler := NewDocumentHandler(docService, logger)
	versionHandler := NewVersionHandler(versionService, logger)
	kindsHandler := NewKindsHandler(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", docHandler.HealthCheck)
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("GET /api/documents/{id}/versions", versionHandler.ListVersions)
	mux.HandleFunc("GET /api/documents/{id}/versions/verify", versionHandler.VerifyChain)
	mux.HandleFunc("GET /api/documents/{id}/versions/{versionId}", versionHandler.GetVersion)
	mux.HandleFunc("POST /api/documents/{id}/restore", versionHandler.RestoreVersion)
	mux.HandleFunc("GET /api/kinds", kindsHandler.ListKinds)

	var handler http.Handler = mux
	handler = middleware.Identity()(handler)
	handler = middleware.Recovery(logger)(handler)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("X-User-ID", "user-1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, data
}

func createTestDocument(t *testing.T, srv *httptest.Server) models.Document {
	t.Helper()
	resp, body := doRequest(t, srv, http.MethodPost, "/api/documents", map[string]any{
		"title":   "Notes",
		"content": "initial",
		"kind":    "text",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create document: status %d, body %s", resp.StatusCode, body)
	}
	var doc models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	return doc
}

func TestCreateAndGetDocument(t *testing.T) {
	srv := newTestServer(t)
	doc := createTestDocument(t, srv)

	resp, body := doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get document: status %d, body %s", resp.StatusCode, body)
	}
	var got models.Document
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	if got.ID != doc.ID || got.Content != "initial" {
		t.Errorf("got %+v, want the created document", got)
	}
}

func TestCreateDocumentRejectsBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing content", map[string]any{"title": "Notes", "kind": "text"}},
		{"unknown kind", map[string]any{"title": "Notes", "content": "", "kind": "hologram"}},
		{"empty title", map[string]any{"title": "", "content": "", "kind": "text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, srv, http.MethodPost, "/api/documents", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", resp.StatusCode, body)
			}
		})
	}
}

func TestMissingIdentityHeader(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/documents", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestHealthSkipsIdentity(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/documents/does-not-exist", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestEditRestoreFlow(t *testing.T) {
	srv := newTestServer(t)
	doc := createTestDocument(t, srv)

	// Three edits, three versions.
	for i := 1; i <= 3; i++ {
		resp, body := doRequest(t, srv, http.MethodPatch, "/api/documents/"+doc.ID, map[string]any{
			"content": fmt.Sprintf("draft %d", i),
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("edit %d: status %d, body %s", i, resp.StatusCode, body)
		}
	}

	resp, body := doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID+"/versions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list versions: status %d, body %s", resp.StatusCode, body)
	}
	var list struct {
		Versions []struct {
			ID      string `json:"id"`
			Version int    `json:"version"`
			Display struct {
				Day string `json:"day"`
			} `json:"display"`
		} `json:"versions"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal versions: %v", err)
	}
	if len(list.Versions) != 3 {
		t.Fatalf("got %d versions, want 3", len(list.Versions))
	}
	for i, v := range list.Versions {
		if v.Version != i+1 {
			t.Errorf("versions[%d].Version = %d, want %d", i, v.Version, i+1)
		}
		if v.Display.Day != "Today" {
			t.Errorf("versions[%d] day label = %q, want Today", i, v.Display.Day)
		}
	}

	// Restore the oldest version; the head carries its content again.
	resp, body = doRequest(t, srv, http.MethodPost, "/api/documents/"+doc.ID+"/restore", map[string]any{
		"index": 0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restore: status %d, body %s", resp.StatusCode, body)
	}
	var restored models.Document
	if err := json.Unmarshal(body, &restored); err != nil {
		t.Fatalf("unmarshal restored head: %v", err)
	}
	if restored.Content != "draft 1" {
		t.Errorf("restored content = %q, want %q", restored.Content, "draft 1")
	}

	// History is intact and the chain still verifies.
	resp, _ = doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID+"/versions/verify", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("verify: status = %d, want 200", resp.StatusCode)
	}
	resp, body = doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID+"/versions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list versions after restore: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal versions: %v", err)
	}
	if len(list.Versions) != 3 {
		t.Errorf("got %d versions after restore, want 3", len(list.Versions))
	}
}

func TestRestoreOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	doc := createTestDocument(t, srv)

	doRequest(t, srv, http.MethodPatch, "/api/documents/"+doc.ID, map[string]any{"content": "x"})

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/documents/"+doc.ID+"/restore", map[string]any{
		"index": 7,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetSingleVersion(t *testing.T) {
	srv := newTestServer(t)
	doc := createTestDocument(t, srv)

	doRequest(t, srv, http.MethodPatch, "/api/documents/"+doc.ID, map[string]any{"content": "revised"})

	resp, body := doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID+"/versions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list versions: status %d", resp.StatusCode)
	}
	var list struct {
		Versions []struct {
			ID string `json:"id"`
		} `json:"versions"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal versions: %v", err)
	}
	if len(list.Versions) != 1 {
		t.Fatalf("got %d versions, want 1", len(list.Versions))
	}

	resp, body = doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID+"/versions/"+list.Versions[0].ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get version: status %d, body %s", resp.StatusCode, body)
	}
	var version models.DocumentVersion
	if err := json.Unmarshal(body, &version); err != nil {
		t.Fatalf("unmarshal version: %v", err)
	}
	if version.Content != "revised" {
		t.Errorf("version content = %q, want %q", version.Content, "revised")
	}
}

func TestDeleteDocument(t *testing.T) {
	srv := newTestServer(t)
	doc := createTestDocument(t, srv)

	resp, _ := doRequest(t, srv, http.MethodDelete, "/api/documents/"+doc.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", resp.StatusCode)
	}
	resp, _ = doRequest(t, srv, http.MethodGet, "/api/documents/"+doc.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestListKinds(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodGet, "/api/kinds", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list kinds: status %d, body %s", resp.StatusCode, body)
	}
	var list struct {
		Kinds []kinds.Kind `json:"kinds"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal kinds: %v", err)
	}
	if len(list.Kinds) != 4 {
		t.Errorf("got %d kinds, want 4", len(list.Kinds))
	}
}
