package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/chitram/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func seedArtifact(t *testing.T, s *store.Store, dir, filename string) *store.Artifact {
	t.Helper()

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte("not-a-real-png"), 0o644); err != nil {
		t.Fatalf("failed to write artifact file: %v", err)
	}

	a := &store.Artifact{
		ID:        uuid.NewString(),
		Filename:  filename,
		Path:      path,
		Width:     1200,
		Height:    800,
		SizeBytes: 14,
	}
	if err := s.Artifacts().Create(a); err != nil {
		t.Fatalf("failed to seed artifact: %v", err)
	}

	return a
}

func TestArtifactHandler_List(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()
	seedArtifact(t, s, dir, "whiteboard_20260301_090000.png")
	seedArtifact(t, s, dir, "whiteboard_20260301_091500.png")

	h := NewArtifactHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp listArtifactsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(resp.Artifacts))
	}
}

func TestArtifactHandler_GetAndFile(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()
	a := seedArtifact(t, s, dir, "whiteboard_20260301_090000.png")

	h := NewArtifactHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/"+a.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got artifactResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != a.ID || got.Filename != a.Filename {
		t.Errorf("got %+v, want id %s filename %s", got, a.ID, a.Filename)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/artifacts/"+a.ID+"/file", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("file status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "not-a-real-png" {
		t.Errorf("file body = %q", rec.Body.String())
	}
}

func TestArtifactHandler_NotFound(t *testing.T) {
	s := testStore(t)
	h := NewArtifactHandler(s, nil)

	for _, path := range []string{
		"/api/artifacts/" + uuid.NewString(),
		"/api/artifacts/" + uuid.NewString() + "/file",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestArtifactHandler_Delete(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()
	a := seedArtifact(t, s, dir, "whiteboard_20260301_090000.png")

	h := NewArtifactHandler(s, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/artifacts/"+a.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	if _, err := s.Artifacts().GetByID(a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("artifact still present after delete: %v", err)
	}

	// Deleting again reports not found.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestArtifactHandler_MethodNotAllowed(t *testing.T) {
	s := testStore(t)
	h := NewArtifactHandler(s, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/artifacts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestEventLogHandler_RecentAndLimit(t *testing.T) {
	s := testStore(t)

	for _, g := range []string{"write_start", "undo", "save"} {
		e := &store.Event{
			Gesture:    g,
			Confidence: 0.9,
			X:          sql.NullFloat64{Float64: 0.4, Valid: true},
			Y:          sql.NullFloat64{Float64: 0.6, Valid: true},
		}
		if err := s.Events().Append(e); err != nil {
			t.Fatalf("failed to seed event: %v", err)
		}
	}

	h := NewEventLogHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(resp.Events))
	}
	if resp.Events[0].Gesture != "save" {
		t.Errorf("newest event = %q, want save", resp.Events[0].Gesture)
	}
	if resp.Events[0].X == nil || *resp.Events[0].X != 0.4 {
		t.Errorf("event position not preserved: %+v", resp.Events[0])
	}
}

func TestEventLogHandler_RejectsBadLimit(t *testing.T) {
	s := testStore(t)
	h := NewEventLogHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=zero", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
