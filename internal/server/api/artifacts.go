// Package api provides HTTP API handlers for the Chitram whiteboard.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/chitram/internal/artifact"
	"github.com/ayusman/chitram/internal/store"
)

// ArtifactHandler handles HTTP requests for saved board snapshots.
type ArtifactHandler struct {
	store *store.Store
	saver *artifact.Saver
}

// NewArtifactHandler creates a new ArtifactHandler. The saver may be
// nil, in which case deletes only remove the database record.
func NewArtifactHandler(s *store.Store, saver *artifact.Saver) *ArtifactHandler {
	return &ArtifactHandler{store: s, saver: saver}
}

// ServeHTTP implements the http.Handler interface and routes requests.
// Expected paths: /api/artifacts, /api/artifacts/{id}, /api/artifacts/{id}/file
func (h *ArtifactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/artifacts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	id, wantFile := strings.CutSuffix(path, "/file")
	id = strings.TrimSuffix(id, "/")

	switch {
	case wantFile && r.Method == http.MethodGet:
		h.file(w, r, id)
	case r.Method == http.MethodGet:
		h.get(w, r, id)
	case r.Method == http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type artifactResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

type listArtifactsResponse struct {
	Artifacts []artifactResponse `json:"artifacts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Artifact to an artifactResponse.
func toResponse(a *store.Artifact) artifactResponse {
	return artifactResponse{
		ID:        a.ID,
		Filename:  a.Filename,
		Width:     a.Width,
		Height:    a.Height,
		SizeBytes: a.SizeBytes,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/artifacts.
func (h *ArtifactHandler) list(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.store.Artifacts().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}

	resp := listArtifactsResponse{Artifacts: make([]artifactResponse, 0, len(artifacts))}
	for _, a := range artifacts {
		resp.Artifacts = append(resp.Artifacts, toResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/artifacts/{id}.
func (h *ArtifactHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.store.Artifacts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "artifact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get artifact")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(a))
}

// file handles GET /api/artifacts/{id}/file and serves the PNG itself.
func (h *ArtifactHandler) file(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.store.Artifacts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "artifact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get artifact")
		return
	}

	http.ServeFile(w, r, a.Path)
}

// delete handles DELETE /api/artifacts/{id}, removing file and record.
func (h *ArtifactHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.store.Artifacts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "artifact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get artifact")
		return
	}

	if h.saver != nil {
		err = h.saver.Remove(a)
	} else {
		err = h.store.Artifacts().Delete(a.ID)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to delete artifact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
