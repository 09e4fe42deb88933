// Package server provides the HTTP API for the Chitram whiteboard.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/chitram/internal/artifact"
	"github.com/ayusman/chitram/internal/board"
	"github.com/ayusman/chitram/internal/server/api"
	"github.com/ayusman/chitram/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Board     *board.Board
	Saver     *artifact.Saver
	Events    *EventsHub

	// Recognition, when set, is reported by the health endpoint.
	Recognition interface{ IsEnabled() bool }
}

// Server represents the HTTP server for the Chitram application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Board != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/snapshot", s.handleSnapshot)
		s.mux.HandleFunc("/api/save", s.handleSave)
		s.mux.HandleFunc("/api/shape/cycle", s.handleCycleShape)
		s.mux.HandleFunc("/api/color/cycle", s.handleCycleColor)
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Board))
	}

	if s.config.Store != nil {
		artifactHandler := api.NewArtifactHandler(s.config.Store, s.config.Saver)
		s.mux.Handle("/api/artifacts", artifactHandler)
		s.mux.Handle("/api/artifacts/", artifactHandler)

		s.mux.Handle("/api/events", api.NewEventLogHandler(s.config.Store))
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/ws", s.config.Events)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.Recognition != nil {
		if s.config.Recognition.IsEnabled() {
			response["recognition"] = "enabled"
		} else {
			response["recognition"] = "disabled"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state and returns the board state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.Board.State()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleSnapshot handles GET requests to /api/snapshot and returns the
// composited board as a PNG image.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img := s.config.Board.Render()
	defer img.Close()

	buf, err := gocv.IMEncode(".png", img)
	if err != nil {
		http.Error(w, "Failed to encode snapshot", http.StatusInternalServerError)
		return
	}
	defer buf.Close()

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.GetBytes())
}

// handleSave handles POST requests to /api/save, writing the board to disk.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filename, err := s.config.Board.SaveNow()
	if err != nil {
		http.Error(w, "Failed to save board", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"filename": filename})
}

// handleCycleShape handles POST requests to /api/shape/cycle.
func (s *Server) handleCycleShape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shape := s.config.Board.CycleShape()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"shape": shape.String()})
}

// handleCycleColor handles POST requests to /api/color/cycle.
func (s *Server) handleCycleColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := s.config.Board.CycleColor()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"color": name})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
