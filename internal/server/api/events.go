package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/chitram/internal/store"
)

// EventLogHandler serves the recent gesture command log.
type EventLogHandler struct {
	store *store.Store
}

// NewEventLogHandler creates a new EventLogHandler with the given store.
func NewEventLogHandler(s *store.Store) *EventLogHandler {
	return &EventLogHandler{store: s}
}

type eventResponse struct {
	ID         int64    `json:"id"`
	Gesture    string   `json:"gesture"`
	Confidence float64  `json:"confidence"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// ServeHTTP handles GET /api/events?limit=N.
func (h *EventLogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	resp := listEventsResponse{Events: make([]eventResponse, 0, len(events))}
	for _, e := range events {
		er := eventResponse{
			ID:         e.ID,
			Gesture:    e.Gesture,
			Confidence: e.Confidence,
			CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if e.X.Valid {
			x := e.X.Float64
			er.X = &x
		}
		if e.Y.Valid {
			y := e.Y.Float64
			er.Y = &y
		}
		resp.Events = append(resp.Events, er)
	}

	writeJSON(w, http.StatusOK, resp)
}
