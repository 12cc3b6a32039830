package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/shared"
)

// maxBodyBytes caps the mood request body.
const maxBodyBytes = 4 << 10

// Lookup finds the newest saved result for a mood. [repositories.HistoryRepository] implements it.
type Lookup interface {
	LatestForMood(mood string) (*models.HistoryEntry, error)
}

// ReplayHandler serves recorded recommendations over the backend's wire format.
type ReplayHandler struct {
	history Lookup
	logger  *log.Logger
}

// NewReplayHandler creates a handler answering from history.
func NewReplayHandler(history Lookup, logger *log.Logger) *ReplayHandler {
	return &ReplayHandler{history: history, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ReplayHandler) Routes() []string {
	return []string{"/recommend"}
}

func (h *ReplayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var query models.MoodQuery
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood := shared.NormalizeMood(query.Mood)
	if mood == "" {
		writeError(w, http.StatusBadRequest, shared.ErrEmptyMood.Error())
		return
	}

	entry, err := h.history.LatestForMood(mood)
	switch {
	case errors.Is(err, shared.ErrHistoryNotFound):
		writeError(w, http.StatusNotFound, "no saved songs for this mood")
		return
	case err != nil:
		h.logger.Error("history lookup failed", "mood", mood, "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}

	songs := entry.Songs
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, models.RecommendationResult{Mood: entry.Mood, Songs: songs})
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
