package handlers

import (
	"errors"
	"net/http"

	"github.com/josephspinelle/math-board-game/internal/models"
	"github.com/josephspinelle/math-board-game/internal/scoreboard"
)

// Scoreboard returns every player's counters as JSON, in scoreboard order.
func (s *Server) Scoreboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []models.ScoreboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// ScoreboardPlayer returns a single player's entry: /api/scoreboard/player?name=Alice
func (s *Server) ScoreboardPlayer(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	entry, err := s.store.Get(r.Context(), name)
	switch {
	case errors.Is(err, scoreboard.ErrEmptyPlayerName):
		writeError(w, http.StatusBadRequest, "missing ?name=")
	case errors.Is(err, scoreboard.ErrNotFound):
		writeError(w, http.StatusNotFound, "player not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, entry)
	}
}
