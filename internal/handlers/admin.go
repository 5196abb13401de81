package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/josephspinelle/math-board-game/internal/scoreboard"
)

// requireAdmin checks the shared admin token, taken from ?token= or the
// X-Admin-Token header. An unset token disables the admin surface.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("X-Admin-Token")
	}
	if s.adminToken == "" || token != s.adminToken {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

// AdminReset deletes every scoreboard entry.
func (s *Server) AdminReset(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	if err := s.store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Scoreboard cleared.")
}

// AdminDeletePlayer deletes one player by exact name:
// /admin/delete_player?name=Alice&token=...
func (s *Server) AdminDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	name := r.URL.Query().Get("name")
	err := s.store.DeletePlayer(r.Context(), name)
	switch {
	case errors.Is(err, scoreboard.ErrEmptyPlayerName):
		writeError(w, http.StatusBadRequest, "missing ?name=")
	case errors.Is(err, scoreboard.ErrNotFound):
		writeError(w, http.StatusNotFound, "player not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		// The name is caller-supplied; an explicit plain-text type keeps the
		// sniffer from treating it as HTML.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "Deleted player: %s\n", name)
	}
}
