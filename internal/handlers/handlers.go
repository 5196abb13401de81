package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/josephspinelle/math-board-game/internal/game"
	"github.com/josephspinelle/math-board-game/internal/models"
	"github.com/josephspinelle/math-board-game/internal/questions"
	"github.com/josephspinelle/math-board-game/internal/scoreboard"
)

const (
	sessionCookie     = "session_id"
	maxUploadBytes    = 10 << 20
	scoreboardDisplay = 50
)

// Server bundles the handler dependencies: the durable scoreboard, the
// in-memory game sessions, and the page template. It is wired once at startup
// rather than reached through package globals.
type Server struct {
	store      *scoreboard.Store
	sessions   *game.SessionStore
	tmpl       *template.Template
	adminToken string
}

// New creates a Server. adminToken may be empty, which disables the admin
// endpoints entirely.
func New(store *scoreboard.Store, sessions *game.SessionStore, tmpl *template.Template, adminToken string) *Server {
	return &Server{
		store:      store,
		sessions:   sessions,
		tmpl:       tmpl,
		adminToken: adminToken,
	}
}

// Routes registers every handler on r.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/", s.Index).Methods(http.MethodGet)
	r.HandleFunc("/setup", s.Setup).Methods(http.MethodPost)
	r.HandleFunc("/roll", s.Roll).Methods(http.MethodPost)
	r.HandleFunc("/answer", s.Answer).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.Reset).Methods(http.MethodPost)
	r.HandleFunc("/upload_questions", s.UploadQuestions).Methods(http.MethodPost)
	r.HandleFunc("/export_scoreboard.csv", s.ExportScoreboard).Methods(http.MethodGet)

	r.HandleFunc("/api/scoreboard", s.Scoreboard).Methods(http.MethodGet)
	r.HandleFunc("/api/scoreboard/player", s.ScoreboardPlayer).Methods(http.MethodGet)

	r.HandleFunc("/admin/reset", s.AdminReset).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/admin/delete_player", s.AdminDeletePlayer).Methods(http.MethodGet, http.MethodPost)
}

// session returns the caller's game session, creating one (and setting the
// cookie) on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *game.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(cookie.Value); ok {
			return sess
		}
	}

	sess := game.NewSession()
	s.sessions.Put(sess)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

// pageData is what the index template renders.
type pageData struct {
	State      game.State
	Scoreboard []models.ScoreboardEntry
}

// Index renders the game page with the current session state and scoreboard.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	entries, err := s.store.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(entries) > scoreboardDisplay {
		entries = entries[:scoreboardDisplay]
	}

	data := pageData{
		State:      sess.Snapshot(),
		Scoreboard: entries,
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("ERROR: render index: %v", err)
	}
}

// Setup starts a new game with the submitted player names (name1..name4).
func (s *Server) Setup(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var names []string
	for i := 1; i <= game.MaxPlayers; i++ {
		names = append(names, r.FormValue(fmt.Sprintf("name%d", i)))
	}

	if err := sess.Setup(names); err != nil {
		sess.SetMessage(err.Error())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Roll rolls the die for the current player.
func (s *Server) Roll(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if _, _, err := sess.Roll(); err != nil {
		switch {
		case errors.Is(err, game.ErrNoPlayers):
			sess.SetMessage("Set up players first.")
		case errors.Is(err, game.ErrAwaitingAnswer), errors.Is(err, game.ErrGameOver):
			// Nothing to do; the page already shows the pending state.
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Answer checks the submitted answer, moves the player, and on a win records
// the finished game to the scoreboard.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := sess.Answer(r.FormValue("answer"))
	if err != nil {
		// Double submit or stale page; just show the current state.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if out.Won {
		if err := s.store.RecordGame(r.Context(), out.PlayerName, sess.PlayerNames()); err != nil {
			log.Printf("ERROR: record game result: %v", err)
			sess.SetMessage(fmt.Sprintf("%s wins, but saving the result failed: %v", out.PlayerName, err))
		} else {
			sess.SetMessage(fmt.Sprintf("%s wins! Result recorded.", out.PlayerName))
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reset discards the caller's session and starts a fresh one.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	s.session(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UploadQuestions loads questions into the session bank from an uploaded CSV
// file and/or pasted CSV text.
func (s *Server) UploadQuestions(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var items []models.QuestionItem
	skipped := 0

	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		bank, err := questions.Parse(file)
		if err != nil {
			sess.SetMessage("Upload failed: " + err.Error())
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		items = append(items, bank.Items...)
		skipped += bank.Skipped
	}

	if pasted := strings.TrimSpace(r.FormValue("pasted")); pasted != "" {
		bank, err := questions.ParseText(pasted)
		if err != nil {
			sess.SetMessage("Pasted CSV rejected: " + err.Error())
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		items = append(items, bank.Items...)
		skipped += bank.Skipped
	}

	if len(items) == 0 {
		sess.SetMessage("No questions found. Use CSV with headers q,a or question,answer.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	added := sess.AddQuestions(items)
	msg := fmt.Sprintf("Loaded %d questions.", added)
	if skipped > 0 {
		msg += fmt.Sprintf(" Skipped %d bad rows.", skipped)
	}
	sess.SetMessage(msg)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ExportScoreboard streams the scoreboard as a CSV attachment.
func (s *Server) ExportScoreboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scoreboard.csv"`)

	if err := s.store.Export(r.Context(), w); err != nil {
		log.Printf("ERROR: export scoreboard: %v", err)
	}
}
