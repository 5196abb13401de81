package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/josephspinelle/math-board-game/internal/game"
	"github.com/josephspinelle/math-board-game/internal/handlers"
	"github.com/josephspinelle/math-board-game/internal/scoreboard"
)

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s in %s", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start).Round(time.Microsecond))
	})
}

func serve(cfg *Config) error {
	if dir := filepath.Dir(cfg.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	store, err := scoreboard.Open(cfg.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tmpl, err := template.ParseGlob(filepath.Join(cfg.webDir, "templates", "*.html"))
	if err != nil {
		return err
	}

	srv := handlers.New(store, game.NewSessionStore(), tmpl, cfg.adminToken)

	router := mux.NewRouter()
	if cfg.verbose {
		router.Use(requestLogger)
	}
	srv.Routes(router)

	fs := http.FileServer(http.Dir(filepath.Join(cfg.webDir, "static")))
	router.PathPrefix("/static/").Handler(noCache(http.StripPrefix("/static/", fs)))

	log.Printf("Server started on %s", cfg.addr())
	return http.ListenAndServe(cfg.addr(), router)
}

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := newCmd(cfg).Execute(); err != nil {
		log.Fatal(err)
	}
}
