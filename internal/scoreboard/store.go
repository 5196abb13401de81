package scoreboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/josephspinelle/math-board-game/internal/models"
)

var (
	// ErrNotFound is returned by Get when no entry exists for the player.
	ErrNotFound = errors.New("scoreboard: player not found")

	// ErrEmptyPlayerName is returned when a write is attempted with a blank name.
	ErrEmptyPlayerName = errors.New("scoreboard: player name must not be empty")
)

// Store is the durable scoreboard backed by a SQLite database. It is safe for
// concurrent use; per-row atomicity is delegated to SQLite's upsert.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the scoreboard database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open scoreboard db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping scoreboard db: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	createPlayersTable := `CREATE TABLE IF NOT EXISTS players (
		player_name TEXT PRIMARY KEY,
		games_played INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

	if _, err := s.db.Exec(createPlayersTable); err != nil {
		return fmt.Errorf("create players table: %w", err)
	}
	return nil
}

// RecordResult records one finished game for playerName, creating the entry on
// first sight. The whole update is a single upsert statement, so a concurrent
// call for the same player cannot lose an increment.
func (s *Store) RecordResult(ctx context.Context, playerName string, didWin bool) error {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return ErrEmptyPlayerName
	}

	win := 0
	if didWin {
		win = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (player_name, games_played, wins, created_at, updated_at)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(player_name) DO UPDATE SET
			games_played = games_played + 1,
			wins = wins + excluded.wins,
			updated_at = excluded.updated_at
	`, playerName, win, now, now)
	if err != nil {
		return fmt.Errorf("record result for %q: %w", playerName, err)
	}
	return nil
}

// RecordGame records a completed game in one transaction: every participant's
// games_played goes up by one and the winner additionally gets a win. The
// winner must be among the participants.
func (s *Store) RecordGame(ctx context.Context, winner string, participants []string) error {
	winner = strings.TrimSpace(winner)
	if winner == "" {
		return ErrEmptyPlayerName
	}

	// Duplicate names map to one scoreboard row, so count each name once.
	var names []string
	seen := make(map[string]bool)
	for _, p := range participants {
		name := strings.TrimSpace(p)
		if name == "" {
			return ErrEmptyPlayerName
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if !seen[winner] {
		return fmt.Errorf("scoreboard: winner %q is not a participant", winner)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record game: %w", err)
	}

	for _, name := range names {
		win := 0
		if name == winner {
			win = 1
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO players (player_name, games_played, wins, created_at, updated_at)
			VALUES (?, 1, ?, ?, ?)
			ON CONFLICT(player_name) DO UPDATE SET
				games_played = games_played + 1,
				wins = wins + excluded.wins,
				updated_at = excluded.updated_at
		`, name, win, now, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("record game for %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record game: %w", err)
	}
	return nil
}

// GetAll returns every known player ordered by descending win percentage, then
// descending games played, then ascending name. Win percentage is computed at
// read time.
func (s *Store) GetAll(ctx context.Context) ([]models.ScoreboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_name, games_played, wins
		FROM players
		ORDER BY
			CASE WHEN games_played > 0 THEN 1.0 * wins / games_played ELSE 0 END DESC,
			games_played DESC,
			player_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query scoreboard: %w", err)
	}
	defer rows.Close()

	var entries []models.ScoreboardEntry
	for rows.Next() {
		var e models.ScoreboardEntry
		if err := rows.Scan(&e.PlayerName, &e.GamesPlayed, &e.Wins); err != nil {
			return nil, fmt.Errorf("scan scoreboard row: %w", err)
		}
		e.WinPercentage = models.WinPercentage(e.Wins, e.GamesPlayed)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scoreboard rows: %w", err)
	}
	return entries, nil
}

// Get looks up a single player. A missing player yields ErrNotFound, which is
// distinct from an entry whose counters happen to be zero.
func (s *Store) Get(ctx context.Context, playerName string) (models.ScoreboardEntry, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return models.ScoreboardEntry{}, ErrEmptyPlayerName
	}

	var e models.ScoreboardEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT player_name, games_played, wins FROM players WHERE player_name = ?
	`, playerName).Scan(&e.PlayerName, &e.GamesPlayed, &e.Wins)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScoreboardEntry{}, ErrNotFound
	}
	if err != nil {
		return models.ScoreboardEntry{}, fmt.Errorf("get player %q: %w", playerName, err)
	}
	e.WinPercentage = models.WinPercentage(e.Wins, e.GamesPlayed)
	return e, nil
}

// Reset deletes every entry. Admin use only.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("reset scoreboard: %w", err)
	}
	return nil
}

// DeletePlayer removes one player by exact name. Deleting an unknown player
// yields ErrNotFound.
func (s *Store) DeletePlayer(ctx context.Context, playerName string) error {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return ErrEmptyPlayerName
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE player_name = ?", playerName)
	if err != nil {
		return fmt.Errorf("delete player %q: %w", playerName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player %q: %w", playerName, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
