package scoreboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "scoreboard.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordResultAccumulatesCounters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	results := []bool{true, false, true, false, false}
	wantWins := 0
	for _, didWin := range results {
		if err := store.RecordResult(ctx, "alice", didWin); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
		if didWin {
			wantWins++
		}
	}

	entry, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.GamesPlayed != len(results) {
		t.Errorf("games played = %d, want %d", entry.GamesPlayed, len(results))
	}
	if entry.Wins != wantWins {
		t.Errorf("wins = %d, want %d", entry.Wins, wantWins)
	}
	if entry.Wins > entry.GamesPlayed {
		t.Errorf("wins %d exceeds games played %d", entry.Wins, entry.GamesPlayed)
	}
	if want := 40.0; entry.WinPercentage != want {
		t.Errorf("win percentage = %v, want %v", entry.WinPercentage, want)
	}
}

func TestRecordResultRejectsEmptyName(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "   "} {
		if err := store.RecordResult(context.Background(), name, true); !errors.Is(err, ErrEmptyPlayerName) {
			t.Errorf("RecordResult(%q) = %v, want ErrEmptyPlayerName", name, err)
		}
	}
}

func TestGetMissingPlayer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(nobody) = %v, want ErrNotFound", err)
	}

	// A real zero-win entry must not be confused with a miss.
	if err := store.RecordResult(ctx, "bob", false); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	entry, err := store.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("Get(bob) = %v, want nil", err)
	}
	if entry.Wins != 0 || entry.GamesPlayed != 1 {
		t.Errorf("entry = %+v, want 0 wins over 1 game", entry)
	}
	if entry.WinPercentage != 0 {
		t.Errorf("win percentage = %v, want 0", entry.WinPercentage)
	}
}

func TestGetAllOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// carol: 3/3 (100%), alice: 1/1 (100%), bob: 1/2 (50%), erin: 0/2 (0%).
	seed := []struct {
		name   string
		didWin bool
	}{
		{"bob", true}, {"bob", false},
		{"erin", false}, {"erin", false},
		{"alice", true},
		{"carol", true}, {"carol", true}, {"carol", true},
	}
	for _, s := range seed {
		if err := store.RecordResult(ctx, s.name, s.didWin); err != nil {
			t.Fatalf("RecordResult(%q): %v", s.name, err)
		}
	}

	entries, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	want := []string{"carol", "alice", "bob", "erin"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].PlayerName != name {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].PlayerName, name)
		}
	}
}

func TestGetAllNameTieBreak(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Identical counters; order must fall back to ascending name.
	for _, name := range []string{"zoe", "amy", "mia"} {
		if err := store.RecordResult(ctx, name, true); err != nil {
			t.Fatalf("RecordResult(%q): %v", name, err)
		}
	}

	entries, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	want := []string{"amy", "mia", "zoe"}
	for i, name := range want {
		if entries[i].PlayerName != name {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].PlayerName, name)
		}
	}
}

func TestGetAllIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob"} {
		if err := store.RecordResult(ctx, name, name == "alice"); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	first, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	second, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entries[%d] differ: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRecordGame(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	participants := []string{"alice", "bob", "carol"}
	if err := store.RecordGame(ctx, "bob", participants); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}

	for _, name := range participants {
		entry, err := store.Get(ctx, name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if entry.GamesPlayed != 1 {
			t.Errorf("%s games played = %d, want 1", name, entry.GamesPlayed)
		}
		wantWins := 0
		if name == "bob" {
			wantWins = 1
		}
		if entry.Wins != wantWins {
			t.Errorf("%s wins = %d, want %d", name, entry.Wins, wantWins)
		}
	}
}

func TestRecordGameCountsDuplicateNamesOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Two seats with the same name share one scoreboard row; the game and
	// the win must each count exactly once.
	if err := store.RecordGame(ctx, "alice", []string{"alice", "alice", "bob"}); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}

	entry, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.GamesPlayed != 1 || entry.Wins != 1 {
		t.Errorf("alice = %d games, %d wins, want 1 and 1", entry.GamesPlayed, entry.Wins)
	}
}

func TestRecordGameRejectsOutsideWinner(t *testing.T) {
	store := newTestStore(t)

	err := store.RecordGame(context.Background(), "mallory", []string{"alice", "bob"})
	if err == nil {
		t.Fatal("RecordGame with outside winner succeeded, want error")
	}

	// Nothing may have been written.
	entries, gerr := store.GetAll(context.Background())
	if gerr != nil {
		t.Fatalf("GetAll: %v", gerr)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after rejected game, want 0", len(entries))
	}
}

func TestDeletePlayer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordResult(ctx, "alice", true); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := store.DeletePlayer(ctx, "alice"); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	if _, err := store.Get(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := store.DeletePlayer(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeletePlayer = %v, want ErrNotFound", err)
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob"} {
		if err := store.RecordResult(ctx, name, true); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	entries, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after reset, want 0", len(entries))
	}
}
