package scoreboard

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// exportHeader is the fixed column order of the CSV export.
var exportHeader = []string{"player_name", "games_played", "wins", "win_percentage"}

// Export writes the scoreboard as CSV to w: one row per entry in GetAll order,
// win percentage to two decimals. An empty scoreboard produces only the header.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	entries, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.PlayerName,
			strconv.Itoa(e.GamesPlayed),
			strconv.Itoa(e.Wins),
			strconv.FormatFloat(e.WinPercentage, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export row for %q: %w", e.PlayerName, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}
