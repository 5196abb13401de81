package models

// ScoreboardEntry is one player's durable record. WinPercentage is always
// derived from the two counters at read time and never written to storage.
type ScoreboardEntry struct {
	PlayerName    string  `json:"player_name"`
	GamesPlayed   int     `json:"games_played"`
	Wins          int     `json:"wins"`
	WinPercentage float64 `json:"win_percentage"`
}

// WinPercentage derives the percentage from the counters. Zero games played
// yields zero percent.
func WinPercentage(wins, gamesPlayed int) float64 {
	if gamesPlayed == 0 {
		return 0
	}
	return float64(wins) / float64(gamesPlayed) * 100
}

// QuestionItem is a single question/answer pair loaded from a question bank.
type QuestionItem struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Player is a participant in one game session.
type Player struct {
	Name     string `json:"name"`
	Position int    `json:"pos"`
}
