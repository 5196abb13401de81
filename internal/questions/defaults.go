package questions

import "github.com/josephspinelle/math-board-game/internal/models"

// Default returns the built-in question bank used when a session has no
// uploaded questions yet.
func Default() []models.QuestionItem {
	return []models.QuestionItem{
		{Question: "2 + 2", Answer: "4"},
		{Question: "9 × 4", Answer: "36"},
		{Question: "7 × 8", Answer: "56"},
		{Question: "9 ÷ 3", Answer: "3"},
		{Question: "√81", Answer: "9"},
		{Question: "√49", Answer: "7"},
		{Question: "12 ÷ 4", Answer: "3"},
		{Question: "15 + 5", Answer: "20"},
		{Question: "11 × 8", Answer: "88"},
		{Question: "14²", Answer: "196"},
	}
}
