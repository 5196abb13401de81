package game

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/josephspinelle/math-board-game/internal/models"
	"github.com/josephspinelle/math-board-game/internal/questions"
)

const (
	// BoardSize is the number of squares from start to finish.
	BoardSize = 24

	// MaxPlayers caps how many players may join one session.
	MaxPlayers = 4

	// MaxQuestions caps the question bank held by one session.
	MaxQuestions = 300

	// DieSides is the die rolled each turn.
	DieSides = 6

	maxNameLength = 20
)

var (
	ErrNoPlayers       = errors.New("game: at least one player name is required")
	ErrTooManyPlayers  = errors.New("game: maximum 4 players")
	ErrAwaitingAnswer  = errors.New("game: answer the current question before rolling")
	ErrNoPendingAnswer = errors.New("game: no question is awaiting an answer")
	ErrGameOver        = errors.New("game: the game is already over")
)

// Session holds the state of one play-through: the players, whose turn it is,
// the question bank, and any pending question. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	mu              sync.Mutex
	players         []*models.Player
	turn            int
	awaitingAnswer  bool
	currentQuestion *models.QuestionItem
	lastRoll        int
	message         string
	bank            []models.QuestionItem
	winner          string
	rng             *rand.Rand
}

// Outcome describes the effect of one answered question.
type Outcome struct {
	PlayerName    string
	Correct       bool
	CorrectAnswer string
	Moved         int
	Position      int
	Won           bool
}

// State is a consistent snapshot of a session for rendering.
type State struct {
	Players         []models.Player
	Turn            int
	CurrentName     string
	AwaitingAnswer  bool
	CurrentQuestion *models.QuestionItem
	LastRoll        int
	Message         string
	QuestionCount   int
	Winner          string
	BoardSize       int
}

// NewSession creates an empty session with the default question bank.
func NewSession() *Session {
	return &Session{
		ID:      uuid.New().String(),
		bank:    questions.Default(),
		message: "Set up players to start.",
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Setup registers 1-4 players and resets the board. Blank names are dropped,
// long names are truncated.
func (s *Session) Setup(names []string) error {
	var cleaned []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if runes := []rune(n); len(runes) > maxNameLength {
			n = string(runes[:maxNameLength])
		}
		cleaned = append(cleaned, n)
	}

	if len(cleaned) == 0 {
		return ErrNoPlayers
	}
	if len(cleaned) > MaxPlayers {
		return ErrTooManyPlayers
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = s.players[:0]
	for _, n := range cleaned {
		s.players = append(s.players, &models.Player{Name: n})
	}
	s.turn = 0
	s.awaitingAnswer = false
	s.currentQuestion = nil
	s.lastRoll = 0
	s.winner = ""
	s.message = "Game ready! " + cleaned[0] + "'s turn. Roll to start."
	return nil
}

// Roll rolls the die for the current player and draws a random question. The
// player must answer before the next roll.
func (s *Session) Roll() (int, models.QuestionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.players) == 0 {
		return 0, models.QuestionItem{}, ErrNoPlayers
	}
	if s.winner != "" {
		return 0, models.QuestionItem{}, ErrGameOver
	}
	if s.awaitingAnswer {
		return 0, models.QuestionItem{}, ErrAwaitingAnswer
	}

	roll := s.rng.Intn(DieSides) + 1
	q := s.bank[s.rng.Intn(len(s.bank))]

	s.lastRoll = roll
	s.currentQuestion = &q
	s.awaitingAnswer = true
	s.message = s.currentPlayer().Name + " rolled a " + strconv.Itoa(roll) + ". Answer to move!"
	return roll, q, nil
}

// Answer checks the current player's answer against the pending question.
// A correct answer moves them forward by the last roll (capped at the board
// end), a wrong one moves them back one square (floored at the start). The
// first player to reach the end wins and the session stops accepting moves.
func (s *Session) Answer(text string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingAnswer || s.currentQuestion == nil {
		return Outcome{}, ErrNoPendingAnswer
	}

	player := s.currentPlayer()
	correct := strings.TrimSpace(text) == strings.TrimSpace(s.currentQuestion.Answer)
	out := Outcome{
		PlayerName:    player.Name,
		Correct:       correct,
		CorrectAnswer: s.currentQuestion.Answer,
	}

	if correct {
		moved := s.lastRoll
		if player.Position+moved > BoardSize {
			moved = BoardSize - player.Position
		}
		player.Position += moved
		out.Moved = moved
		s.message = "Correct, " + player.Name + "! Move forward " + strconv.Itoa(moved) + "."
	} else {
		if player.Position > 0 {
			player.Position--
			out.Moved = -1
		}
		s.message = "Oops, " + player.Name + "! Correct was " + s.currentQuestion.Answer + ". Move back 1."
	}
	out.Position = player.Position

	s.awaitingAnswer = false
	s.currentQuestion = nil
	s.lastRoll = 0

	if player.Position >= BoardSize {
		s.winner = player.Name
		out.Won = true
		s.message = player.Name + " wins!"
		return out, nil
	}

	s.turn = (s.turn + 1) % len(s.players)
	s.message += " Next: " + s.currentPlayer().Name + "."
	return out, nil
}

// AddQuestions appends items to the session's bank, up to the session cap.
// It reports how many were actually added.
func (s *Session) AddQuestions(items []models.QuestionItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, item := range items {
		if len(s.bank) >= MaxQuestions {
			break
		}
		s.bank = append(s.bank, item)
		added++
	}
	return added
}

// SetMessage replaces the status message shown on the game page.
func (s *Session) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// PlayerNames returns the participant names in seating order.
func (s *Session) PlayerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Name
	}
	return names
}

// Snapshot returns a copy of the session state for rendering.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Turn:           s.turn,
		AwaitingAnswer: s.awaitingAnswer,
		LastRoll:       s.lastRoll,
		Message:        s.message,
		QuestionCount:  len(s.bank),
		Winner:         s.winner,
		BoardSize:      BoardSize,
	}
	for _, p := range s.players {
		st.Players = append(st.Players, *p)
	}
	if len(s.players) > 0 {
		st.CurrentName = s.currentPlayer().Name
	}
	if s.currentQuestion != nil {
		q := *s.currentQuestion
		st.CurrentQuestion = &q
	}
	return st
}

// currentPlayer must be called with s.mu held and at least one player present.
func (s *Session) currentPlayer() *models.Player {
	return s.players[s.turn%len(s.players)]
}
