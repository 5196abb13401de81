package questions

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/josephspinelle/math-board-game/internal/models"
)

var (
	// ErrNoHeader is returned when the first row is not a recognized header.
	ErrNoHeader = errors.New("questions: expected CSV header q,a or question,answer")

	// ErrNoQuestions is returned when the input held no valid question rows.
	ErrNoQuestions = errors.New("questions: no valid question rows found")
)

// Bank is an ordered, restartable question bank parsed from CSV. Skipped
// counts rows that were dropped for not having exactly two non-empty fields.
type Bank struct {
	Items   []models.QuestionItem
	Skipped int
}

// Len returns the number of loaded questions.
func (b *Bank) Len() int {
	return len(b.Items)
}

// Parse reads CSV question data from r. The first row must be a header of
// q,a or question,answer (case-insensitive). Bad rows are skipped and counted
// rather than aborting the parse; only a missing header or an empty result is
// an error.
func Parse(r io.Reader) (*Bank, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, ErrNoHeader
	}
	if !validHeader(header) {
		return nil, ErrNoHeader
	}

	bank := &Bank{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row (e.g. bare quote); skip it like a short row.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				bank.Skipped++
				continue
			}
			return nil, err
		}

		if len(record) != 2 {
			bank.Skipped++
			continue
		}
		q := strings.TrimSpace(record[0])
		a := strings.TrimSpace(record[1])
		if q == "" || a == "" {
			bank.Skipped++
			continue
		}
		bank.Items = append(bank.Items, models.QuestionItem{Question: q, Answer: a})
	}

	if len(bank.Items) == 0 {
		return nil, ErrNoQuestions
	}
	return bank, nil
}

// ParseText parses pasted CSV text. Empty input yields an empty bank rather
// than a header error, so callers can treat a blank textarea as "nothing to add".
func ParseText(text string) (*Bank, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &Bank{}, nil
	}
	return Parse(strings.NewReader(text))
}

func validHeader(header []string) bool {
	if len(header) != 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(header[0]))
	second := strings.ToLower(strings.TrimSpace(header[1]))
	return (first == "q" && second == "a") ||
		(first == "question" && second == "answer")
}
