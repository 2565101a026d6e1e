package quiz

import (
	"errors"
	"fmt"
)

// Question types understood by the evaluator. Both are scored the same way
// (exact set match); the type only changes how the authoring UI renders.
const (
	TypeMultipleChoice = "multiple-choice"
	TypeTrueFalse      = "true-false"
)

// Pass-target interpretations for Quiz.TargetValue.
const (
	TargetNumber     = "number"     // absolute count of correct questions
	TargetPercentage = "percentage" // percent of total questions
)

// Answer is one selectable option. Reference is an optional citation shown in
// feedback after the question is checked.
//
// Answer identity across shuffles is the Text field, not the index. Correct
// answer indices are recomputed by text lookup after each shuffle, so texts
// within one question are expected to be unique.
type Answer struct {
	Text      string `json:"text"`
	Reference string `json:"reference,omitempty"`
}

type Question struct {
	Text           string   `json:"text"`
	Type           string   `json:"type"`
	Answers        []Answer `json:"answers"`
	CorrectAnswers []int    `json:"correctAnswers"`
	// CorrectAnswer is the deprecated single-answer field kept for backward
	// compatibility with older quiz files. It always mirrors CorrectAnswers[0].
	CorrectAnswer int    `json:"correctAnswer"`
	ImageData     string `json:"imageData,omitempty"`
}

// Quiz is the persisted, author-created template. The JSON field names are the
// on-disk contract and must round-trip unchanged through the store.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetType  string     `json:"targetType"`
	TargetValue int        `json:"targetValue"`
	Questions   []Question `json:"questions"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
}

var ErrInvalidDefinition = errors.New("invalid quiz definition")

// Validate rejects definitions that cannot produce a scorable attempt. It
// never repairs: broken input is the authoring layer's problem to fix.
func (q Quiz) Validate() error {
	if q.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidDefinition)
	}
	switch q.TargetType {
	case TargetNumber, TargetPercentage:
	default:
		return fmt.Errorf("%w: unknown target type %q", ErrInvalidDefinition, q.TargetType)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidDefinition)
	}
	for i, qu := range q.Questions {
		if qu.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidDefinition, i+1)
		}
		if len(qu.Answers) < 2 {
			return fmt.Errorf("%w: question %d needs at least two answers", ErrInvalidDefinition, i+1)
		}
		if len(qu.CorrectAnswers) == 0 {
			return fmt.Errorf("%w: question %d has no correct answer", ErrInvalidDefinition, i+1)
		}
		for _, idx := range qu.CorrectAnswers {
			if idx < 0 || idx >= len(qu.Answers) {
				return fmt.Errorf("%w: question %d correct-answer index %d out of range", ErrInvalidDefinition, i+1, idx)
			}
		}
	}
	return nil
}

// Clone returns a deep copy safe to mutate independently of the stored
// definition. Attempts are always built from a clone.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, qu := range q.Questions {
		cq := qu
		cq.Answers = append([]Answer(nil), qu.Answers...)
		cq.CorrectAnswers = append([]int(nil), qu.CorrectAnswers...)
		out.Questions[i] = cq
	}
	return out
}

// Normalize backfills the legacy CorrectAnswer field and, for old quiz files
// that carry only CorrectAnswer, populates CorrectAnswers from it. Stores run
// this on every read so the rest of the system can rely on CorrectAnswers.
func (q *Quiz) Normalize() {
	for i := range q.Questions {
		qu := &q.Questions[i]
		if len(qu.CorrectAnswers) == 0 {
			qu.CorrectAnswers = []int{qu.CorrectAnswer}
			continue
		}
		qu.CorrectAnswer = qu.CorrectAnswers[0]
	}
}
