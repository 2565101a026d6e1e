package session

import (
	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
)

// AnswerRecord tracks the user's current selection and evaluation state for
// one question of an attempt. Records run parallel to Attempt.Quiz.Questions.
type AnswerRecord struct {
	QuestionIndex int     `json:"questionIndex"`
	Selected      []int   `json:"selectedAnswers"`
	Verdict       Verdict `json:"isCorrect"`
}

// Toggle flips membership of answer index i in the selection. Any mutation
// after a prior evaluation invalidates the verdict, so checking is required
// again before the question counts as scored.
func (r *AnswerRecord) Toggle(i int) {
	for pos, sel := range r.Selected {
		if sel == i {
			r.Selected = append(r.Selected[:pos], r.Selected[pos+1:]...)
			r.Verdict = VerdictUnevaluated
			return
		}
	}
	r.Selected = append(r.Selected, i)
	r.Verdict = VerdictUnevaluated
}

// SavedAnswer carries one question's selection across a quiz-edit round trip.
// Question text is the key because question order is re-randomized on every
// attempt; index-based matching would be meaningless.
type SavedAnswer struct {
	QuestionText string  `json:"questionText"`
	Selected     []int   `json:"selectedAnswers"`
	Verdict      Verdict `json:"isCorrect"`
}

// Attempt is one randomized instantiation of a quiz definition: a deep copy
// with shuffled questions and answers, correct-answer indices remapped to the
// new order, and one AnswerRecord per question.
type Attempt struct {
	Quiz    quiz.Quiz
	Records []AnswerRecord
}

type buildConfig struct {
	rand rng
}

type BuildOption func(*buildConfig)

// WithRand overrides the random source, for deterministic tests.
func WithRand(r rng) BuildOption { return func(c *buildConfig) { c.rand = r } }

// BuildAttempt produces a scorable attempt from a stored definition.
// Saved answers from a prior interrupted attempt on the same definition are
// restored best-effort by question-text match; entries that no longer match
// (edited text) are silently skipped, and on duplicate texts the first saved
// entry wins.
func BuildAttempt(def quiz.Quiz, saved []SavedAnswer, opts ...BuildOption) (*Attempt, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	cfg := buildConfig{rand: newRand()}
	for _, o := range opts {
		o(&cfg)
	}

	working := def.Clone()
	shuffle(cfg.rand, working.Questions)

	for i := range working.Questions {
		q := &working.Questions[i]

		// Capture the answers currently flagged correct, then shuffle and
		// re-locate them by text. Identity across the shuffle is the answer
		// text, not the index.
		correct := make([]quiz.Answer, 0, len(q.CorrectAnswers))
		for _, idx := range q.CorrectAnswers {
			correct = append(correct, q.Answers[idx])
		}
		shuffle(cfg.rand, q.Answers)

		remapped := make([]int, 0, len(correct))
		for _, ans := range correct {
			remapped = append(remapped, indexByText(q.Answers, ans.Text))
		}
		q.CorrectAnswers = remapped
		if len(remapped) > 0 {
			q.CorrectAnswer = remapped[0]
		} else {
			q.CorrectAnswer = 0 // unreachable for validated input
		}
	}

	records := make([]AnswerRecord, len(working.Questions))
	for i := range working.Questions {
		records[i] = AnswerRecord{QuestionIndex: i, Selected: []int{}}
		for _, sa := range saved {
			if sa.QuestionText == working.Questions[i].Text {
				records[i].Selected = append([]int{}, sa.Selected...)
				records[i].Verdict = sa.Verdict
				break
			}
		}
	}

	return &Attempt{Quiz: working, Records: records}, nil
}

func indexByText(answers []quiz.Answer, text string) int {
	for i, a := range answers {
		if a.Text == text {
			return i
		}
	}
	return -1
}
