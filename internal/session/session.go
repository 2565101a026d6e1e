package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
)

// Transition refusals. These arise from caller-contract violations (a correct
// UI keeps the offending controls disabled); the session refuses the
// transition and leaves its state untouched.
var (
	ErrSessionFinished = errors.New("session already finished")
	ErrSelectionLocked = errors.New("selection locked after checking")
	ErrNoSelection     = errors.New("no answer selected")
	ErrNotChecked      = errors.New("answer not checked yet")
	ErrAtFirstQuestion = errors.New("already at first question")
	ErrAtLastQuestion  = errors.New("already at last question")
)

// Session is the navigation state machine for one quiz-taking run. It owns
// the attempt and all per-question records; nothing is shared between
// sessions, and every transition leaves the state consistent before
// returning.
type Session struct {
	ID string

	mu        sync.Mutex
	attempt   *Attempt
	index     int
	submitted bool
	summary   Summary
}

// New builds a fresh randomized attempt for def and positions the session at
// question 0, unchecked. Saved answers, if any, are merged into the records
// by question text.
func New(id string, def quiz.Quiz, saved []SavedAnswer, opts ...BuildOption) (*Session, error) {
	a, err := BuildAttempt(def, saved, opts...)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, attempt: a}, nil
}

func (s *Session) current() *AnswerRecord { return &s.attempt.Records[s.index] }

// Select toggles answer membership in the current question's selection.
// Refused once the question has been checked: the inputs are locked until the
// user moves on (or a restored verdict is invalidated by rebuilding).
func (s *Session) Select(answerIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSessionFinished
	}
	q := s.attempt.Quiz.Questions[s.index]
	if answerIndex < 0 || answerIndex >= len(q.Answers) {
		return fmt.Errorf("answer index %d out of range", answerIndex)
	}
	if s.current().Verdict.Evaluated() {
		return ErrSelectionLocked
	}
	s.current().Toggle(answerIndex)
	return nil
}

// Check evaluates the current selection and locks it in. This is the only
// point at which a question becomes scored. Re-checking an already-checked
// question reproduces the same verdict.
func (s *Session) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSessionFinished
	}
	rec := s.current()
	if len(rec.Selected) == 0 {
		return ErrNoSelection
	}
	if EvaluateQuestion(s.attempt.Quiz.Questions[s.index], rec.Selected) {
		rec.Verdict = VerdictCorrect
	} else {
		rec.Verdict = VerdictIncorrect
	}
	return nil
}

// Next advances to the following question. Forward progress is gated on the
// current question having been checked.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSessionFinished
	}
	if s.index >= len(s.attempt.Quiz.Questions)-1 {
		return ErrAtLastQuestion
	}
	if !s.current().Verdict.Evaluated() {
		return ErrNotChecked
	}
	s.index++
	return nil
}

// Prev moves back one question. Legal from any sub-state; never alters a
// record.
func (s *Session) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSessionFinished
	}
	if s.index == 0 {
		return ErrAtFirstQuestion
	}
	s.index--
	return nil
}

// Submit finalizes the attempt and moves to the terminal results state. It is
// also the force path for an early finish: still-unevaluated questions count
// zero toward CorrectCount but remain in the percentage denominator.
// Submitting twice returns the same summary.
func (s *Session) Submit() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return s.summary
	}
	s.summary = Summarize(s.attempt)
	s.submitted = true
	return s.summary
}

// Exit captures the current records as saved answers, keyed by question text,
// so an interrupted attempt can be resumed after the definition was edited.
// Exit always succeeds and never scores.
func (s *Session) Exit() []SavedAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]SavedAnswer, 0, len(s.attempt.Records))
	for i, rec := range s.attempt.Records {
		saved = append(saved, SavedAnswer{
			QuestionText: s.attempt.Quiz.Questions[i].Text,
			Selected:     append([]int{}, rec.Selected...),
			Verdict:      rec.Verdict,
		})
	}
	return saved
}

// Results returns the summary once the session reached the results state.
func (s *Session) Results() (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary, s.submitted
}
