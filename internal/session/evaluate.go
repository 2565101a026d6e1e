package session

import (
	"math"

	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
)

// EvaluateQuestion reports whether the selection is correct. Correctness is
// exact set equality with the question's correct-answer indices: same
// cardinality and every selected index present in the correct set. The rule is
// the same for multiple-choice and true-false; there is no partial credit.
func EvaluateQuestion(q quiz.Question, selected []int) bool {
	correct := toSet(q.CorrectAnswers)
	sel := toSet(selected)
	if len(sel) != len(correct) {
		return false
	}
	for idx := range sel {
		if _, ok := correct[idx]; !ok {
			return false
		}
	}
	return true
}

// Unanswered reports whether the record has no selection at all. Distinct
// from answered-incorrectly: an unanswered question was never evaluated.
func Unanswered(r AnswerRecord) bool { return len(r.Selected) == 0 }

// Summary is the aggregate outcome of an attempt.
type Summary struct {
	Percentage   int  `json:"percentage"`
	CorrectCount int  `json:"correctCount"`
	TotalCount   int  `json:"totalCount"`
	Passed       bool `json:"passed"`
}

// Summarize aggregates whatever records exist. Only explicitly checked
// questions (verdict set) contribute to CorrectCount, but the percentage
// denominator is always the total question count, so unevaluated questions
// score zero while still diluting the result.
func Summarize(a *Attempt) Summary {
	total := len(a.Quiz.Questions)
	correct := 0
	for _, rec := range a.Records {
		if rec.Verdict == VerdictCorrect {
			correct++
		}
	}

	pct := 0
	if total > 0 && correct > 0 {
		pct = int(math.Round(float64(correct) / float64(total) * 100))
	}

	s := Summary{Percentage: pct, CorrectCount: correct, TotalCount: total}
	switch a.Quiz.TargetType {
	case quiz.TargetNumber:
		s.Passed = correct >= a.Quiz.TargetValue
	default:
		s.Passed = pct >= a.Quiz.TargetValue
	}
	return s
}

func toSet(idxs []int) map[int]struct{} {
	m := make(map[int]struct{}, len(idxs))
	for _, i := range idxs {
		m[i] = struct{}{}
	}
	return m
}
