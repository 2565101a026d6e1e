package session

import (
	"reflect"
	"sort"
	"testing"

	"github.com/sherlock-ohm/QuizMaster/internal/quiz"
)

// identityRng leaves the slice order unchanged (Fisher-Yates with j == i).
type identityRng struct{}

func (identityRng) Intn(n int) int { return n - 1 }

// frontSwapRng always picks index 0, producing a deterministic non-identity
// permutation.
type frontSwapRng struct{}

func (frontSwapRng) Intn(n int) int { return 0 }

func sampleQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:          "q-1",
		Title:       "Capitals",
		TargetType:  quiz.TargetNumber,
		TargetValue: 2,
		Questions: []quiz.Question{
			{
				Text: "Capital of France?",
				Type: quiz.TypeMultipleChoice,
				Answers: []quiz.Answer{
					{Text: "Paris", Reference: "atlas p.12"},
					{Text: "Lyon"},
					{Text: "Nice"},
				},
				CorrectAnswers: []int{0},
			},
			{
				Text: "Which are Baltic states?",
				Type: quiz.TypeMultipleChoice,
				Answers: []quiz.Answer{
					{Text: "Estonia"},
					{Text: "Poland"},
					{Text: "Latvia"},
					{Text: "Lithuania"},
				},
				CorrectAnswers: []int{0, 2, 3},
			},
			{
				Text:           "Berlin is in Germany",
				Type:           quiz.TypeTrueFalse,
				Answers:        []quiz.Answer{{Text: "True"}, {Text: "False"}},
				CorrectAnswers: []int{0},
			},
		},
	}
}

func correctTexts(q quiz.Question) []string {
	out := make([]string, 0, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		out = append(out, q.Answers[idx].Text)
	}
	sort.Strings(out)
	return out
}

func TestBuildAttempt_CorrectIdentitySurvivesShuffle(t *testing.T) {
	def := sampleQuiz()
	wantByText := map[string][]string{}
	for _, q := range def.Questions {
		wantByText[q.Text] = correctTexts(q)
	}

	// Real random source; run repeatedly so every permutation gets exercised.
	for i := 0; i < 100; i++ {
		a, err := BuildAttempt(def, nil)
		if err != nil {
			t.Fatalf("BuildAttempt: %v", err)
		}
		for _, q := range a.Quiz.Questions {
			got := correctTexts(q)
			if !reflect.DeepEqual(got, wantByText[q.Text]) {
				t.Fatalf("question %q: correct texts %v, want %v", q.Text, got, wantByText[q.Text])
			}
			if q.CorrectAnswer != q.CorrectAnswers[0] {
				t.Fatalf("question %q: legacy correctAnswer %d != correctAnswers[0] %d", q.Text, q.CorrectAnswer, q.CorrectAnswers[0])
			}
		}
	}
}

func TestBuildAttempt_DoesNotMutateDefinition(t *testing.T) {
	def := sampleQuiz()
	orig := def.Clone()

	if _, err := BuildAttempt(def, nil, WithRand(frontSwapRng{})); err != nil {
		t.Fatalf("BuildAttempt: %v", err)
	}
	if !reflect.DeepEqual(def, orig) {
		t.Error("building an attempt must not mutate the stored definition")
	}
}

func TestBuildAttempt_InitializesRecords(t *testing.T) {
	a, err := BuildAttempt(sampleQuiz(), nil, WithRand(identityRng{}))
	if err != nil {
		t.Fatalf("BuildAttempt: %v", err)
	}
	if len(a.Records) != len(a.Quiz.Questions) {
		t.Fatalf("records = %d, want %d", len(a.Records), len(a.Quiz.Questions))
	}
	for i, rec := range a.Records {
		if rec.QuestionIndex != i {
			t.Errorf("record %d has questionIndex %d", i, rec.QuestionIndex)
		}
		if len(rec.Selected) != 0 || rec.Verdict != VerdictUnevaluated {
			t.Errorf("record %d not pristine: %+v", i, rec)
		}
	}
}

func TestBuildAttempt_RejectsInvalidDefinition(t *testing.T) {
	def := sampleQuiz()
	def.Questions = nil
	if _, err := BuildAttempt(def, nil); err == nil {
		t.Fatal("empty question list must be rejected")
	}
}

func TestBuildAttempt_RestoresSavedAnswersByText(t *testing.T) {
	saved := []SavedAnswer{
		{QuestionText: "Berlin is in Germany", Selected: []int{0}, Verdict: VerdictCorrect},
		{QuestionText: "No longer in the quiz", Selected: []int{1}, Verdict: VerdictIncorrect},
	}
	a, err := BuildAttempt(sampleQuiz(), saved, WithRand(identityRng{}))
	if err != nil {
		t.Fatalf("BuildAttempt: %v", err)
	}

	restored := 0
	for i, q := range a.Quiz.Questions {
		rec := a.Records[i]
		if q.Text == "Berlin is in Germany" {
			restored++
			if rec.Verdict != VerdictCorrect || !reflect.DeepEqual(rec.Selected, []int{0}) {
				t.Errorf("restored record wrong: %+v", rec)
			}
			continue
		}
		if rec.Verdict != VerdictUnevaluated || len(rec.Selected) != 0 {
			t.Errorf("question %q should start pristine, got %+v", q.Text, rec)
		}
	}
	if restored != 1 {
		t.Errorf("restored %d records, want 1", restored)
	}
}

func TestBuildAttempt_DuplicateSavedTextFirstMatchWins(t *testing.T) {
	saved := []SavedAnswer{
		{QuestionText: "Capital of France?", Selected: []int{1}, Verdict: VerdictIncorrect},
		{QuestionText: "Capital of France?", Selected: []int{0}, Verdict: VerdictCorrect},
	}
	a, err := BuildAttempt(sampleQuiz(), saved, WithRand(identityRng{}))
	if err != nil {
		t.Fatalf("BuildAttempt: %v", err)
	}
	for i, q := range a.Quiz.Questions {
		if q.Text != "Capital of France?" {
			continue
		}
		if a.Records[i].Verdict != VerdictIncorrect {
			t.Errorf("first saved entry should win, got %+v", a.Records[i])
		}
	}
}

func TestBuildAttempt_RestoredSelectionIsCopied(t *testing.T) {
	sel := []int{0}
	saved := []SavedAnswer{{QuestionText: "Capital of France?", Selected: sel, Verdict: VerdictCorrect}}
	a, err := BuildAttempt(sampleQuiz(), saved, WithRand(identityRng{}))
	if err != nil {
		t.Fatalf("BuildAttempt: %v", err)
	}
	sel[0] = 99
	for i, q := range a.Quiz.Questions {
		if q.Text == "Capital of France?" && a.Records[i].Selected[0] == 99 {
			t.Error("restored selection aliases the saved slice")
		}
	}
}

func TestAnswerRecordToggle(t *testing.T) {
	rec := AnswerRecord{Selected: []int{}}

	rec.Toggle(2)
	rec.Toggle(0)
	if !reflect.DeepEqual(rec.Selected, []int{2, 0}) {
		t.Fatalf("selected = %v, want [2 0]", rec.Selected)
	}

	rec.Toggle(2)
	if !reflect.DeepEqual(rec.Selected, []int{0}) {
		t.Fatalf("selected after deselect = %v, want [0]", rec.Selected)
	}

	rec.Verdict = VerdictCorrect
	rec.Toggle(1)
	if rec.Verdict != VerdictUnevaluated {
		t.Error("mutating the selection must reset the verdict")
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	shuffle(frontSwapRng{}, s)
	if reflect.DeepEqual(s, []int{1, 2, 3, 4, 5}) {
		t.Fatal("frontSwapRng should move elements")
	}
	sorted := append([]int(nil), s...)
	sort.Ints(sorted)
	if !reflect.DeepEqual(sorted, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("shuffle lost elements: %v", s)
	}
}
