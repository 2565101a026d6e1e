package quiz

import (
	"errors"
	"testing"
)

func validQuiz() Quiz {
	return Quiz{
		Title:       "Sample",
		TargetType:  TargetNumber,
		TargetValue: 1,
		Questions: []Question{
			{
				Text:           "Q1",
				Type:           TypeMultipleChoice,
				Answers:        []Answer{{Text: "a"}, {Text: "b"}, {Text: "c"}},
				CorrectAnswers: []int{1},
			},
		},
	}
}

func TestQuizValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Quiz)
		wantErr bool
	}{
		{name: "valid", mutate: func(q *Quiz) {}},
		{name: "missing title", mutate: func(q *Quiz) { q.Title = "" }, wantErr: true},
		{name: "bad target type", mutate: func(q *Quiz) { q.TargetType = "points" }, wantErr: true},
		{name: "no questions", mutate: func(q *Quiz) { q.Questions = nil }, wantErr: true},
		{name: "question without text", mutate: func(q *Quiz) { q.Questions[0].Text = "" }, wantErr: true},
		{name: "single answer", mutate: func(q *Quiz) { q.Questions[0].Answers = q.Questions[0].Answers[:1] }, wantErr: true},
		{name: "no correct answers", mutate: func(q *Quiz) { q.Questions[0].CorrectAnswers = nil }, wantErr: true},
		{name: "correct index out of range", mutate: func(q *Quiz) { q.Questions[0].CorrectAnswers = []int{3} }, wantErr: true},
		{name: "negative correct index", mutate: func(q *Quiz) { q.Questions[0].CorrectAnswers = []int{-1} }, wantErr: true},
		{name: "percentage target", mutate: func(q *Quiz) { q.TargetType = TargetPercentage; q.TargetValue = 70 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuiz()
			tc.mutate(&q)
			err := q.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDefinition) {
					t.Errorf("Validate() = %v, want ErrInvalidDefinition", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestQuizClone_Independent(t *testing.T) {
	q := validQuiz()
	c := q.Clone()

	c.Questions[0].Answers[0].Text = "changed"
	c.Questions[0].CorrectAnswers[0] = 2

	if q.Questions[0].Answers[0].Text != "a" {
		t.Error("clone shares answer storage with the original")
	}
	if q.Questions[0].CorrectAnswers[0] != 1 {
		t.Error("clone shares correct-answer storage with the original")
	}
}

func TestQuizNormalize_LegacyField(t *testing.T) {
	q := validQuiz()
	q.Normalize()
	if q.Questions[0].CorrectAnswer != 1 {
		t.Errorf("legacy field = %d, want mirror of correctAnswers[0]", q.Questions[0].CorrectAnswer)
	}

	// Old files carry only the singular field.
	legacy := validQuiz()
	legacy.Questions[0].CorrectAnswers = nil
	legacy.Questions[0].CorrectAnswer = 2
	legacy.Normalize()
	if got := legacy.Questions[0].CorrectAnswers; len(got) != 1 || got[0] != 2 {
		t.Errorf("correctAnswers = %v, want [2]", got)
	}
}
