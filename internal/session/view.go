package session

// OptionView is one renderable answer option.
type OptionView struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Locked   bool   `json:"locked"`
}

// Feedback is shown after a question is checked.
type Feedback struct {
	IsCorrect    bool     `json:"isCorrect"`
	CorrectTexts []string `json:"correctTexts"`
	References   []string `json:"references,omitempty"`
}

// QuestionView is the presentation model for the question currently visible.
type QuestionView struct {
	Index        int          `json:"index"`
	Total        int          `json:"total"`
	QuestionText string       `json:"questionText"`
	ImageData    string       `json:"imageData,omitempty"`
	Options      []OptionView `json:"answerOptions"`
	CanGoPrev    bool         `json:"canGoPrev"`
	CanGoNext    bool         `json:"canGoNext"`
	CheckEnabled bool         `json:"checkEnabled"`
	Feedback     *Feedback    `json:"feedback,omitempty"`
}

// View renders the current question. Once a question is checked its options
// lock and feedback (including references for the correct answers) becomes
// visible.
func (s *Session) View() QuestionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.attempt.Quiz.Questions[s.index]
	rec := s.attempt.Records[s.index]
	checked := rec.Verdict.Evaluated()

	selected := toSet(rec.Selected)
	opts := make([]OptionView, len(q.Answers))
	for i, a := range q.Answers {
		_, isSel := selected[i]
		opts[i] = OptionView{Index: i, Text: a.Text, Selected: isSel, Locked: checked}
	}

	view := QuestionView{
		Index:        s.index,
		Total:        len(s.attempt.Quiz.Questions),
		QuestionText: q.Text,
		ImageData:    q.ImageData,
		Options:      opts,
		CanGoPrev:    s.index > 0,
		CanGoNext:    checked && s.index < len(s.attempt.Quiz.Questions)-1,
		CheckEnabled: !checked && len(rec.Selected) > 0,
	}

	if checked {
		fb := &Feedback{IsCorrect: rec.Verdict == VerdictCorrect}
		for _, idx := range q.CorrectAnswers {
			ans := q.Answers[idx]
			fb.CorrectTexts = append(fb.CorrectTexts, ans.Text)
			if ans.Reference != "" {
				fb.References = append(fb.References, ans.Reference)
			}
		}
		view.Feedback = fb
	}
	return view
}
