package session

import "fmt"

// Verdict is the evaluation state of one question within an attempt. It is an
// explicit tri-state: a question stays Unevaluated until the user checks it,
// and any later change to the selection drops it back to Unevaluated.
type Verdict int

const (
	VerdictUnevaluated Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) Evaluated() bool { return v != VerdictUnevaluated }

func (v Verdict) String() string {
	switch v {
	case VerdictUnevaluated:
		return "unevaluated"
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

func (v *Verdict) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"unevaluated"`, `null`:
		*v = VerdictUnevaluated
	case `"correct"`, `true`:
		*v = VerdictCorrect
	case `"incorrect"`, `false`:
		*v = VerdictIncorrect
	default:
		return fmt.Errorf("unknown verdict %s", data)
	}
	return nil
}
