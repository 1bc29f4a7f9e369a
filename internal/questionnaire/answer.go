package questionnaire

import (
	"encoding/json"
	"fmt"
)

// AnswerKind discriminates the two answer shapes.
type AnswerKind string

const (
	AnswerBinary AnswerKind = "binary"
	AnswerMulti  AnswerKind = "multi"
)

const (
	Yes = "yes"
	No  = "no"
)

// Answer is a tagged union: a binary token for yes/no questions, or an
// ordered set of selected option texts for multi-select follow-ups. The shape
// is checked against the question type at the point an answer is recorded.
type Answer struct {
	Kind     AnswerKind
	Value    string   // binary: "yes" | "no"
	Selected []string // multi: option texts, selection order preserved
}

func Binary(v string) Answer { return Answer{Kind: AnswerBinary, Value: v} }

func Multi(selected []string) Answer {
	return Answer{Kind: AnswerMulti, Selected: append([]string(nil), selected...)}
}

// MarshalJSON keeps the persisted shape of the original answer map: binary
// answers serialize to a bare token, multi answers to an array of texts.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerBinary:
		return json.Marshal(a.Value)
	case AnswerMulti:
		if a.Selected == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Selected)
	default:
		return nil, fmt.Errorf("answer has no kind")
	}
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Binary(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*a = Multi(arr)
		return nil
	}
	return fmt.Errorf("answer must be a string or a string array")
}

func (a Answer) contains(text string) bool {
	for _, t := range a.Selected {
		if t == text {
			return true
		}
	}
	return false
}
