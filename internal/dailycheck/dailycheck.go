package dailycheck

import (
	"errors"
	"fmt"
	"time"

	"github.com/yomogi-health/yomogi/internal/catalog"
)

// Step is the phase of a daily-check run.
type Step string

const (
	StepQuestions Step = "questions"
	StepWellness  Step = "wellness"
	StepAdvice    Step = "advice"
	StepComplete  Step = "complete"
)

var ErrNoCurrentQuestion = errors.New("no current question")

// Run is one daily health check: a flat pass over the daily questions, then
// the body/mind sliders and free text, then advice, then a saved record.
type Run struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Step          Step              `json:"step"`
	QuestionIndex int               `json:"question_index"`
	Answers       map[string]string `json:"answers"` // question id -> selected option text
	BodyCondition int               `json:"body_condition"` // 1..5
	MindCondition int               `json:"mind_condition"` // 1..5
	FreeText      string            `json:"free_text"`
	Advice        string            `json:"advice,omitempty"`
	CreatedAt     int64             `json:"created_at"`
	SavedAt       int64             `json:"saved_at,omitempty"`
}

func NewRun(id, userID string) *Run {
	return &Run{
		ID:            id,
		UserID:        userID,
		Step:          StepQuestions,
		Answers:       map[string]string{},
		BodyCondition: 3,
		MindCondition: 3,
		CreatedAt:     time.Now().Unix(),
	}
}

// Checker drives a Run through the daily catalog. Traversal is a single
// linear index with the same back/forward semantics as the initial
// questionnaire restricted to one section.
type Checker struct {
	cat *catalog.DailyCatalog
}

func NewChecker(cat *catalog.DailyCatalog) *Checker {
	return &Checker{cat: cat}
}

// Current returns the question the run points at, or false outside the
// question phase.
func (c *Checker) Current(r *Run) (catalog.DailyQuestion, bool) {
	if r.Step != StepQuestions {
		return catalog.DailyQuestion{}, false
	}
	qs := c.cat.Questions()
	if r.QuestionIndex < 0 || r.QuestionIndex >= len(qs) {
		return catalog.DailyQuestion{}, false
	}
	return qs[r.QuestionIndex], true
}

// Answer records the selected option text for the current question and
// advances; the last question moves the run to the wellness phase.
func (c *Checker) Answer(r *Run, optionText string) error {
	q, ok := c.Current(r)
	if !ok {
		return ErrNoCurrentQuestion
	}
	r.Answers[q.ID] = optionText
	if r.QuestionIndex < len(c.cat.Questions())-1 {
		r.QuestionIndex++
	} else {
		r.Step = StepWellness
	}
	return nil
}

// GoBack steps to the previous question. At the first question it is a
// no-op; earlier answers stay recorded until overwritten.
func (c *Checker) GoBack(r *Run) {
	if r.Step == StepQuestions && r.QuestionIndex > 0 {
		r.QuestionIndex--
	}
}

// SubmitWellness records the sliders and free text, computes the rule advice
// and moves to the advice phase.
func (c *Checker) SubmitWellness(r *Run, body, mind int, freeText string) error {
	if r.Step != StepWellness {
		return fmt.Errorf("not at the wellness step")
	}
	if body < 1 || body > 5 || mind < 1 || mind > 5 {
		return fmt.Errorf("condition sliders must be between 1 and 5")
	}
	r.BodyCondition = body
	r.MindCondition = mind
	r.FreeText = freeText
	r.Advice = GenerateAdvice(c.Scores(r))
	r.Step = StepAdvice
	return nil
}

// Save finalizes the run as a daily record.
func (c *Checker) Save(r *Run) error {
	if r.Step != StepAdvice {
		return fmt.Errorf("nothing to save yet")
	}
	r.SavedAt = time.Now().Unix()
	r.Step = StepComplete
	return nil
}

// Scores folds the recorded answers into the eight-principle categories by
// exact option text match; unmatched texts contribute nothing.
func (c *Checker) Scores(r *Run) map[string]int {
	scores := map[string]int{}
	for id, text := range r.Answers {
		q, ok := c.cat.Find(id)
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.Text == text {
				for k, v := range opt.Score {
					scores[k] += v
				}
				break
			}
		}
	}
	return scores
}

// Progress mirrors the reference pacing: the question phase fills the first
// half, the wellness and advice phases are fixed checkpoints.
func (c *Checker) Progress(r *Run) float64 {
	switch r.Step {
	case StepQuestions:
		return float64(r.QuestionIndex+1) / float64(len(c.cat.Questions())) * 50
	case StepWellness:
		return 75
	case StepAdvice:
		return 90
	default:
		return 100
	}
}
