package questionnaire

import (
	"errors"
	"fmt"

	"github.com/yomogi-health/yomogi/internal/catalog"
)

var (
	// ErrNoCurrentQuestion is returned when Answer is called in a step that
	// has no question to answer. It signals a caller logic error, not a
	// recoverable questionnaire condition.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrExitQuestionnaire is the boundary signal raised by GoBack at the very
	// first question. It is distinct from every in-questionnaire position; the
	// caller decides what "leaving" means (the reference UI returns to the
	// dashboard).
	ErrExitQuestionnaire = errors.New("exit questionnaire")
)

// QuestionView is the resolved question at the current position, shaped for
// rendering.
type QuestionView struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Type         string   `json:"type"`
	Options      []string `json:"options,omitempty"`
	SectionTitle string   `json:"section_title"`
}

// Flow drives a Session through the catalog. The catalog is immutable; every
// transition is a total function over valid positions.
type Flow struct {
	cat *catalog.Catalog
}

func NewFlow(cat *catalog.Catalog) *Flow {
	return &Flow{cat: cat}
}

// Current resolves the question the session points at, or false in the
// complaint/complete/results steps.
func (f *Flow) Current(s *Session) (QuestionView, bool) {
	p := s.Position
	if !p.atQuestion() {
		return QuestionView{}, false
	}
	title := f.cat.Sections[p.Section].Title
	if p.Step == StepMain {
		q, ok := f.cat.Main(p.Section, p.Question)
		if !ok {
			return QuestionView{}, false
		}
		return QuestionView{ID: q.ID, Label: q.Label, Type: q.Type, SectionTitle: title}, true
	}
	fq, ok := f.cat.SubQuestionAt(p.Section, p.Question, p.FollowUp)
	if !ok {
		return QuestionView{}, false
	}
	v := QuestionView{ID: fq.ID, Label: fq.Label, Type: fq.Type, SectionTitle: title}
	for _, opt := range fq.Options {
		v.Options = append(v.Options, opt.Text)
	}
	return v, true
}

// Answer records a value for the current question and advances the position.
// Re-answering the same question overwrites the earlier value.
func (f *Flow) Answer(s *Session, a Answer) error {
	q, ok := f.Current(s)
	if !ok {
		return ErrNoCurrentQuestion
	}
	if err := checkShape(q.Type, a); err != nil {
		return err
	}
	s.Answers[q.ID] = a

	p := s.Position
	switch p.Step {
	case StepMain:
		main, _ := f.cat.Main(p.Section, p.Question)
		if main.FollowUp != nil && a.Kind == AnswerBinary && a.Value == Yes {
			s.Position = Position{Step: StepFollowUp, Section: p.Section, Question: p.Question}
			return nil
		}
		s.Position = f.advanceMain(p)
	case StepFollowUp:
		main, _ := f.cat.Main(p.Section, p.Question)
		if p.FollowUp+1 < len(main.FollowUp.Questions) {
			p.FollowUp++
			s.Position = p
			return nil
		}
		s.Position = f.advanceMain(p)
	}
	return nil
}

// advanceMain moves past the main question at p: next question in the
// section, first question of the next section, or the complaint step.
func (f *Flow) advanceMain(p Position) Position {
	sec := f.cat.Sections[p.Section]
	if p.Question+1 < len(sec.Children) {
		return Position{Step: StepMain, Section: p.Section, Question: p.Question + 1}
	}
	if p.Section+1 < len(f.cat.Sections) {
		return Position{Step: StepMain, Section: p.Section + 1}
	}
	return Position{Step: StepComplaint}
}

// GoBack is the inverse of Answer's forward rule. It never touches recorded
// answers; a revisited question re-displays with its previous answer intact.
func (f *Flow) GoBack(s *Session) error {
	p := s.Position
	switch p.Step {
	case StepFollowUp:
		if p.FollowUp > 0 {
			p.FollowUp--
			s.Position = p
			return nil
		}
		s.Position = Position{Step: StepMain, Section: p.Section, Question: p.Question}
	case StepMain:
		if p.Question > 0 {
			s.Position = Position{Step: StepMain, Section: p.Section, Question: p.Question - 1}
			return nil
		}
		if p.Section > 0 {
			prev := f.cat.Sections[p.Section-1]
			s.Position = Position{Step: StepMain, Section: p.Section - 1, Question: len(prev.Children) - 1}
			return nil
		}
		return ErrExitQuestionnaire
	case StepComplaint:
		last := len(f.cat.Sections) - 1
		s.Position = Position{
			Step:     StepMain,
			Section:  last,
			Question: len(f.cat.Sections[last].Children) - 1,
		}
	case StepComplete:
		s.Position = Position{Step: StepComplaint}
	case StepResults:
		// terminal; nothing to go back to
	}
	return nil
}

// ToggleOption adds or removes an option text from the multi-select answer of
// the current follow-up question. It never advances the position; submitting
// the accumulated set is a separate Answer call.
func (f *Flow) ToggleOption(s *Session, optionText string, selected bool) error {
	q, ok := f.Current(s)
	if !ok {
		return ErrNoCurrentQuestion
	}
	if q.Type != catalog.TypeMulti {
		return fmt.Errorf("question %q is not multi-select", q.ID)
	}
	cur := s.Answers[q.ID]
	if selected {
		if !cur.contains(optionText) {
			cur = Multi(append(cur.Selected, optionText))
		}
	} else {
		kept := make([]string, 0, len(cur.Selected))
		for _, t := range cur.Selected {
			if t != optionText {
				kept = append(kept, t)
			}
		}
		cur = Multi(kept)
	}
	s.Answers[q.ID] = cur
	return nil
}

// SubmitComplaint records the free-text complaint and completes the run.
func (f *Flow) SubmitComplaint(s *Session, text string) error {
	if s.Position.Step != StepComplaint {
		return fmt.Errorf("not at the complaint step")
	}
	s.Complaint = text
	s.Position = Position{Step: StepComplete}
	return nil
}

// ShowResults moves a completed run to the results step.
func (f *Flow) ShowResults(s *Session) error {
	if s.Position.Step != StepComplete && s.Position.Step != StepResults {
		return fmt.Errorf("questionnaire not complete")
	}
	s.Position = Position{Step: StepResults}
	return nil
}

// Reset clears all answers and the complaint and returns to the first
// question.
func (f *Flow) Reset(s *Session) {
	s.Answers = map[string]Answer{}
	s.Complaint = ""
	s.Position = Start()
}

func checkShape(questionType string, a Answer) error {
	switch questionType {
	case catalog.TypeBinary:
		if a.Kind != AnswerBinary {
			return fmt.Errorf("binary question requires a yes/no answer")
		}
		if a.Value != Yes && a.Value != No {
			return fmt.Errorf("binary answer must be %q or %q, got %q", Yes, No, a.Value)
		}
	case catalog.TypeMulti:
		if a.Kind != AnswerMulti {
			return fmt.Errorf("multi-select question requires a selection answer")
		}
	default:
		return fmt.Errorf("unknown question type %q", questionType)
	}
	return nil
}
