package questionnaire

// Step is the coarse phase of a questionnaire run.
type Step string

const (
	StepMain      Step = "main"
	StepFollowUp  Step = "followup"
	StepComplaint Step = "complaint"
	StepComplete  Step = "complete"
	StepResults   Step = "results"
)

// Position is the current location in the traversal. Section and Question are
// valid catalog indices whenever Step is main or followup; FollowUp is only
// meaningful in the followup step.
type Position struct {
	Step     Step `json:"step"`
	Section  int  `json:"section_index"`
	Question int  `json:"question_index"`
	FollowUp int  `json:"follow_up_index"`
}

// Start is the position of a fresh run.
func Start() Position {
	return Position{Step: StepMain}
}

func (p Position) atQuestion() bool {
	return p.Step == StepMain || p.Step == StepFollowUp
}
