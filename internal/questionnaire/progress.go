package questionnaire

import "github.com/yomogi-health/yomogi/internal/catalog"

// Progress returns the percentage of completed question units in [0,100].
// It is derived from the position and the answer map on every call; fully
// passed questions count their follow-up units, the current follow-up counts
// partial credit, and the current main question counts once it has a recorded
// answer. 100 is reached only at the complete/results steps.
func (f *Flow) Progress(s *Session) float64 {
	total := f.cat.TotalUnits()
	p := s.Position

	switch p.Step {
	case StepComplaint:
		return clampPct(total-1, total)
	case StepComplete, StepResults:
		return 100
	}

	completed := 0
	for i := 0; i < p.Section; i++ {
		completed += units(f.cat.Sections[i].Children)
	}
	sec := f.cat.Sections[p.Section]
	completed += units(sec.Children[:p.Question])

	if p.Step == StepFollowUp {
		completed += 1 + p.FollowUp
	} else {
		if _, answered := s.Answers[sec.Children[p.Question].ID]; answered {
			completed++
		}
	}
	return clampPct(completed, total)
}

func units(qs []catalog.MainQuestion) int {
	n := 0
	for _, q := range qs {
		n++
		if q.FollowUp != nil {
			n += len(q.FollowUp.Questions)
		}
	}
	return n
}

func clampPct(completed, total int) float64 {
	pct := float64(completed) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
