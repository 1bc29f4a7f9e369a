package questionnaire

import (
	"math"
	"testing"

	"github.com/yomogi-health/yomogi/internal/catalog"
)

// smallCatalog: two mains, the first with one follow-up. Four units including
// the complaint step.
func smallCatalog() *catalog.Catalog {
	return &catalog.Catalog{Sections: []catalog.Section{{
		ID: "s1", Title: "t",
		Children: []catalog.MainQuestion{
			{
				ID: "a", Label: "a", Type: catalog.TypeBinary, Score: map[string]int{"x": 1},
				FollowUp: &catalog.FollowUp{Condition: "yes", Questions: []catalog.SubQuestion{
					{ID: "a_f1", Label: "f", Type: catalog.TypeBinary, Score: map[string]int{"x": 1}},
				}},
			},
			{ID: "b", Label: "b", Type: catalog.TypeBinary, Score: map[string]int{"x": 1}},
		},
	}}}
}

func approx(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func TestProgressCheckpoints(t *testing.T) {
	f := NewFlow(smallCatalog())
	s := NewSession("sess-1", "user-1")

	if got := f.Progress(s); got != 0 {
		t.Fatalf("fresh run progress = %v, want 0", got)
	}

	mustAnswer(t, f, s, Binary(Yes)) // a -> follow-up
	if got := f.Progress(s); !approx(got, 25) {
		t.Fatalf("at follow-up: %v, want 25", got)
	}
	mustAnswer(t, f, s, Binary(No)) // a_f1 -> b
	if got := f.Progress(s); !approx(got, 50) {
		t.Fatalf("at b: %v, want 50", got)
	}
	mustAnswer(t, f, s, Binary(No)) // b -> complaint
	if got := f.Progress(s); !approx(got, 75) {
		t.Fatalf("at complaint: %v, want 75", got)
	}
	if err := f.SubmitComplaint(s, ""); err != nil {
		t.Fatalf("submit complaint: %v", err)
	}
	if got := f.Progress(s); got != 100 {
		t.Fatalf("complete: %v, want 100", got)
	}
	if err := f.ShowResults(s); err != nil {
		t.Fatalf("show results: %v", err)
	}
	if got := f.Progress(s); got != 100 {
		t.Fatalf("results: %v, want 100", got)
	}
}

// Skipped follow-ups still count toward the passed-question tally, so the
// percentage never moves backwards relative to the unit walked.
func TestProgressCountsSkippedFollowUps(t *testing.T) {
	f := NewFlow(smallCatalog())
	s := NewSession("sess-1", "user-1")

	mustAnswer(t, f, s, Binary(No)) // skip a's follow-up
	if got := f.Progress(s); !approx(got, 50) {
		t.Fatalf("at b after skip: %v, want 50", got)
	}
}

func TestProgressMonotoneUnderForwardSteps(t *testing.T) {
	f := NewFlow(testCatalog())
	s := NewSession("sess-1", "user-1")

	prev := f.Progress(s)
	answers := []Answer{Binary(Yes), Binary(Yes), Multi([]string{"息切れ"}), Binary(No), Binary(No)}
	for i, a := range answers {
		mustAnswer(t, f, s, a)
		got := f.Progress(s)
		if got < prev {
			t.Fatalf("step %d: progress dropped %v -> %v", i, prev, got)
		}
		prev = got
	}
	if err := f.SubmitComplaint(s, ""); err != nil {
		t.Fatalf("submit complaint: %v", err)
	}
	if got := f.Progress(s); got < prev || got != 100 {
		t.Fatalf("final progress %v (prev %v)", got, prev)
	}
}

func TestProgressGoBackRestoresEarlierValue(t *testing.T) {
	f := NewFlow(smallCatalog())
	s := NewSession("sess-1", "user-1")

	mustAnswer(t, f, s, Binary(Yes))
	at := f.Progress(s)
	mustAnswer(t, f, s, Binary(No))
	if err := f.GoBack(s); err != nil {
		t.Fatalf("go back: %v", err)
	}
	if got := f.Progress(s); !approx(got, at) {
		t.Fatalf("progress after go back = %v, want %v", got, at)
	}
}
