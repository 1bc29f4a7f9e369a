package scoring

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yomogi-health/yomogi/internal/catalog"
	"github.com/yomogi-health/yomogi/internal/questionnaire"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Sections: []catalog.Section{{
		ID: "s1", Title: "t",
		Children: []catalog.MainQuestion{
			{
				ID: "q1", Label: "q1", Type: catalog.TypeBinary, Score: map[string]int{"気虚": 1},
				FollowUp: &catalog.FollowUp{Condition: "yes", Questions: []catalog.SubQuestion{
					{ID: "q1_f1", Label: "f1", Type: catalog.TypeBinary, Score: map[string]int{"気虚": 1, "血虚": 1}},
					{ID: "q1_f2", Label: "f2", Type: catalog.TypeMulti, Options: []catalog.Option{
						{Text: "A", Score: map[string]int{"X": 1}},
						{Text: "B", Score: map[string]int{"Y": 1}},
					}},
				}},
			},
			{ID: "q2", Label: "q2", Type: catalog.TypeBinary, Score: map[string]int{"血虚": 2}},
		},
	}}}
}

func TestComputeFoldsYesAnswers(t *testing.T) {
	cat := testCatalog()
	answers := map[string]questionnaire.Answer{
		"q1":    questionnaire.Binary(questionnaire.Yes),
		"q1_f1": questionnaire.Binary(questionnaire.Yes),
		"q2":    questionnaire.Binary(questionnaire.No),
	}
	got := Compute(answers, cat)
	want := Scores{"気虚": 2, "血虚": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
}

func TestComputeMultiSelect(t *testing.T) {
	cat := testCatalog()
	answers := map[string]questionnaire.Answer{
		"q1_f2": questionnaire.Multi([]string{"A", "B"}),
	}
	got := Compute(answers, cat)
	want := Scores{"X": 1, "Y": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}

	// deselecting B leaves only A's contribution
	answers["q1_f2"] = questionnaire.Multi([]string{"A"})
	got = Compute(answers, cat)
	want = Scores{"X": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("after deselect: %v, want %v", got, want)
	}
}

func TestComputeIgnoresUnmatchedInput(t *testing.T) {
	cat := testCatalog()
	answers := map[string]questionnaire.Answer{
		"q1_f2":   questionnaire.Multi([]string{"A", "stale option"}),
		"unknown": questionnaire.Binary(questionnaire.Yes),
	}
	got := Compute(answers, cat)
	want := Scores{"X": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
}

// A main question may carry no score map of its own; answering it "yes" then
// contributes nothing directly and only its follow-ups score.
func TestComputeScorelessMain(t *testing.T) {
	doc := `{"sections":[{"id":"s1","title":"t","children":[
		{"id":"q1","label":"a","type":"binary",
		 "follow_up":{"condition":"yes","questions":[
			{"id":"q1_f1","label":"f","type":"binary","score":{"気虚":1}}]}},
		{"id":"q2","label":"b","type":"binary","score":{"血虚":2}}]}]}`
	cat, err := catalog.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	answers := map[string]questionnaire.Answer{
		"q1":    questionnaire.Binary(questionnaire.Yes),
		"q1_f1": questionnaire.Binary(questionnaire.Yes),
		"q2":    questionnaire.Binary(questionnaire.Yes),
	}
	got := Compute(answers, cat)
	want := Scores{"気虚": 1, "血虚": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
}

// Recomputing from the same answer map yields the same result; the fold is a
// pure function of (answers, catalog).
func TestComputeIdempotent(t *testing.T) {
	cat := testCatalog()
	answers := map[string]questionnaire.Answer{
		"q1": questionnaire.Binary(questionnaire.Yes),
		"q2": questionnaire.Binary(questionnaire.Yes),
	}
	first := Compute(answers, cat)
	second := Compute(answers, cat)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recompute diverged: %v vs %v", first, second)
	}
}

func TestTopOrdering(t *testing.T) {
	scores := Scores{"気虚": 3, "血虚": 3, "水滞": 1, "気滞": 0, "瘀血": -1}
	got := Top(scores, 3)
	want := []Constitution{{"気虚", 3}, {"血虚", 3}, {"水滞", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("top = %v, want %v", got, want)
	}
	if got := Top(scores, 1); len(got) != 1 || got[0].Name != "気虚" {
		t.Fatalf("top 1 = %v", got)
	}
	if got := Top(Scores{}, 3); len(got) != 0 {
		t.Fatalf("top of empty = %v", got)
	}
}

func TestRadarAxesFixed(t *testing.T) {
	r := Radar(Scores{"気虚": 2, "肝の不調": 1})
	if len(r.QiBloodFluid) != len(QiBloodFluidAxes) || len(r.FiveOrgans) != len(FiveOrganAxes) {
		t.Fatalf("axis counts = %d/%d", len(r.QiBloodFluid), len(r.FiveOrgans))
	}
	if r.QiBloodFluid[0] != (RadarAxis{Subject: "気虚", Score: 2}) {
		t.Fatalf("first axis = %+v", r.QiBloodFluid[0])
	}
	// absent categories render as zero, axis order preserved
	if r.QiBloodFluid[2] != (RadarAxis{Subject: "水滞", Score: 0}) {
		t.Fatalf("missing axis = %+v", r.QiBloodFluid[2])
	}
	if r.FiveOrgans[0] != (RadarAxis{Subject: "肝の不調", Score: 1}) {
		t.Fatalf("organ axis = %+v", r.FiveOrgans[0])
	}
}
