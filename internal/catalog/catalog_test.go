package catalog

import (
	"strings"
	"testing"
)

const minimalDoc = `{
  "sections": [
    {
      "id": "s1",
      "title": "Section one",
      "children": [
        {
          "id": "q1",
          "label": "Main one?",
          "type": "binary",
          "score": { "気虚": 2 },
          "follow_up": {
            "condition": "yes",
            "questions": [
              { "id": "q1_f1", "label": "Follow binary?", "type": "binary", "score": { "気虚": 1 } },
              { "id": "q1_f2", "label": "Pick some", "type": "multi",
                "options": [ { "text": "A", "score": { "X": 1 } }, { "text": "B", "score": { "Y": 1 } } ] }
            ]
          }
        },
        { "id": "q2", "label": "Main two?", "type": "binary", "score": { "血虚": 2 } }
      ]
    }
  ]
}`

func TestParseMinimal(t *testing.T) {
	c, err := Parse(strings.NewReader(minimalDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := c.TotalUnits(); got != 5 {
		t.Fatalf("TotalUnits = %d, want 5 (2 mains + 2 follow-ups + complaint)", got)
	}
	q, ok := c.Main(0, 1)
	if !ok || q.ID != "q2" {
		t.Fatalf("Main(0,1) = %v %v, want q2", q.ID, ok)
	}
	fq, ok := c.SubQuestionAt(0, 0, 1)
	if !ok || fq.ID != "q1_f2" || len(fq.Options) != 2 {
		t.Fatalf("SubQuestionAt(0,0,1) = %+v %v", fq, ok)
	}
	if _, ok := c.SubQuestionAt(0, 1, 0); ok {
		t.Fatalf("q2 has no follow-ups, resolution must fail")
	}
	if _, ok := c.FindSub("q1_f1"); !ok {
		t.Fatalf("FindSub(q1_f1) failed")
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty sections": `{"sections":[]}`,
		"empty section": `{"sections":[{"id":"s1","title":"t","children":[]}]}`,
		"duplicate id": `{"sections":[{"id":"s1","title":"t","children":[
			{"id":"q1","label":"a","type":"binary","score":{"x":1}},
			{"id":"q1","label":"b","type":"binary","score":{"x":1}}]}]}`,
		"multi main": `{"sections":[{"id":"s1","title":"t","children":[
			{"id":"q1","label":"a","type":"multi","score":{"x":1}}]}]}`,
		"multi follow-up without options": `{"sections":[{"id":"s1","title":"t","children":[
			{"id":"q1","label":"a","type":"binary","score":{"x":1},
			 "follow_up":{"condition":"yes","questions":[{"id":"f1","label":"f","type":"multi"}]}}]}]}`,
	}
	for name, doc := range cases {
		if _, err := Parse(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected error, got none", name)
		}
	}
}

// Questions may omit their score map entirely; weight can live solely in
// follow-ups or options.
func TestParseAcceptsScorelessQuestions(t *testing.T) {
	doc := `{"sections":[{"id":"s1","title":"t","children":[
		{"id":"q1","label":"a","type":"binary",
		 "follow_up":{"condition":"yes","questions":[
			{"id":"q1_f1","label":"f","type":"binary","score":{"気虚":1}},
			{"id":"q1_f2","label":"g","type":"binary"}]}},
		{"id":"q2","label":"b","type":"binary","score":{"血虚":2}}]}]}`
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := c.TotalUnits(); got != 5 {
		t.Fatalf("TotalUnits = %d, want 5", got)
	}
}

func TestDuplicateIDAcrossSections(t *testing.T) {
	doc := `{"sections":[
		{"id":"s1","title":"t","children":[{"id":"q1","label":"a","type":"binary","score":{"x":1}}]},
		{"id":"s2","title":"t","children":[{"id":"q1","label":"b","type":"binary","score":{"x":1}}]}]}`
	if _, err := Parse(strings.NewReader(doc)); err == nil {
		t.Fatalf("duplicate id across sections must be rejected")
	}
}

func TestEmbeddedDefaults(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("embedded questionnaire: %v", err)
	}
	if len(c.Sections) == 0 {
		t.Fatalf("embedded questionnaire has no sections")
	}
	d, err := DefaultDaily()
	if err != nil {
		t.Fatalf("embedded daily catalog: %v", err)
	}
	if len(d.Questions()) == 0 {
		t.Fatalf("embedded daily catalog has no questions")
	}
}

func TestParseDailyRejectsBadDocs(t *testing.T) {
	cases := map[string]string{
		"no questions": `{"sections":[{"id":"d","title":"t","questions":[]}]}`,
		"no options": `{"sections":[{"id":"d","title":"t","questions":[
			{"id":"d1","label":"a","type":"single","options":[]}]}]}`,
		"duplicate id": `{"sections":[{"id":"d","title":"t","questions":[
			{"id":"d1","label":"a","type":"single","options":[{"text":"x","score":{}}]},
			{"id":"d1","label":"b","type":"single","options":[{"text":"y","score":{}}]}]}]}`,
	}
	for name, doc := range cases {
		if _, err := ParseDaily(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected error, got none", name)
		}
	}
}
