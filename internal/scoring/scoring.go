package scoring

import (
	"sort"

	"github.com/yomogi-health/yomogi/internal/catalog"
	"github.com/yomogi-health/yomogi/internal/questionnaire"
)

// Scores maps a constitution category (e.g. 気虚) to its accumulated weight.
// Categories are opaque strings owned by the catalog, not an enumeration.
type Scores map[string]int

// Compute folds the full answer map into per-category scores by walking the
// catalog. It is recomputed from scratch on every call: the result is always
// consistent with the current answers and repeated partial updates can never
// double-count.
func Compute(answers map[string]questionnaire.Answer, cat *catalog.Catalog) Scores {
	scores := Scores{}
	for id, a := range answers {
		if q, ok := cat.FindMain(id); ok {
			scoreMain(scores, q, a)
			continue
		}
		if fq, ok := cat.FindSub(id); ok {
			scoreSub(scores, fq, a)
		}
		// answers with no catalog question contribute nothing
	}
	return scores
}

func scoreMain(scores Scores, q catalog.MainQuestion, a questionnaire.Answer) {
	if a.Kind == questionnaire.AnswerBinary && a.Value == questionnaire.Yes {
		scores.add(q.Score)
	}
}

func scoreSub(scores Scores, fq catalog.SubQuestion, a questionnaire.Answer) {
	switch fq.Type {
	case catalog.TypeBinary:
		if a.Kind == questionnaire.AnswerBinary && a.Value == questionnaire.Yes {
			scores.add(fq.Score)
		}
	case catalog.TypeMulti:
		if a.Kind != questionnaire.AnswerMulti {
			return
		}
		for _, text := range a.Selected {
			// selected text with no matching option is a deliberate no-op;
			// it can occur after a catalog edit invalidates stored answers
			if opt, ok := findOption(fq.Options, text); ok {
				scores.add(opt.Score)
			}
		}
	}
}

func findOption(opts []catalog.Option, text string) (catalog.Option, bool) {
	for _, o := range opts {
		if o.Text == text {
			return o, true
		}
	}
	return catalog.Option{}, false
}

func (s Scores) add(m map[string]int) {
	for k, v := range m {
		s[k] += v
	}
}

// Constitution is one named axis with its score, for ranked summaries.
type Constitution struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Top returns the n highest-scoring categories with a positive score, ordered
// by score descending, name ascending for equal scores (stable across calls).
func Top(scores Scores, n int) []Constitution {
	out := make([]Constitution, 0, len(scores))
	for name, score := range scores {
		if score > 0 {
			out = append(out, Constitution{Name: name, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
