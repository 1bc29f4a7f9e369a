package advice

import (
	"context"
	"strings"
	"testing"
)

func TestNewGenAIGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenAIGenerator(context.Background(), "", "gemini-2.0-flash"); err == nil {
		t.Fatalf("empty api key must be rejected")
	}
}

// The score line follows the fixed axis order regardless of map iteration,
// so identical inputs always build the identical prompt.
func TestDailyPromptDeterministic(t *testing.T) {
	scores := map[string]int{"陽": 1, "寒": 2, "虚": 3}
	first := dailyPrompt(scores, 2, 4, "頭が重い")
	for i := 0; i < 20; i++ {
		if got := dailyPrompt(scores, 2, 4, "頭が重い"); got != first {
			t.Fatalf("prompt varied between calls:\n%q\n%q", first, got)
		}
	}
	if !strings.Contains(first, "八綱弁証スコア: 虚: 3, 寒: 2, 陽: 1\n") {
		t.Fatalf("score line out of order:\n%q", first)
	}
	if !strings.Contains(first, "からだの調子: 2/5\nこころの調子: 4/5\n") {
		t.Fatalf("slider lines missing:\n%q", first)
	}
	if !strings.Contains(first, "気になる症状: 頭が重い\n") {
		t.Fatalf("symptom line missing:\n%q", first)
	}
}
