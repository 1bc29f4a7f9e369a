package advice

import (
	"context"
	"time"

	"github.com/yomogi-health/yomogi/internal/scoring"
)

// Result is what any generator returns. Success=false means the remote
// generator was unavailable and Advice holds the deterministic fallback; the
// questionnaire flow never fails because of it.
type Result struct {
	Success   bool   `json:"success"`
	Advice    string `json:"advice"`
	Timestamp string `json:"timestamp"`
	Err       string `json:"error,omitempty"`
}

// Generator produces personalized wellness advice from constitution scores
// and an optional free-text symptom description.
type Generator interface {
	Generate(ctx context.Context, scores scoring.Scores, symptoms string) Result
}

// DailyGenerator produces advice for a daily check: eight-principle scores
// plus the body/mind condition sliders.
type DailyGenerator interface {
	GenerateDaily(ctx context.Context, scores map[string]int, body, mind int, symptoms string) Result
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }
