package advice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/yomogi-health/yomogi/internal/scoring"
)

func TestRuleGenerate(t *testing.T) {
	g := RuleGenerator{}
	res := g.Generate(context.Background(), scoring.Scores{"気虚": 3, "血虚": 2}, "疲れやすい")
	if !res.Success || res.Err != "" {
		t.Fatalf("result = %+v", res)
	}
	if _, err := time.Parse(time.RFC3339, res.Timestamp); err != nil {
		t.Fatalf("timestamp %q: %v", res.Timestamp, err)
	}
	for _, want := range []string{
		"主な体質傾向: 気虚(3), 血虚(2)",
		"気を補う食材",   // 気虚 dietary guidance
		"鉄分豊富な食材", // 血虚 dietary guidance
		"【心の養生】",
	} {
		if !strings.Contains(res.Advice, want) {
			t.Errorf("advice missing %q", want)
		}
	}
	if strings.Contains(res.Advice, "利尿作用") {
		t.Errorf("水滞 guidance must not appear without a 水滞 score")
	}
}

func TestRuleGenerateBalanced(t *testing.T) {
	g := RuleGenerator{}
	res := g.Generate(context.Background(), scoring.Scores{}, "")
	if !strings.Contains(res.Advice, "バランスが取れている") {
		t.Fatalf("advice = %q", res.Advice)
	}
	// the generic guidance sections always appear
	for _, want := range []string{"【食事の養生】", "【運動の養生】", "【生活習慣の養生】"} {
		if !strings.Contains(res.Advice, want) {
			t.Errorf("advice missing %q", want)
		}
	}
}

func TestDailyRuleSliders(t *testing.T) {
	g := RuleGenerator{}

	res := g.GenerateDaily(context.Background(), nil, 1, 5, "")
	if !strings.Contains(res.Advice, "体調が優れない") {
		t.Errorf("low body slider: %q", res.Advice)
	}
	if !strings.Contains(res.Advice, "心の状態が良好") {
		t.Errorf("high mind slider: %q", res.Advice)
	}

	res = g.GenerateDaily(context.Background(), map[string]int{"寒": 2}, 3, 3, "")
	if !strings.Contains(res.Advice, "体が冷えている") {
		t.Errorf("寒 axis: %q", res.Advice)
	}
	if strings.Contains(res.Advice, "体調が優れない") {
		t.Errorf("neutral sliders must not trigger slider guidance: %q", res.Advice)
	}
}

func TestDailyRuleDefault(t *testing.T) {
	g := RuleGenerator{}
	res := g.GenerateDaily(context.Background(), map[string]int{"虚": 1}, 3, 3, "")
	if !strings.Contains(res.Advice, "体調は安定している") {
		t.Fatalf("advice = %q", res.Advice)
	}
	if strings.Contains(res.Advice, "\n\n") {
		t.Fatalf("default advice is a single paragraph, got %q", res.Advice)
	}
}
