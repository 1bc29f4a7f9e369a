package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/yomogi-health/yomogi/internal/scoring"
)

// threshold at which a constitution category triggers targeted guidance.
const threshold = 2

// RuleGenerator is the deterministic, fully offline advice source. It is both
// the default generator and the fallback path of the remote one.
type RuleGenerator struct{}

func (RuleGenerator) Generate(_ context.Context, scores scoring.Scores, symptoms string) Result {
	return Result{Success: true, Advice: ruleAdvice(scores), Timestamp: now()}
}

func ruleAdvice(scores scoring.Scores) string {
	top := scoring.Top(scores, 3)

	var b strings.Builder
	b.WriteString("【あなたの体質に合わせた養生アドバイス】\n\n")
	if len(top) == 0 {
		b.WriteString("現在の体調は比較的バランスが取れているようです。\n\n")
	} else {
		parts := make([]string, len(top))
		for i, c := range top {
			parts[i] = fmt.Sprintf("%s(%d)", c.Name, c.Score)
		}
		b.WriteString("主な体質傾向: " + strings.Join(parts, ", ") + "\n\n")
	}

	b.WriteString("【食事の養生】\n")
	if scores["気虚"] >= threshold {
		b.WriteString("• 消化に良い温かい食べ物を中心に摂りましょう\n")
		b.WriteString("• 山芋、なつめ、鶏肉などの気を補う食材がおすすめです\n")
	}
	if scores["血虚"] >= threshold {
		b.WriteString("• 鉄分豊富な食材（ほうれん草、レバー、ひじきなど）を積極的に\n")
		b.WriteString("• 黒ごま、クコの実、赤身の肉で血を補いましょう\n")
	}
	if scores["水滞"] >= threshold {
		b.WriteString("• 塩分を控えめにし、利尿作用のある食材（小豆、とうもろこし）を\n")
		b.WriteString("• 冷たい飲み物は避け、温かい飲み物を選びましょう\n")
	}
	b.WriteString("• バランスの良い食事を心がけ、旬の食材を取り入れましょう\n\n")

	b.WriteString("【運動の養生】\n")
	if scores["気虚"] >= threshold {
		b.WriteString("• 激しい運動は避け、軽いウォーキングやストレッチを\n")
	}
	if scores["気滞"] >= threshold {
		b.WriteString("• ヨガや太極拳など、ゆったりとした運動がおすすめです\n")
	}
	b.WriteString("• 毎日30分程度の軽い運動を心がけましょう\n")
	b.WriteString("• 階段を使う、一駅歩くなど、日常に運動を取り入れましょう\n\n")

	b.WriteString("【生活習慣の養生】\n")
	b.WriteString("• 規則正しい生活リズムを保ちましょう\n")
	b.WriteString("• 十分な睡眠時間を確保しましょう\n")
	if scores["血虚"] >= threshold {
		b.WriteString("• 目を酷使しすぎないよう、適度な休憩を取りましょう\n")
	}
	if scores["水滞"] >= threshold {
		b.WriteString("• 湿度の高い環境を避け、除湿を心がけましょう\n")
	}
	b.WriteString("• 体を冷やさないよう、温かい服装を心がけましょう\n\n")

	b.WriteString("【心の養生】\n")
	b.WriteString("• ストレスを溜めすぎないよう、適度にリフレッシュしましょう\n")
	b.WriteString("• 好きなことをする時間を大切にしましょう\n")
	if scores["気滞"] >= threshold {
		b.WriteString("• 深呼吸や軽いマッサージでリラックスしましょう\n")
	}
	if scores["血虚"] >= threshold {
		b.WriteString("• 瞑想や深呼吸で心を落ち着かせる時間を作りましょう\n")
	}
	return b.String()
}

func (RuleGenerator) GenerateDaily(_ context.Context, scores map[string]int, body, mind int, _ string) Result {
	return Result{Success: true, Advice: dailyRuleAdvice(scores, body, mind), Timestamp: now()}
}

func dailyRuleAdvice(scores map[string]int, body, mind int) string {
	var msgs []string

	if body <= 2 {
		msgs = append(msgs, "今日は体調が優れないようです。無理をせず、十分な休息を取りましょう。")
	} else if body >= 4 {
		msgs = append(msgs, "体調が良好ですね！この調子を維持するため、バランスの良い食事と適度な運動を心がけましょう。")
	}
	if mind <= 2 {
		msgs = append(msgs, "心の調子が少し下がっているようです。深呼吸やリラックスできる時間を作りましょう。")
	} else if mind >= 4 {
		msgs = append(msgs, "心の状態が良好です。この前向きな気持ちを大切に、今日も充実した一日をお過ごしください。")
	}

	if scores["虚"] >= threshold {
		msgs = append(msgs, "体力や気力が不足気味です。温かい食べ物を摂り、早めの就寝を心がけましょう。")
	}
	if scores["実"] >= threshold {
		msgs = append(msgs, "体にエネルギーが溜まっているようです。軽い運動やストレッチで発散させましょう。")
	}
	if scores["寒"] >= threshold {
		msgs = append(msgs, "体が冷えているようです。温かい飲み物を摂り、体を温めることを意識してください。")
	}
	if scores["熱"] >= threshold {
		msgs = append(msgs, "体に熱がこもっているようです。涼しい環境で過ごし、水分補給を心がけましょう。")
	}

	if len(msgs) == 0 {
		msgs = append(msgs, "今日の体調は安定しているようです。規則正しい生活を続けて、この良い状態を維持しましょう。")
	}
	return strings.Join(msgs, "\n\n")
}
