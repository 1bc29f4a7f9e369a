package dailycheck

import "strings"

// adviceThreshold is the score at which an axis is considered out of balance.
const adviceThreshold = 2

// axisAdvice holds one eight-principle axis and its canned sentence. Order is
// fixed; every matching axis appends independently.
var axisAdvice = []struct {
	axis string
	text string
}{
	{"虚", "体力や気力が不足気味のようですね。十分な休息と栄養のある食事を心がけましょう。"},
	{"実", "体に余分なエネルギーが溜まっているようです。軽い運動やストレッチで発散させましょう。"},
	{"寒", "体が冷えているようです。温かい飲み物や食べ物を摂り、体を温めることを意識してください。"},
	{"熱", "体に熱がこもっているようです。涼しい環境で過ごし、水分補給を心がけましょう。"},
	{"陰", "体の潤いが不足しているようです。水分をしっかり摂り、質の良い睡眠を取りましょう。"},
	{"陽", "活動的なエネルギーが高まっているようです。適度な運動でバランスを取りましょう。"},
}

const balancedAdvice = "今日の体調は良好のようですね！この調子で規則正しい生活を続けていきましょう。"

// GenerateAdvice maps daily scores to canned guidance. Multiple axes may
// match; their sentences are joined by blank lines. When no axis reaches the
// threshold a single balanced sentence is returned.
func GenerateAdvice(scores map[string]int) string {
	var msgs []string
	for _, a := range axisAdvice {
		if scores[a.axis] >= adviceThreshold {
			msgs = append(msgs, a.text)
		}
	}
	if len(msgs) == 0 {
		return balancedAdvice
	}
	return strings.Join(msgs, "\n\n")
}
