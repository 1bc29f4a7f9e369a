package advice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/yomogi-health/yomogi/internal/scoring"
)

const unavailableNotice = "AI APIが利用できません。デフォルトのアドバイスを表示しています。"

// GenAIGenerator asks a remote Gemini model for personalized advice. Any
// failure degrades to the rule generator: the caller always gets advice text,
// never an error.
type GenAIGenerator struct {
	client   *genai.Client
	model    string
	fallback RuleGenerator
}

// NewGenAIGenerator builds the remote generator. The API key is required;
// deployments without one use RuleGenerator directly.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, scores scoring.Scores, symptoms string) Result {
	top := scoring.Top(scores, 3)
	parts := make([]string, len(top))
	for i, c := range top {
		parts[i] = fmt.Sprintf("%s(スコア: %d)", c.Name, c.Score)
	}

	var b strings.Builder
	b.WriteString("あなたは東洋医学の専門家です。以下の体質診断結果に基づいて、個別化された養生アドバイスを提供してください。\n\n")
	b.WriteString("【体質診断結果】\n")
	b.WriteString("主要な体質傾向: " + strings.Join(parts, ", ") + "\n")
	if symptoms != "" {
		b.WriteString("主な症状: " + symptoms + "\n")
	}
	b.WriteString(`
【アドバイス項目】
1. 食事の養生（具体的な食材と調理法）
2. 運動の養生（適切な運動の種類と強度）
3. 生活習慣の養生（睡眠、入浴、環境など）
4. 心の養生（ストレス管理、リラックス法）

各項目について、東洋医学の理論に基づいた具体的で実践しやすいアドバイスを3-4つずつ提供してください。
専門用語は分かりやすく説明し、日常生活に取り入れやすい内容にしてください。
`)

	text, err := g.generate(ctx, b.String())
	if err != nil {
		res := g.fallback.Generate(ctx, scores, symptoms)
		res.Success = false
		res.Err = unavailableNotice
		return res
	}
	return Result{Success: true, Advice: text, Timestamp: now()}
}

// dailyPromptAxes fixes the order of the score line so identical inputs
// build identical prompts.
var dailyPromptAxes = []string{"虚", "実", "寒", "熱", "陰", "陽"}

func dailyPrompt(scores map[string]int, body, mind int, symptoms string) string {
	var pairs []string
	seen := map[string]bool{}
	for _, k := range dailyPromptAxes {
		if v, ok := scores[k]; ok {
			pairs = append(pairs, fmt.Sprintf("%s: %d", k, v))
			seen[k] = true
		}
	}
	var rest []string
	for k := range scores {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		pairs = append(pairs, fmt.Sprintf("%s: %d", k, scores[k]))
	}

	var b strings.Builder
	b.WriteString("あなたは東洋医学の専門家です。今日の体調チェック結果に基づいて、今日一日の養生アドバイスを提供してください。\n\n")
	b.WriteString("【今日の体調】\n")
	b.WriteString("八綱弁証スコア: " + strings.Join(pairs, ", ") + "\n")
	fmt.Fprintf(&b, "からだの調子: %d/5\nこころの調子: %d/5\n", body, mind)
	if symptoms != "" {
		b.WriteString("気になる症状: " + symptoms + "\n")
	}
	b.WriteString("\n今日の体調に合わせた具体的で実践しやすいアドバイスを、簡潔に3-4つ提供してください。\n特に今日気をつけるべきことを中心にお願いします。\n")
	return b.String()
}

func (g *GenAIGenerator) GenerateDaily(ctx context.Context, scores map[string]int, body, mind int, symptoms string) Result {
	text, err := g.generate(ctx, dailyPrompt(scores, body, mind, symptoms))
	if err != nil {
		res := g.fallback.GenerateDaily(ctx, scores, body, mind, symptoms)
		res.Success = false
		res.Err = unavailableNotice
		return res
	}
	return Result{Success: true, Advice: text, Timestamp: now()}
}

func (g *GenAIGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
