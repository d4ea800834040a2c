package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/model/mission"
	"github.com/namaste-emily/aasha/backend/internal/model/persona"
	"github.com/namaste-emily/aasha/backend/internal/model/phrase"
)

// GenerateContent 支持的内容类型
const (
	KindMission     = "mission"
	KindSuggestions = "suggestions"
)

// ErrUnknownKind 内容类型不是 mission 或 suggestions
var ErrUnknownKind = errors.New("unknown content type")

const missionSystemPrompt = "You are an expert in Indian culture and Hindi language learning. Generate realistic, culturally authentic content for an American family living in India. Always respond with valid JSON only."

const missionPromptTemplate = `Generate a realistic daily Hindi learning mission for Emily, an American living in India for 6 months with her husband Jonathan and daughter Sophia. 

Context: She's learning practical Hindi for daily life in India. Current progress: %s

Requirements:
- Must be achievable in one conversation session
- Should involve real situations she'd encounter in India
- Include specific Hindi phrases to practice
- Choose from scenes: market, taxi, rickshaw, neighbor, introductions, church
- Make it culturally authentic to Indian daily life

Format as JSON:
{
  "scene": "market",
  "title": "Buy Fresh Vegetables",
  "description": "Visit the local sabzi mandi and practice asking for seasonal vegetables in Hindi",
  "specificGoals": ["Ask for 2 vegetables", "Negotiate price politely", "Ask if items are fresh"],
  "culturalTip": "In Indian markets, gentle bargaining is expected and shows engagement"
}`

const suggestionsPromptTemplate = `Generate 6-8 of the MOST COMMON and practical Hindi phrases that Emily would actually use daily in this scene. Focus on phrases locals use constantly.

Context: American family (Emily, husband Jonathan, daughter Sophia) living in India for 6 months. They need the most essential, frequently-used phrases for real daily situations.

Current scene: %s
User progress: %s

Requirements:
- Choose the TOP phrases locals actually say every day in this situation
- Include phrases for different politeness levels (formal/informal)
- Add phrases for common problems/situations that arise
- Include both asking AND responding phrases
- Make pronunciation guides very clear for Americans
- Add cultural context when the phrase has special meaning
- Focus on phrases that will make Emily sound natural, not textbook

Format as JSON array:
[
  {
    "englishIntro": "The most common way to ask if vegetables are fresh - vendors expect this",
    "hindiPhrase": "यह ताज़ा है?", 
    "englishMeaning": "Is this fresh?",
    "pronunciation": "Yeh taaza hai?",
    "displayText": "Yeh taaza hai?",
    "culturalNote": "Vendors appreciate when you check freshness - shows you know quality",
    "frequency": "very_high"
  }
]`

// ContentResult 生成的 JSON，Fallback 表示是否使用了内置兜底内容
type ContentResult struct {
	Body     json.RawMessage
	Fallback bool
}

// GenerateContent 请求模型生成任务对象或短语推荐数组，
// 输出不符合预期结构时使用内置内容替代。
func (s *Service) GenerateContent(ctx context.Context, kind string, userProgress map[string]any) (*ContentResult, error) {
	if !s.Ready() {
		return nil, config.ErrCredentialsMissing
	}
	if kind != KindMission && kind != KindSuggestions {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if userProgress == nil {
		userProgress = map[string]any{}
	}

	progressJSON, err := json.Marshal(userProgress)
	if err != nil {
		return nil, fmt.Errorf("encode user progress: %w", err)
	}
	scene := progressScene(userProgress)

	var userPrompt string
	if kind == KindMission {
		userPrompt = fmt.Sprintf(missionPromptTemplate, progressJSON)
	} else {
		userPrompt = fmt.Sprintf(suggestionsPromptTemplate, scene, progressJSON)
	}

	messages := []*schema.Message{
		schema.SystemMessage(missionSystemPrompt),
		schema.UserMessage(userPrompt),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	content, err := s.completer.Complete(ctx, messages, s.cfg.MissionTemperature)
	if err != nil {
		return nil, fmt.Errorf("%s completion: %w", kind, err)
	}

	if kind == KindMission {
		return parseMission(content, scene), nil
	}
	return parseSuggestions(content), nil
}

func progressScene(userProgress map[string]any) string {
	if scene, ok := userProgress["scene"].(string); ok && strings.TrimSpace(scene) != "" {
		return scene
	}
	return persona.DefaultScene
}

// stripCodeFence 去掉外层的 markdown 代码块标记，例如 ```json ... ```
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = ""
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

func parseMission(content, scene string) *ContentResult {
	cleaned := stripCodeFence(content)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil && obj != nil {
		return &ContentResult{Body: compact(cleaned)}
	}

	log.Printf("[ai] mission output not a JSON object, using fallback for scene=%s", scene)
	body, _ := json.Marshal(mission.Fallback(scene))
	return &ContentResult{Body: body, Fallback: true}
}

func parseSuggestions(content string) *ContentResult {
	cleaned := stripCodeFence(content)

	var items []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &items); err == nil && hasUsablePhrase(items) {
		return &ContentResult{Body: compact(cleaned)}
	}

	log.Printf("[ai] suggestions output unusable, using fallback phrases")
	body, _ := json.Marshal(phrase.FallbackSuggestions())
	return &ContentResult{Body: body, Fallback: true}
}

func hasUsablePhrase(items []map[string]any) bool {
	for _, item := range items {
		hindi, _ := item["hindiPhrase"].(string)
		meaning, _ := item["englishMeaning"].(string)
		if hindi != "" && meaning != "" {
			return true
		}
	}
	return false
}

func compact(raw string) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return json.RawMessage(raw)
	}
	return buf.Bytes()
}
