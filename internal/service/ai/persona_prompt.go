package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/namaste-emily/aasha/backend/internal/model/chat"
	"github.com/namaste-emily/aasha/backend/internal/model/persona"
)

// LevelBeginner 默认学习者水平
const LevelBeginner = "beginner"

const (
	sceneHeader        = "Persona scene:"
	beginnerHint       = "Use very simple sentences and slow pace."
	intermediateHint   = "Use simple sentences; allow a bit more variety."
	closingInstruction = "Start with a friendly greeting and a clear question."
)

// PersonaPromptManager 组装系统提示词以及发送给模型的消息列表
type PersonaPromptManager struct {
	personas persona.Store
	template prompt.ChatTemplate
}

// NewPersonaPromptManager 基于人设存储创建提示词管理器
func NewPersonaPromptManager(personas persona.Store) *PersonaPromptManager {
	return &PersonaPromptManager{
		personas: personas,
		template: prompt.FromMessages(
			schema.FString,
			schema.SystemMessage("{system}"),
			schema.MessagesPlaceholder("history", true),
		),
	}
}

// BuildSystemPrompt 用换行拼接人设、场景、水平提示与结束指令，
// 未知场景使用 market 的描述。
func (pm *PersonaPromptManager) BuildSystemPrompt(sceneID, level string) string {
	scene, _ := pm.personas.Scene(sceneID)

	hint := intermediateHint
	if level == LevelBeginner {
		hint = beginnerHint
	}

	return strings.Join([]string{
		pm.personas.Persona(),
		sceneHeader,
		scene.Description,
		hint,
		closingInstruction,
	}, "\n")
}

// BuildMessages 渲染系统提示词并接上对话历史
func (pm *PersonaPromptManager) BuildMessages(ctx context.Context, sceneID, level string, history []chat.ConversationTurn) ([]*schema.Message, error) {
	messages, err := pm.template.Format(ctx, map[string]any{
		"system":  pm.BuildSystemPrompt(sceneID, level),
		"history": toSchemaMessages(history),
	})
	if err != nil {
		return nil, fmt.Errorf("format roleplay prompt: %w", err)
	}
	return messages, nil
}

func toSchemaMessages(turns []chat.ConversationTurn) []*schema.Message {
	out := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			out = append(out, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			out = append(out, schema.AssistantMessage(turn.Content, nil))
		case chat.RoleSystem:
			out = append(out, schema.SystemMessage(turn.Content))
		}
	}
	return out
}
