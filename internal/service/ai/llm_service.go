package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/model/chat"
	"github.com/namaste-emily/aasha/backend/internal/model/persona"
)

// FallbackReply 模型无内容或不可用时返回的兜底回复
const FallbackReply = "Namaste, Emily! Kaise madad karun? (How can I help?)"

// RoleplayRequest 角色扮演请求
type RoleplayRequest struct {
	History []chat.ConversationTurn `json:"history"`
	Scene   string                  `json:"scene"`
	Level   string                  `json:"level"`
}

// Service 封装依赖大模型的业务能力
type Service struct {
	completer Completer
	prompts   *PersonaPromptManager
	cfg       config.AIConfig
}

// NewService 创建 AI 服务。completer 为 nil 表示缺少凭证，
// 此时所有调用都返回 config.ErrCredentialsMissing。
func NewService(personas persona.Store, completer Completer, cfg config.AIConfig) *Service {
	return &Service{
		completer: completer,
		prompts:   NewPersonaPromptManager(personas),
		cfg:       cfg,
	}
}

// Ready 表示是否已配置 Completer
func (s *Service) Ready() bool {
	return s.completer != nil
}

// CredentialDebug 返回凭证状态，用于错误响应
func (s *Service) CredentialDebug() map[string]any {
	return s.cfg.CredentialDebug()
}

// CredentialError 返回当前提供方的凭证错误文案。
func (s *Service) CredentialError() string {
	return s.cfg.CredentialError()
}

// Prompts 返回提示词管理器
func (s *Service) Prompts() *PersonaPromptManager {
	return s.prompts
}

// Roleplay 生成 Aasha 阿姨的下一句回复
func (s *Service) Roleplay(ctx context.Context, req RoleplayRequest) (string, error) {
	if !s.Ready() {
		return "", config.ErrCredentialsMissing
	}

	scene := strings.TrimSpace(req.Scene)
	if scene == "" {
		scene = persona.DefaultScene
	}
	level := strings.TrimSpace(req.Level)
	if level == "" {
		level = LevelBeginner
	}

	history, dropped := chat.Sanitize(req.History)
	if dropped > 0 {
		log.Printf("[ai] dropped %d invalid history turns", dropped)
	}

	messages, err := s.prompts.BuildMessages(ctx, scene, level, history)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reply, err := s.completer.Complete(ctx, messages, s.cfg.RoleplayTemperature)
	if err != nil {
		return "", fmt.Errorf("roleplay completion: %w", err)
	}

	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}
	log.Printf("[ai] roleplay reply scene=%s level=%s turns=%d length=%d", scene, level, len(history), len(reply))
	return reply, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}
