package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sashabaranov/go-openai"

	"github.com/namaste-emily/aasha/backend/internal/config"
)

// Completer 发起一次对话补全并返回回复文本
type Completer interface {
	Complete(ctx context.Context, messages []*schema.Message, temperature float32) (string, error)
}

// ProviderError 包装模型提供方调用失败
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewCompleter 按 cfg.Provider 创建对应的 Completer
func NewCompleter(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewArkCompleter(chatModel), nil
	default:
		if !cfg.OpenAIKeyValid() {
			return nil, config.ErrCredentialsMissing
		}
		return NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, &http.Client{Timeout: cfg.Timeout}), nil
	}
}

// OpenAICompleter 调用 OpenAI 对话补全接口
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter 创建 OpenAI Completer，baseURL 与 httpClient 可选
func NewOpenAICompleter(apiKey, baseURL, modelName string, httpClient *http.Client) *OpenAICompleter {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  modelName,
	}
}

// Complete 实现 Completer 接口
func (c *OpenAICompleter) Complete(ctx context.Context, messages []*schema.Message, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &ProviderError{Provider: config.ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ArkCompleter 将 eino 模型（火山方舟）适配为 Completer
type ArkCompleter struct {
	chatModel model.BaseChatModel
}

// NewArkCompleter 包装 eino 模型
func NewArkCompleter(chatModel model.BaseChatModel) *ArkCompleter {
	return &ArkCompleter{chatModel: chatModel}
}

// Complete 实现 Completer 接口
func (c *ArkCompleter) Complete(ctx context.Context, messages []*schema.Message, temperature float32) (string, error) {
	resp, err := c.chatModel.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		return "", &ProviderError{Provider: config.ProviderArk, Err: err}
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}
