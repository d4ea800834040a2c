package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// ErrCredentialsMissing 表示所选提供方缺少必需的凭证。
var ErrCredentialsMissing = errors.New("provider credentials missing")

// LLM_PROVIDER 可选的大模型提供方。
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// SPEECH_ENGINE 可选的语音合成引擎。
const (
	EngineAzure  = "azure"
	EngineOpenAI = "openai"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Speech   SpeechConfig
	STT      STTConfig
	Content  ContentConfig
	Progress ProgressConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := normalizeAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate 校验环境变量解析无法表达的约束。
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderArk:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.AI.Provider)
	}
	switch c.Speech.Engine {
	case EngineAzure, EngineOpenAI:
	default:
		return fmt.Errorf("unsupported SPEECH_ENGINE %q", c.Speech.Engine)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	return nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Addr string
}

// normalizeAddr 解析服务器监听地址。
func normalizeAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider            string        `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey        string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string        `env:"OPENAI_BASE_URL"`
	Model               string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	RoleplayTemperature float32       `env:"ROLEPLAY_TEMPERATURE" envDefault:"0.6"`
	MissionTemperature  float32       `env:"MISSIONS_TEMPERATURE" envDefault:"0.7"`
	Timeout             time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`

	ArkAPIKey    string `env:"ARK_API_KEY"`
	ArkAccessKey string `env:"ARK_ACCESS_KEY"`
	ArkSecretKey string `env:"ARK_SECRET_KEY"`
	ArkModel     string `env:"ARK_MODEL"`
	ArkBaseURL   string `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `env:"ARK_REGION" envDefault:"cn-beijing"`
}

// OpenAIKeyValid 判断 OpenAI 密钥是否可用，密钥须以 "sk-" 开头。
func (c AIConfig) OpenAIKeyValid() bool {
	key := strings.TrimSpace(c.OpenAIAPIKey)
	return key != "" && strings.HasPrefix(key, "sk-")
}

// Enabled 表示当前选择的大模型提供方是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if c.Provider == ProviderArk {
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	}
	return c.OpenAIKeyValid()
}

// CredentialDebug 描述凭证是否存在，不暴露密钥本身。
func (c AIConfig) CredentialDebug() map[string]any {
	if c.Provider == ProviderArk {
		return map[string]any{
			"provider":  ProviderArk,
			"hasKey":    c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""),
			"hasModel":  c.ArkModel != "",
			"keyLength": len(c.ArkAPIKey),
		}
	}
	key := strings.TrimSpace(c.OpenAIAPIKey)
	return map[string]any{
		"hasKey":       key != "",
		"keyLength":    len(key),
		"startsWithSk": strings.HasPrefix(key, "sk-"),
	}
}

// CredentialError 返回凭证缺失时面向前端的错误文案，随提供方变化。
func (c AIConfig) CredentialError() string {
	if c.Provider == ProviderArk {
		return "Invalid or missing Ark credentials"
	}
	return "Invalid or missing OpenAI API key"
}

// NewChatModel 使用 Ark 配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if c.ArkModel == "" || (c.ArkAPIKey == "" && (c.ArkAccessKey == "" || c.ArkSecretKey == "")) {
		return nil, fmt.Errorf("%w: 至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合", ErrCredentialsMissing)
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:   c.ArkBaseURL,
		Region:    c.ArkRegion,
		APIKey:    c.ArkAPIKey,
		AccessKey: c.ArkAccessKey,
		SecretKey: c.ArkSecretKey,
		Model:     c.ArkModel,
	}

	return ark.NewChatModel(ctx, cfg)
}

// SpeechConfig 描述语音合成相关配置。
type SpeechConfig struct {
	Engine       string `env:"SPEECH_ENGINE" envDefault:"azure"`
	AzureKey     string `env:"AZURE_SPEECH_KEY"`
	AzureRegion  string `env:"AZURE_SPEECH_REGION"`
	Endpoint     string `env:"AZURE_SPEECH_ENDPOINT"`
	OutputFormat string `env:"AZURE_SPEECH_OUTPUT_FORMAT" envDefault:"audio-24khz-48kbitrate-mono-mp3"`
	HindiVoice   string `env:"SPEECH_HINDI_VOICE" envDefault:"hi-IN-SwaraNeural"`
	EnglishVoice string `env:"SPEECH_ENGLISH_VOICE" envDefault:"en-US-AriaNeural"`
	SlowRate     string `env:"SPEECH_SLOW_RATE" envDefault:"-10%"`
	OpenAIModel  string `env:"OPENAI_TTS_MODEL" envDefault:"tts-1"`
	OpenAIVoice  string `env:"OPENAI_TTS_VOICE" envDefault:"alloy"`
}

// AzureEnabled 表示 Azure 语音凭证是否齐全。
func (c SpeechConfig) AzureEnabled() bool {
	return strings.TrimSpace(c.AzureKey) != "" && strings.TrimSpace(c.AzureRegion) != ""
}

// STTConfig 描述语音识别配置。
type STTConfig struct {
	Enabled  bool   `env:"STT_ENABLED" envDefault:"true"`
	Model    string `env:"STT_MODEL" envDefault:"whisper-1"`
	Language string `env:"STT_LANGUAGE" envDefault:"hi"`
	MaxBytes int64  `env:"STT_MAX_BYTES" envDefault:"26214400"`
}

// ContentConfig 指向人设、场景与短语等静态资源。
type ContentConfig struct {
	PersonaPath string `env:"PERSONA_PATH" envDefault:"server/persona.txt"`
	ScenesPath  string `env:"SCENES_PATH" envDefault:"server/scenes.json"`
	PhrasesPath string `env:"PHRASES_PATH" envDefault:"public/phrases.json"`
}

// ProgressConfig 选择进度存储，DBPath 为空时使用内存存储。
type ProgressConfig struct {
	DBPath string `env:"PROGRESS_DB_PATH"`
}
