package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/namaste-emily/aasha/backend/internal/config"
	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
)

// ErrEmptyText 待合成文本为空
var ErrEmptyText = errors.New("missing text")

// ErrEmptyAudio 识别请求未携带音频
var ErrEmptyAudio = errors.New("missing audio")

// Service 语音服务核心业务逻辑
type Service struct {
	config *speechmodel.SpeechConfig
	azure  *AzureTTSClient
	openai *OpenAIAudioClient
	voices VoiceSet
}

// NewService 创建语音服务实例
func NewService(config *speechmodel.SpeechConfig) *Service {
	return NewServiceWithClient(config, nil)
}

// NewServiceWithClient 使用指定的 httpClient 调用所有语音提供方
func NewServiceWithClient(cfg *speechmodel.SpeechConfig, httpClient *http.Client) *Service {
	if cfg == nil {
		cfg = &speechmodel.SpeechConfig{}
	}
	return &Service{
		config: cfg,
		azure:  NewAzureTTSClient(cfg, httpClient),
		openai: NewOpenAIAudioClient(cfg, httpClient),
		voices: VoiceSet{Hindi: cfg.HindiVoice, English: cfg.EnglishVoice, SlowRate: cfg.SlowRate},
	}
}

// Engine 返回当前配置的合成引擎
func (s *Service) Engine() string {
	if s.config.Engine == config.EngineOpenAI {
		return config.EngineOpenAI
	}
	return config.EngineAzure
}

// CredentialDebug 报告当前引擎的凭证状态
func (s *Service) CredentialDebug() map[string]any {
	if s.Engine() == config.EngineOpenAI {
		return OpenAICredentialDebug(s.config)
	}
	return AzureCredentialDebug(s.config)
}

// OpenAICredentialDebug 描述 OpenAI 密钥状态，/tts 与 Whisper 始终使用该密钥。
func (s *Service) OpenAICredentialDebug() map[string]any {
	return OpenAICredentialDebug(s.config)
}

// BuildSSML 仅生成 SSML，不调用提供方
func (s *Service) BuildSSML(req speechmodel.SynthesisRequest) SSMLDocument {
	return BuildSSML(req.Text, req.IsSlow(), s.voices)
}

// Synthesize 文字转语音，按配置选择 Azure 或 OpenAI。
func (s *Service) Synthesize(ctx context.Context, req speechmodel.SynthesisRequest) (*speechmodel.SynthesisResult, error) {
	if s.Engine() == config.EngineOpenAI {
		return s.SynthesizeOpenAI(ctx, req.Text)
	}
	return s.SynthesizeAzure(ctx, req)
}

// SynthesizeAzure 生成 SSML 并提交给 Azure
func (s *Service) SynthesizeAzure(ctx context.Context, req speechmodel.SynthesisRequest) (*speechmodel.SynthesisResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	doc := s.BuildSSML(req)
	audio, err := s.azure.Synthesize(ctx, doc.Markup)
	if err != nil {
		return nil, err
	}

	return &speechmodel.SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
		Voice:       doc.Voice.Name,
		Language:    doc.Voice.Lang,
		SSML:        doc.Markup,
	}, nil
}

// SynthesizeOpenAI 将纯文本提交给 OpenAI 语音接口
func (s *Service) SynthesizeOpenAI(ctx context.Context, text string) (*speechmodel.SynthesisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	audio, err := s.openai.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	return &speechmodel.SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
		Voice:       orDefault(s.config.OpenAIVoice, "alloy"),
	}, nil
}

// Transcribe 语音转文字
func (s *Service) Transcribe(ctx context.Context, req *speechmodel.TranscriptionRequest) (*speechmodel.TranscriptionResponse, error) {
	if req == nil || req.Audio == nil {
		return nil, ErrEmptyAudio
	}

	text, err := s.openai.Transcribe(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	return &speechmodel.TranscriptionResponse{Text: text}, nil
}
