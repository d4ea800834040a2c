package speech

import "time"

// SpeechConfig 语音服务配置
type SpeechConfig struct {
	// Azure 配置
	AzureKey     string `json:"-"`
	AzureRegion  string `json:"azureRegion"`
	Endpoint     string `json:"endpoint,omitempty"` // 覆盖默认的区域端点
	OutputFormat string `json:"outputFormat"`

	// 声音选择
	HindiVoice   string `json:"hindiVoice"`
	EnglishVoice string `json:"englishVoice"`
	SlowRate     string `json:"slowRate"`

	// OpenAI TTS / Whisper 配置
	OpenAIKey     string `json:"-"`
	OpenAIBaseURL string `json:"openaiBaseUrl,omitempty"`
	OpenAIModel   string `json:"openaiModel"`
	OpenAIVoice   string `json:"openaiVoice"`
	STTModel      string `json:"sttModel"`
	STTLanguage   string `json:"sttLanguage"`

	// 通用配置
	Engine  string        `json:"engine"` // azure 或 openai
	Timeout time.Duration `json:"timeout"`
}
