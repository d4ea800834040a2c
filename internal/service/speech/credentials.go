package speech

import (
	"fmt"
	"strings"

	"github.com/namaste-emily/aasha/backend/internal/config"
	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
)

// resolveAzureCredentials 返回规范化后的 Key 与请求地址，缺失时给出明确错误。
func resolveAzureCredentials(cfg *speechmodel.SpeechConfig) (string, string, error) {
	if cfg == nil {
		return "", "", fmt.Errorf("%w: azure speech config not initialized", config.ErrCredentialsMissing)
	}

	key := strings.TrimSpace(cfg.AzureKey)
	region := strings.TrimSpace(cfg.AzureRegion)
	if key == "" || region == "" {
		return "", "", fmt.Errorf("%w: AZURE_SPEECH_KEY or AZURE_SPEECH_REGION not set", config.ErrCredentialsMissing)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region)
	}
	return key, endpoint, nil
}

// resolveOpenAIKey 返回 OpenAI 密钥，要求以 sk- 开头。
func resolveOpenAIKey(cfg *speechmodel.SpeechConfig) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("%w: speech config not initialized", config.ErrCredentialsMissing)
	}
	key := strings.TrimSpace(cfg.OpenAIKey)
	if key == "" || !strings.HasPrefix(key, "sk-") {
		return "", fmt.Errorf("%w: OPENAI_API_KEY missing or invalid", config.ErrCredentialsMissing)
	}
	return key, nil
}

// OpenAICredentialDebug 报告 OpenAI 密钥的存在情况，不暴露密钥本身。
func OpenAICredentialDebug(cfg *speechmodel.SpeechConfig) map[string]any {
	var key string
	if cfg != nil {
		key = strings.TrimSpace(cfg.OpenAIKey)
	}
	return map[string]any{
		"hasKey":       key != "",
		"keyLength":    len(key),
		"startsWithSk": strings.HasPrefix(key, "sk-"),
	}
}

// AzureCredentialDebug 报告 Azure 凭证是否齐全，用于错误响应。
func AzureCredentialDebug(cfg *speechmodel.SpeechConfig) map[string]any {
	if cfg == nil {
		return map[string]any{"hasKey": false, "hasRegion": false}
	}
	return map[string]any{
		"hasKey":    strings.TrimSpace(cfg.AzureKey) != "",
		"hasRegion": strings.TrimSpace(cfg.AzureRegion) != "",
	}
}
