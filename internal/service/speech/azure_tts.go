package speech

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
)

const defaultAzureOutputFormat = "audio-24khz-48kbitrate-mono-mp3"

// AzureError 记录 Azure 语音接口返回的非 2xx 响应
type AzureError struct {
	StatusCode int
	Status     string
	Body       string
	SSML       string
}

func (e *AzureError) Error() string {
	return "Azure TTS failed: " + e.Status
}

// AzureTTSClient 将 SSML 提交到 Azure 语音合成 REST 接口
type AzureTTSClient struct {
	config     *speechmodel.SpeechConfig
	httpClient *http.Client
}

// NewAzureTTSClient 创建 Azure TTS 客户端
func NewAzureTTSClient(config *speechmodel.SpeechConfig, httpClient *http.Client) *AzureTTSClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &AzureTTSClient{config: config, httpClient: httpClient}
}

// Synthesize 合成 SSML 并返回 mp3 音频
func (c *AzureTTSClient) Synthesize(ctx context.Context, ssml string) ([]byte, error) {
	key, endpoint, err := resolveAzureCredentials(c.config)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("build azure request: %w", err)
	}

	format := c.config.OutputFormat
	if format == "" {
		format = defaultAzureOutputFormat
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", format)
	req.Header.Set("User-Agent", "aasha-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("azure tts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read azure response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[speech] azure tts status=%d bytes=%d", resp.StatusCode, len(body))
		return nil, &AzureError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
			SSML:       ssml,
		}
	}

	log.Printf("[speech] azure tts ok bytes=%d", len(body))
	return body, nil
}
