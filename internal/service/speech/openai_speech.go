package speech

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
)

// OpenAIError 包装失败的 OpenAI 语音调用
type OpenAIError struct {
	Op  string
	Err error
}

func (e *OpenAIError) Error() string {
	return fmt.Sprintf("openai %s: %v", e.Op, e.Err)
}

func (e *OpenAIError) Unwrap() error {
	return e.Err
}

// OpenAIAudioClient 负责 OpenAI 语音合成与 Whisper 识别
type OpenAIAudioClient struct {
	config     *speechmodel.SpeechConfig
	httpClient *http.Client
}

// NewOpenAIAudioClient 创建 OpenAI 语音客户端
func NewOpenAIAudioClient(config *speechmodel.SpeechConfig, httpClient *http.Client) *OpenAIAudioClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &OpenAIAudioClient{config: config, httpClient: httpClient}
}

func (c *OpenAIAudioClient) client() (*openai.Client, error) {
	key, err := resolveOpenAIKey(c.config)
	if err != nil {
		return nil, err
	}
	clientCfg := openai.DefaultConfig(key)
	if c.config.OpenAIBaseURL != "" {
		clientCfg.BaseURL = c.config.OpenAIBaseURL
	}
	clientCfg.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(clientCfg), nil
}

// Synthesize 将纯文本合成为 mp3 音频
func (c *OpenAIAudioClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	client, err := c.client()
	if err != nil {
		return nil, err
	}

	modelName := openai.SpeechModel(orDefault(c.config.OpenAIModel, string(openai.TTSModel1)))
	voice := openai.SpeechVoice(orDefault(c.config.OpenAIVoice, string(openai.VoiceAlloy)))

	resp, err := client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          modelName,
		Input:          text,
		Voice:          voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, &OpenAIError{Op: "speech", Err: err}
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, &OpenAIError{Op: "speech", Err: err}
	}
	log.Printf("[speech] openai tts ok voice=%s bytes=%d", voice, len(audio))
	return audio, nil
}

// Transcribe 将音频发送给 Whisper 并返回识别文本，语言提示固定取自配置
func (c *OpenAIAudioClient) Transcribe(ctx context.Context, req *speechmodel.TranscriptionRequest) (string, error) {
	client, err := c.client()
	if err != nil {
		return "", err
	}

	language := orDefault(c.config.STTLanguage, "hi")

	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    orDefault(c.config.STTModel, openai.Whisper1),
		Reader:   req.Audio,
		FilePath: uploadName(req.Filename),
		Language: language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", &OpenAIError{Op: "transcription", Err: err}
	}
	log.Printf("[speech] whisper ok language=%s chars=%d", language, len(resp.Text))
	return resp.Text, nil
}

// uploadName 为上传文件生成唯一文件名，保留 Whisper 用于识别容器格式的扩展名
func uploadName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".webm"
	}
	return uuid.NewString() + ext
}
