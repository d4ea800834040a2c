package speech

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/model/speech"
	speechsvc "github.com/namaste-emily/aasha/backend/internal/service/speech"
	"github.com/namaste-emily/aasha/backend/pkg/utils"
)

const sttStubText = "Speech recognition not fully implemented yet. Please use browser speech recognition instead."

// SpeechService 抽象语音业务，便于测试与替换实现
type SpeechService interface {
	Synthesize(ctx context.Context, req speech.SynthesisRequest) (*speech.SynthesisResult, error)
	SynthesizeOpenAI(ctx context.Context, text string) (*speech.SynthesisResult, error)
	Transcribe(ctx context.Context, req *speech.TranscriptionRequest) (*speech.TranscriptionResponse, error)
	CredentialDebug() map[string]any
	OpenAICredentialDebug() map[string]any
}

// STTOptions 语音识别接口的开关与上传大小限制
type STTOptions struct {
	Enabled  bool
	MaxBytes int64
}

// Handler 语音服务的HTTP处理器
type Handler struct {
	speechSvc SpeechService
	stt       STTOptions
}

// New 创建语音处理器
func New(speechSvc SpeechService, stt STTOptions) *Handler {
	if stt.MaxBytes <= 0 {
		stt.MaxBytes = 25 << 20
	}
	return &Handler{speechSvc: speechSvc, stt: stt}
}

// RegisterRoutes 注册语音相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/speech", h.handleSpeech)
	r.Post("/tts", h.handleTTS)
	r.Post("/stt", h.handleSTT)
}

// handleSpeech 使用配置的引擎合成语音
func (h *Handler) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req speech.SynthesisRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing text")
		return
	}

	res, err := h.speechSvc.Synthesize(r.Context(), req)
	if err != nil {
		h.respondSynthesisError(w, err, h.speechSvc.CredentialDebug)
		return
	}

	log.Printf("[speech] synthesized voice=%s bytes=%d", res.Voice, len(res.Audio))
	utils.RespondAudio(w, res.ContentType, res.Audio)
}

// handleTTS 始终使用 OpenAI 合成语音
func (h *Handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing text")
		return
	}

	res, err := h.speechSvc.SynthesizeOpenAI(r.Context(), req.Text)
	if err != nil {
		h.respondSynthesisError(w, err, h.speechSvc.OpenAICredentialDebug)
		return
	}

	utils.RespondAudio(w, res.ContentType, res.Audio)
}

// handleSTT 处理语音转文本请求
func (h *Handler) handleSTT(w http.ResponseWriter, r *http.Request) {
	if !h.stt.Enabled {
		utils.RespondJSON(w, http.StatusOK, speech.TranscriptionResponse{
			Text:  sttStubText,
			Error: "server_stt_not_implemented",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.stt.MaxBytes)
	if err := r.ParseMultipartForm(h.stt.MaxBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "missing_audio")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "missing_audio")
		return
	}
	defer file.Close()

	resp, err := h.speechSvc.Transcribe(r.Context(), &speech.TranscriptionRequest{
		Audio:    file,
		Filename: header.Filename,
	})
	if err != nil {
		if errors.Is(err, config.ErrCredentialsMissing) {
			utils.RespondErrorDetails(w, http.StatusInternalServerError, err.Error(), map[string]any{
				"debug": h.speechSvc.OpenAICredentialDebug(),
			})
			return
		}
		log.Printf("[speech] STT error: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "stt_failed", map[string]any{
			"details": err.Error(),
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// respondSynthesisError 将合成错误映射为状态码，debug 描述本次调用所用引擎的凭证
func (h *Handler) respondSynthesisError(w http.ResponseWriter, err error, debug func() map[string]any) {
	var (
		azErr *speechsvc.AzureError
		oaErr *speechsvc.OpenAIError
	)
	switch {
	case errors.Is(err, speechsvc.ErrEmptyText):
		utils.RespondError(w, http.StatusBadRequest, "Missing text")
	case errors.Is(err, config.ErrCredentialsMissing):
		log.Printf("[speech] credentials missing: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, err.Error(), map[string]any{
			"debug": debug(),
		})
	case errors.As(err, &azErr):
		log.Printf("[speech] azure error status=%d", azErr.StatusCode)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, azErr.Error(), map[string]any{
			"status":  azErr.StatusCode,
			"details": azErr.Body,
			"ssml":    azErr.SSML,
		})
	case errors.As(err, &oaErr):
		log.Printf("[speech] openai error: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "tts_failed", map[string]any{
			"details": oaErr.Err.Error(),
		})
	default:
		log.Printf("[speech] TTS error: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "speech_failed", map[string]any{
			"details": err.Error(),
		})
	}
}
