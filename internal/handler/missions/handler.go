package missions

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/service/ai"
	"github.com/namaste-emily/aasha/backend/pkg/utils"
)

// Service 抽象任务与短语推荐的生成
type Service interface {
	GenerateContent(ctx context.Context, kind string, userProgress map[string]any) (*ai.ContentResult, error)
	CredentialDebug() map[string]any
	CredentialError() string
}

// Handler 任务接口的HTTP处理器
type Handler struct {
	svc Service
}

// New 创建任务处理器
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册 POST /missions
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/missions", h.handleMissions)
}

func (h *Handler) handleMissions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type         string         `json:"type"`
		UserProgress map[string]any `json:"userProgress"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.GenerateContent(r.Context(), payload.Type, payload.UserProgress)
	if err != nil {
		var perr *ai.ProviderError
		switch {
		case errors.Is(err, ai.ErrUnknownKind):
			utils.RespondError(w, http.StatusBadRequest, `type must be "mission" or "suggestions"`)
		case errors.Is(err, config.ErrCredentialsMissing):
			log.Printf("[missions] credentials missing")
			utils.RespondErrorDetails(w, http.StatusInternalServerError, h.svc.CredentialError()+" in missions", map[string]any{
				"debug": h.svc.CredentialDebug(),
			})
		case errors.As(err, &perr):
			log.Printf("[missions] provider call failed: %v", err)
			utils.RespondErrorDetails(w, http.StatusInternalServerError, "openai_api_failed", map[string]any{
				"details": perr.Err.Error(),
			})
		default:
			log.Printf("[missions] failed: %v", err)
			utils.RespondErrorDetails(w, http.StatusInternalServerError, "missions_failed", map[string]any{
				"details": err.Error(),
			})
		}
		return
	}

	if res.Fallback {
		log.Printf("[missions] served fallback %s", payload.Type)
	}
	utils.RespondJSON(w, http.StatusOK, res.Body)
}
