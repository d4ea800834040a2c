package roleplay

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

// Service 抽象角色扮演业务，便于测试与替换实现
type Service interface {
	Roleplay(ctx context.Context, req ai.RoleplayRequest) (string, error)
	CredentialDebug() map[string]any
	CredentialError() string
}

// Handler 角色扮演对话的HTTP处理器
type Handler struct {
	svc Service
}

// New 创建角色扮演处理器
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册角色扮演相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/roleplay", h.handleRoleplay)
}

func (h *Handler) handleRoleplay(w http.ResponseWriter, r *http.Request) {
	var req ai.RoleplayRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.svc.Roleplay(r.Context(), req)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	var perr *ai.ProviderError
	switch {
	case errors.Is(err, config.ErrCredentialsMissing):
		log.Printf("[roleplay] credentials missing")
		utils.RespondErrorDetails(w, http.StatusInternalServerError, h.svc.CredentialError(), map[string]any{
			"debug": h.svc.CredentialDebug(),
			"reply": ai.FallbackReply,
		})
	case errors.As(err, &perr):
		log.Printf("[roleplay] provider call failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "openai_api_failed", map[string]any{
			"details": perr.Err.Error(),
			"reply":   ai.FallbackReply,
		})
	default:
		log.Printf("[roleplay] failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "roleplay_failed", map[string]any{
			"details": err.Error(),
			"reply":   ai.FallbackReply,
		})
	}
}
