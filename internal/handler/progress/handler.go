package progress

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	progresssvc "github.com/namaste-emily/aasha/backend/internal/service/progress"
	"github.com/namaste-emily/aasha/backend/pkg/utils"
)

// Tracker 处理器所依赖的进度追踪能力
type Tracker interface {
	Init(ctx context.Context, profileID string) (*progresssvc.Result, error)
	AwardXP(ctx context.Context, profileID string, n int) (*progresssvc.Result, error)
	AwardChai(ctx context.Context, profileID string, n int) (*progresssvc.Result, error)
	TouchScene(ctx context.Context, profileID, scene string) (*progresssvc.Result, error)
	TapPhrase(ctx context.Context, profileID string) (*progresssvc.Result, error)
	RecordMessages(ctx context.Context, profileID string, n int) (*progresssvc.Result, error)
	CompleteMission(ctx context.Context, profileID string) (*progresssvc.Result, error)
}

// Handler 学习进度的HTTP处理器
type Handler struct {
	tracker Tracker
}

// New 创建进度处理器
func New(tracker Tracker) *Handler {
	return &Handler{tracker: tracker}
}

// RegisterRoutes 在 /progress/{profileID} 下注册进度路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/progress/{profileID}", func(pr chi.Router) {
		pr.Get("/", h.handleInit)
		pr.Post("/xp", h.handleAmount(h.tracker.AwardXP))
		pr.Post("/chai", h.handleAmount(h.tracker.AwardChai))
		pr.Post("/messages", h.handleCount)
		pr.Post("/scenes/{sceneID}", h.handleTouchScene)
		pr.Post("/phrases/tap", h.handleTapPhrase)
		pr.Post("/mission/complete", h.handleCompleteMission)
	})
}

func (h *Handler) handleInit(w http.ResponseWriter, r *http.Request) {
	res, err := h.tracker.Init(r.Context(), chi.URLParam(r, "profileID"))
	h.respond(w, res, err)
}

func (h *Handler) handleAmount(award func(context.Context, string, int) (*progresssvc.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Amount int `json:"amount"`
		}
		if err := utils.DecodeJSON(w, r, &payload); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		res, err := award(r.Context(), chi.URLParam(r, "profileID"), payload.Amount)
		h.respond(w, res, err)
	}
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Count int `json:"count"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.tracker.RecordMessages(r.Context(), chi.URLParam(r, "profileID"), payload.Count)
	h.respond(w, res, err)
}

func (h *Handler) handleTouchScene(w http.ResponseWriter, r *http.Request) {
	res, err := h.tracker.TouchScene(r.Context(), chi.URLParam(r, "profileID"), chi.URLParam(r, "sceneID"))
	h.respond(w, res, err)
}

func (h *Handler) handleTapPhrase(w http.ResponseWriter, r *http.Request) {
	res, err := h.tracker.TapPhrase(r.Context(), chi.URLParam(r, "profileID"))
	h.respond(w, res, err)
}

func (h *Handler) handleCompleteMission(w http.ResponseWriter, r *http.Request) {
	res, err := h.tracker.CompleteMission(r.Context(), chi.URLParam(r, "profileID"))
	h.respond(w, res, err)
}

func (h *Handler) respond(w http.ResponseWriter, res *progresssvc.Result, err error) {
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, res)
	case errors.Is(err, progresssvc.ErrInvalidAmount),
		errors.Is(err, progresssvc.ErrProfileRequired),
		errors.Is(err, progresssvc.ErrSceneRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[progress] error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "progress_failed")
	}
}
