package content

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/namaste-emily/aasha/backend/internal/model/persona"
	"github.com/namaste-emily/aasha/backend/internal/model/phrase"
	"github.com/namaste-emily/aasha/backend/pkg/utils"
)

// Handler 向前端提供场景与短语包
type Handler struct {
	personas persona.Store
	phrases  phrase.Pack
}

// New 创建内容处理器
func New(personas persona.Store, phrases phrase.Pack) *Handler {
	return &Handler{personas: personas, phrases: phrases}
}

// RegisterRoutes 注册内容相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/scenes", h.handleListScenes)
	r.Get("/phrases", h.handlePhrases)
}

func (h *Handler) handleListScenes(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"scenes": h.personas.Scenes()})
}

func (h *Handler) handlePhrases(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimSpace(r.URL.Query().Get("scene"))
	if requested == "" {
		requested = persona.DefaultScene
	}

	scene, items := h.phrases.Lookup(requested, persona.DefaultScene)
	if items == nil {
		items = []phrase.Phrase{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"scene":   scene,
		"phrases": items,
	})
}
