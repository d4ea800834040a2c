package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/namaste-emily/aasha/backend/internal/handler/content"
	"github.com/namaste-emily/aasha/backend/internal/handler/missions"
	"github.com/namaste-emily/aasha/backend/internal/handler/progress"
	"github.com/namaste-emily/aasha/backend/internal/handler/roleplay"
	"github.com/namaste-emily/aasha/backend/internal/handler/speech"
	middlewarePkg "github.com/namaste-emily/aasha/backend/internal/middleware"
	personaModel "github.com/namaste-emily/aasha/backend/internal/model/persona"
	"github.com/namaste-emily/aasha/backend/internal/model/phrase"
	"github.com/namaste-emily/aasha/backend/pkg/utils"
)

// Dependencies 汇总路由需要注入各处理器的服务
type Dependencies struct {
	Personas personaModel.Store
	Phrases  phrase.Pack
	AI       interface {
		roleplay.Service
		missions.Service
	}
	Speech   speech.SpeechService
	STT      speech.STTOptions
	Progress progress.Tracker
}

// NewRouter 将HTTP路由与核心服务关联
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		content.New(deps.Personas, deps.Phrases).RegisterRoutes(api)
		roleplay.New(deps.AI).RegisterRoutes(api)
		missions.New(deps.AI).RegisterRoutes(api)
		speech.New(deps.Speech, deps.STT).RegisterRoutes(api)
		progress.New(deps.Progress).RegisterRoutes(api)
	})

	return r
}
