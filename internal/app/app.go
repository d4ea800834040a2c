package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/content"
	"github.com/namaste-emily/aasha/backend/internal/handler"
	speechhandler "github.com/namaste-emily/aasha/backend/internal/handler/speech"
	"github.com/namaste-emily/aasha/backend/internal/model/persona"
	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
	"github.com/namaste-emily/aasha/backend/internal/service/ai"
	"github.com/namaste-emily/aasha/backend/internal/service/progress"
	"github.com/namaste-emily/aasha/backend/internal/service/speech"
)

// App holds the wired HTTP handler and the resources that must be released on exit.
type App struct {
	Handler http.Handler
	AI      *ai.Service
	Speech  *speech.Service
	Content *content.Bundle

	closers []func() error
}

// Build loads static content, initializes providers and wires the router.
// Missing provider credentials are not fatal: the affected endpoints answer
// with the documented 500 bodies instead.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	bundle, err := content.Load(ctx, content.Paths{
		Persona: cfg.Content.PersonaPath,
		Scenes:  cfg.Content.ScenesPath,
		Phrases: cfg.Content.PhrasesPath,
	})
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	personas := bundle.PersonaStore()

	aiService, err := NewAIService(ctx, cfg.AI, personas)
	if err != nil {
		return nil, err
	}

	speechService := speech.NewService(SpeechConfig(cfg))
	log.Printf("[app] speech engine=%s", speechService.Engine())

	a := &App{AI: aiService, Speech: speechService, Content: bundle}

	store, err := newProgressStore(ctx, cfg.Progress)
	if err != nil {
		return nil, err
	}
	if c, ok := store.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}

	a.Handler = handler.NewRouter(handler.Dependencies{
		Personas: personas,
		Phrases:  bundle.Phrases,
		AI:       aiService,
		Speech:   speechService,
		STT: speechhandler.STTOptions{
			Enabled:  cfg.STT.Enabled,
			MaxBytes: cfg.STT.MaxBytes,
		},
		Progress: progress.NewTracker(store),
	})
	return a, nil
}

// NewAIService builds the chat service for the configured provider. A provider
// without credentials yields a service whose calls fail with ErrCredentialsMissing.
func NewAIService(ctx context.Context, cfg config.AIConfig, personas persona.Store) (*ai.Service, error) {
	completer, err := ai.NewCompleter(ctx, cfg)
	switch {
	case errors.Is(err, config.ErrCredentialsMissing):
		log.Printf("[app] %s credentials not configured, AI endpoints will return fallbacks", cfg.Provider)
		completer = nil
	case err != nil:
		return nil, fmt.Errorf("init %s completer: %w", cfg.Provider, err)
	default:
		log.Printf("[app] AI provider=%s initialized", cfg.Provider)
	}
	return ai.NewService(personas, completer, cfg), nil
}

// SpeechConfig flattens the environment configuration into the speech service config.
func SpeechConfig(cfg *config.Config) *speechmodel.SpeechConfig {
	return &speechmodel.SpeechConfig{
		AzureKey:      cfg.Speech.AzureKey,
		AzureRegion:   cfg.Speech.AzureRegion,
		Endpoint:      cfg.Speech.Endpoint,
		OutputFormat:  cfg.Speech.OutputFormat,
		HindiVoice:    cfg.Speech.HindiVoice,
		EnglishVoice:  cfg.Speech.EnglishVoice,
		SlowRate:      cfg.Speech.SlowRate,
		OpenAIKey:     cfg.AI.OpenAIAPIKey,
		OpenAIBaseURL: cfg.AI.OpenAIBaseURL,
		OpenAIModel:   cfg.Speech.OpenAIModel,
		OpenAIVoice:   cfg.Speech.OpenAIVoice,
		STTModel:      cfg.STT.Model,
		STTLanguage:   cfg.STT.Language,
		Engine:        cfg.Speech.Engine,
		Timeout:       cfg.AI.Timeout,
	}
}

func newProgressStore(ctx context.Context, cfg config.ProgressConfig) (progress.Store, error) {
	if cfg.DBPath == "" {
		log.Println("[app] progress store: memory")
		return progress.NewMemoryStore(), nil
	}
	store, err := progress.NewSQLiteStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open progress store: %w", err)
	}
	log.Printf("[app] progress store: sqlite %s", cfg.DBPath)
	return store, nil
}

// Close releases stores opened by Build.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
