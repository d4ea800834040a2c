package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namaste-emily/aasha/backend/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		AI: config.AIConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini", Timeout: time.Second},
		Speech: config.SpeechConfig{
			Engine:       config.EngineAzure,
			HindiVoice:   "hi-IN-SwaraNeural",
			EnglishVoice: "en-US-AriaNeural",
		},
		STT: config.STTConfig{Enabled: false},
		Content: config.ContentConfig{
			PersonaPath: filepath.Join(dir, "missing.txt"),
			ScenesPath:  filepath.Join(dir, "missing.json"),
			PhrasesPath: filepath.Join(dir, "missing-phrases.json"),
		},
	}
}

func TestBuildWithoutCredentials(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	require.False(t, a.AI.Ready())
	require.NotEmpty(t, a.Content.Fallbacks)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	a.Handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestBuildWithSQLiteProgress(t *testing.T) {
	cfg := testConfig(t)
	cfg.Progress.DBPath = filepath.Join(t.TempDir(), "progress.db")

	a, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/progress/emily/chai", strings.NewReader(`{"amount":1}`))
	resp := httptest.NewRecorder()
	a.Handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, a.closers, 1)
	require.NoError(t, a.Close())
}

func TestSpeechConfigCarriesOpenAIKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.AI.OpenAIAPIKey = "sk-test"
	cfg.STT.Model = "whisper-1"

	sc := SpeechConfig(cfg)
	require.Equal(t, "sk-test", sc.OpenAIKey)
	require.Equal(t, "whisper-1", sc.STTModel)
	require.Equal(t, config.EngineAzure, sc.Engine)
	require.Equal(t, time.Second, sc.Timeout)
}
