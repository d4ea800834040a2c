package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8080",
		"9000":           ":9000",
		":7000":          ":7000",
		"127.0.0.1:6000": "127.0.0.1:6000",
	}
	for in, want := range cases {
		got, err := normalizeAddr(in)
		if err != nil {
			t.Fatalf("normalizeAddr(%q) err: %v", in, err)
		}
		if got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := normalizeAddr("80 80"); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	require.InDelta(t, 0.6, cfg.AI.RoleplayTemperature, 0.0001)
	require.InDelta(t, 0.7, cfg.AI.MissionTemperature, 0.0001)
	require.Equal(t, 30*time.Second, cfg.AI.Timeout)
	require.Equal(t, EngineAzure, cfg.Speech.Engine)
	require.Equal(t, "hi-IN-SwaraNeural", cfg.Speech.HindiVoice)
	require.Equal(t, "en-US-AriaNeural", cfg.Speech.EnglishVoice)
	require.True(t, cfg.STT.Enabled)
	require.Equal(t, "whisper-1", cfg.STT.Model)
	require.Equal(t, "hi", cfg.STT.Language)
	require.False(t, cfg.AI.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SPEECH_ENGINE", "openai")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("STT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.True(t, cfg.AI.Enabled())
	require.Equal(t, EngineOpenAI, cfg.Speech.Engine)
	require.Equal(t, 5*time.Second, cfg.AI.Timeout)
	require.False(t, cfg.STT.Enabled)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "bard")

	_, err := Load()
	require.Error(t, err)
}

func TestOpenAIKeyValidation(t *testing.T) {
	require.False(t, AIConfig{OpenAIAPIKey: ""}.OpenAIKeyValid())
	require.False(t, AIConfig{OpenAIAPIKey: "pk-123"}.OpenAIKeyValid())
	require.True(t, AIConfig{OpenAIAPIKey: "sk-123"}.OpenAIKeyValid())

	debug := AIConfig{Provider: ProviderOpenAI, OpenAIAPIKey: "pk-123"}.CredentialDebug()
	require.Equal(t, true, debug["hasKey"])
	require.Equal(t, 6, debug["keyLength"])
	require.Equal(t, false, debug["startsWithSk"])
}

func TestArkEnabled(t *testing.T) {
	require.False(t, AIConfig{Provider: ProviderArk, ArkAPIKey: "k"}.Enabled())
	require.True(t, AIConfig{Provider: ProviderArk, ArkAPIKey: "k", ArkModel: "m"}.Enabled())
	require.True(t, AIConfig{Provider: ProviderArk, ArkAccessKey: "a", ArkSecretKey: "s", ArkModel: "m"}.Enabled())
}

func TestNewChatModelRequiresCredentials(t *testing.T) {
	_, err := AIConfig{Provider: ProviderArk}.NewChatModel(context.Background())
	require.True(t, errors.Is(err, ErrCredentialsMissing))
}

func TestAzureEnabled(t *testing.T) {
	require.False(t, SpeechConfig{AzureKey: "k"}.AzureEnabled())
	require.True(t, SpeechConfig{AzureKey: "k", AzureRegion: "eastus"}.AzureEnabled())
}

func TestCredentialErrorFollowsProvider(t *testing.T) {
	require.Equal(t, "Invalid or missing OpenAI API key", AIConfig{Provider: ProviderOpenAI}.CredentialError())
	require.Equal(t, "Invalid or missing Ark credentials", AIConfig{Provider: ProviderArk}.CredentialError())
}
