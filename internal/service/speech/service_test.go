package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namaste-emily/aasha/backend/internal/config"
	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
)

type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

func azureStub(t *testing.T, status int, body []byte) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Header = r.Header.Clone()
		captured.Body = string(data)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestSynthesizeAzureSuccess(t *testing.T) {
	srv, captured := azureStub(t, http.StatusOK, []byte("ID3fakeaudio"))
	svc := NewServiceWithClient(&speechmodel.SpeechConfig{
		AzureKey:    "azure-key",
		AzureRegion: "eastus",
		Endpoint:    srv.URL + "/cognitiveservices/v1",
	}, srv.Client())

	res, err := svc.Synthesize(context.Background(), speechmodel.SynthesisRequest{Text: "नमस्ते"})
	require.NoError(t, err)
	require.Equal(t, []byte("ID3fakeaudio"), res.Audio)
	require.Equal(t, "audio/mpeg", res.ContentType)
	require.Equal(t, DefaultHindiVoice, res.Voice)

	require.Equal(t, http.MethodPost, captured.Method)
	require.Equal(t, "/cognitiveservices/v1", captured.Path)
	require.Equal(t, "azure-key", captured.Header.Get("Ocp-Apim-Subscription-Key"))
	require.Equal(t, "application/ssml+xml", captured.Header.Get("Content-Type"))
	require.Equal(t, "audio-24khz-48kbitrate-mono-mp3", captured.Header.Get("X-Microsoft-OutputFormat"))
	require.Contains(t, captured.Body, `<prosody rate="-10%">`)
	require.Contains(t, captured.Body, `ph="nəməsˈteː"`)
}

func TestSynthesizeAzureProviderError(t *testing.T) {
	srv, _ := azureStub(t, http.StatusUnauthorized, []byte("bad key"))
	svc := NewServiceWithClient(&speechmodel.SpeechConfig{
		AzureKey:    "azure-key",
		AzureRegion: "eastus",
		Endpoint:    srv.URL,
	}, srv.Client())

	slow := false
	_, err := svc.Synthesize(context.Background(), speechmodel.SynthesisRequest{Text: "hello", Slow: &slow})
	var azErr *AzureError
	require.ErrorAs(t, err, &azErr)
	require.Equal(t, http.StatusUnauthorized, azErr.StatusCode)
	require.Equal(t, "bad key", azErr.Body)
	require.Equal(t, "Azure TTS failed: 401 Unauthorized", azErr.Error())
	require.Contains(t, azErr.SSML, `<prosody rate="0%">`)
}

func TestSynthesizeAzureMissingCredentials(t *testing.T) {
	svc := NewService(&speechmodel.SpeechConfig{AzureKey: "only-key"})

	_, err := svc.Synthesize(context.Background(), speechmodel.SynthesisRequest{Text: "hello"})
	require.ErrorIs(t, err, config.ErrCredentialsMissing)
	require.Equal(t, map[string]any{"hasKey": true, "hasRegion": false}, svc.CredentialDebug())
}

func TestSynthesizeEmptyText(t *testing.T) {
	svc := NewService(&speechmodel.SpeechConfig{})

	_, err := svc.Synthesize(context.Background(), speechmodel.SynthesisRequest{Text: "  "})
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestDefaultAzureEndpoint(t *testing.T) {
	_, endpoint, err := resolveAzureCredentials(&speechmodel.SpeechConfig{AzureKey: "k", AzureRegion: "centralindia"})
	require.NoError(t, err)
	require.Equal(t, "https://centralindia.tts.speech.microsoft.com/cognitiveservices/v1", endpoint)
}

func TestSynthesizeOpenAIEngine(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3bytes"))
	}))
	defer srv.Close()

	svc := NewServiceWithClient(&speechmodel.SpeechConfig{
		Engine:        config.EngineOpenAI,
		OpenAIKey:     "sk-test",
		OpenAIBaseURL: srv.URL + "/v1",
	}, srv.Client())

	res, err := svc.Synthesize(context.Background(), speechmodel.SynthesisRequest{Text: "Namaste"})
	require.NoError(t, err)
	require.Equal(t, []byte("mp3bytes"), res.Audio)
	require.Equal(t, "tts-1", payload["model"])
	require.Equal(t, "alloy", payload["voice"])
	require.Equal(t, "mp3", payload["response_format"])
	require.Equal(t, "Namaste", payload["input"])
}

func TestSynthesizeOpenAIInvalidKey(t *testing.T) {
	svc := NewService(&speechmodel.SpeechConfig{Engine: config.EngineOpenAI, OpenAIKey: "nope"})

	_, err := svc.Synthesize(context.Background(), speechmodel.SynthesisRequest{Text: "hi"})
	require.ErrorIs(t, err, config.ErrCredentialsMissing)
	require.Equal(t, false, svc.CredentialDebug()["startsWithSk"])
}

func TestTranscribeWhisper(t *testing.T) {
	var fields = map[string]string{}
	var filename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		if r.MultipartForm != nil {
			for k, v := range r.MultipartForm.Value {
				fields[k] = v[0]
			}
		}
		if _, header, err := r.FormFile("file"); assert.NoError(t, err) {
			filename = header.Filename
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"मुझे चाय चाहिए"}`))
	}))
	defer srv.Close()

	svc := NewServiceWithClient(&speechmodel.SpeechConfig{
		OpenAIKey:     "sk-test",
		OpenAIBaseURL: srv.URL + "/v1",
		STTModel:      "whisper-1",
		STTLanguage:   "hi",
	}, srv.Client())

	res, err := svc.Transcribe(context.Background(), &speechmodel.TranscriptionRequest{
		Audio:    bytes.NewReader([]byte("webm-bytes")),
		Filename: "clip.WEBM",
	})
	require.NoError(t, err)
	require.Equal(t, "मुझे चाय चाहिए", res.Text)
	require.Equal(t, "whisper-1", fields["model"])
	require.Equal(t, "hi", fields["language"])
	require.True(t, strings.HasSuffix(filename, ".webm"), filename)
}

func TestTranscribeRequiresAudio(t *testing.T) {
	svc := NewService(&speechmodel.SpeechConfig{OpenAIKey: "sk-test"})

	_, err := svc.Transcribe(context.Background(), &speechmodel.TranscriptionRequest{})
	require.ErrorIs(t, err, ErrEmptyAudio)
}

func TestUploadNameKeepsExtension(t *testing.T) {
	require.True(t, strings.HasSuffix(uploadName("a.mp3"), ".mp3"))
	require.True(t, strings.HasSuffix(uploadName("noext"), ".webm"))
	require.NotEqual(t, uploadName("a.wav"), uploadName("a.wav"))
}

func TestTranscribeInvalidKey(t *testing.T) {
	svc := NewService(&speechmodel.SpeechConfig{Engine: config.EngineAzure, OpenAIKey: "nope"})

	_, err := svc.Transcribe(context.Background(), &speechmodel.TranscriptionRequest{
		Audio:    bytes.NewReader([]byte("webm-bytes")),
		Filename: "clip.webm",
	})
	require.ErrorIs(t, err, config.ErrCredentialsMissing)

	debug := svc.OpenAICredentialDebug()
	require.Equal(t, true, debug["hasKey"])
	require.Equal(t, 4, debug["keyLength"])
	require.Equal(t, false, debug["startsWithSk"])
	require.NotContains(t, svc.CredentialDebug(), "startsWithSk")
}
