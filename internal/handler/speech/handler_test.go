package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/model/speech"
	speechsvc "github.com/namaste-emily/aasha/backend/internal/service/speech"
)

type fakeSpeech struct {
	result     *speech.SynthesisResult
	err        error
	gotReq     speech.SynthesisRequest
	gotOpenAI  string
	gotAudio   []byte
	gotName    string
	transcript string
}

func (f *fakeSpeech) Synthesize(_ context.Context, req speech.SynthesisRequest) (*speech.SynthesisResult, error) {
	f.gotReq = req
	return f.result, f.err
}

func (f *fakeSpeech) SynthesizeOpenAI(_ context.Context, text string) (*speech.SynthesisResult, error) {
	f.gotOpenAI = text
	return f.result, f.err
}

func (f *fakeSpeech) Transcribe(_ context.Context, req *speech.TranscriptionRequest) (*speech.TranscriptionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(req.Audio)
	if err != nil {
		return nil, err
	}
	f.gotAudio = data
	f.gotName = req.Filename
	return &speech.TranscriptionResponse{Text: f.transcript}, nil
}

func (f *fakeSpeech) CredentialDebug() map[string]any {
	return map[string]any{"hasKey": false, "hasRegion": false}
}

func (f *fakeSpeech) OpenAICredentialDebug() map[string]any {
	return map[string]any{"hasKey": false, "keyLength": 0, "startsWithSk": false}
}

func setupRouter(svc SpeechService, stt STTOptions) *chi.Mux {
	r := chi.NewRouter()
	New(svc, stt).RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestSpeechReturnsAudio(t *testing.T) {
	svc := &fakeSpeech{result: &speech.SynthesisResult{Audio: []byte("mp3"), ContentType: "audio/mpeg", Voice: "hi-IN-SwaraNeural"}}
	resp := postJSON(setupRouter(svc, STTOptions{}), "/speech", `{"text":"नमस्ते","slow":false}`)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "audio/mpeg", resp.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=3600", resp.Header().Get("Cache-Control"))
	require.Equal(t, "mp3", resp.Body.String())
	require.Equal(t, "नमस्ते", svc.gotReq.Text)
	require.False(t, svc.gotReq.IsSlow())
}

func TestSpeechMissingText(t *testing.T) {
	svc := &fakeSpeech{}
	for _, body := range []string{`{}`, `{"text":"   "}`} {
		resp := postJSON(setupRouter(svc, STTOptions{}), "/speech", body)
		require.Equal(t, http.StatusBadRequest, resp.Code)
		require.Equal(t, "Missing text", decode(t, resp)["error"])
	}
}

func TestSpeechMissingCredentials(t *testing.T) {
	svc := &fakeSpeech{err: fmt.Errorf("%w: azure key or region not set", config.ErrCredentialsMissing)}
	resp := postJSON(setupRouter(svc, STTOptions{}), "/speech", `{"text":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	out := decode(t, resp)
	require.Contains(t, out, "debug")
	require.Contains(t, out["error"], "credentials missing")
}

func TestSpeechAzureFailureCarriesSSML(t *testing.T) {
	svc := &fakeSpeech{err: &speechsvc.AzureError{
		StatusCode: http.StatusUnauthorized,
		Status:     "401 Unauthorized",
		Body:       "bad key",
		SSML:       "<speak/>",
	}}
	resp := postJSON(setupRouter(svc, STTOptions{}), "/speech", `{"text":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	out := decode(t, resp)
	require.Equal(t, "Azure TTS failed: 401 Unauthorized", out["error"])
	require.EqualValues(t, http.StatusUnauthorized, out["status"])
	require.Equal(t, "bad key", out["details"])
	require.Equal(t, "<speak/>", out["ssml"])
}

func TestTTSUsesOpenAI(t *testing.T) {
	svc := &fakeSpeech{result: &speech.SynthesisResult{Audio: []byte("mp3"), ContentType: "audio/mpeg"}}
	resp := postJSON(setupRouter(svc, STTOptions{}), "/tts", `{"text":"Namaste"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Namaste", svc.gotOpenAI)
}

func TestTTSProviderFailure(t *testing.T) {
	svc := &fakeSpeech{err: &speechsvc.OpenAIError{Op: "speech", Err: errors.New("quota")}}
	resp := postJSON(setupRouter(svc, STTOptions{}), "/tts", `{"text":"Namaste"}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	out := decode(t, resp)
	require.Equal(t, "tts_failed", out["error"])
	require.Equal(t, "quota", out["details"])
}

func TestSTTDisabledReturnsStub(t *testing.T) {
	resp := postJSON(setupRouter(&fakeSpeech{}, STTOptions{Enabled: false}), "/stt", `{}`)

	require.Equal(t, http.StatusOK, resp.Code)
	out := decode(t, resp)
	require.Equal(t, sttStubText, out["text"])
	require.Equal(t, "server_stt_not_implemented", out["error"])
}

func multipartAudio(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "clip.webm")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSTTTranscribesUpload(t *testing.T) {
	svc := &fakeSpeech{transcript: "namaste"}
	body, contentType := multipartAudio(t, "audio", []byte("webm-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	setupRouter(svc, STTOptions{Enabled: true}).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "namaste", decode(t, resp)["text"])
	require.Equal(t, []byte("webm-bytes"), svc.gotAudio)
	require.Equal(t, "clip.webm", svc.gotName)
}

func TestSTTMissingAudio(t *testing.T) {
	body, contentType := multipartAudio(t, "file", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	setupRouter(&fakeSpeech{}, STTOptions{Enabled: true}).ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "missing_audio", decode(t, resp)["error"])
}

func TestSTTNotMultipart(t *testing.T) {
	resp := postJSON(setupRouter(&fakeSpeech{}, STTOptions{Enabled: true}), "/stt", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSTTProviderFailure(t *testing.T) {
	svc := &fakeSpeech{err: &speechsvc.OpenAIError{Op: "transcription", Err: errors.New("bad audio")}}
	body, contentType := multipartAudio(t, "audio", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	setupRouter(svc, STTOptions{Enabled: true}).ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Equal(t, "stt_failed", decode(t, resp)["error"])
}

func TestSTTMissingCredentials(t *testing.T) {
	svc := &fakeSpeech{err: fmt.Errorf("transcribe: %w: OPENAI_API_KEY missing or invalid", config.ErrCredentialsMissing)}
	body, contentType := multipartAudio(t, "audio", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	setupRouter(svc, STTOptions{Enabled: true}).ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	out := decode(t, resp)
	debug, ok := out["debug"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, debug, "startsWithSk")
	require.NotContains(t, debug, "hasRegion")
}

func TestTTSMissingCredentialsReportsOpenAIKey(t *testing.T) {
	svc := &fakeSpeech{err: fmt.Errorf("%w: OPENAI_API_KEY missing or invalid", config.ErrCredentialsMissing)}
	resp := postJSON(setupRouter(svc, STTOptions{}), "/tts", `{"text":"Namaste"}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	debug, ok := decode(t, resp)["debug"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, debug, "startsWithSk")
}
