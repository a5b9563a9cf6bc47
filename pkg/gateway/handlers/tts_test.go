package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

func TestTTS_ReturnsAudio(t *testing.T) {
	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	h := TTSHandler{TTS: speech}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tts",
		strings.NewReader(`{"text":"Hey you!","voice_id":"v1"}`))

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("Content-Type = %q", got)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if speech.got != "Hey you!" {
		t.Fatalf("synthesized text = %q", speech.got)
	}
}

func TestTTS_RequiresText(t *testing.T) {
	h := TTSHandler{TTS: &fakeSpeech{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tts", strings.NewReader(`{"voice_id":"v1"}`))

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Param != "text" {
		t.Fatalf("param = %q, want text", env.Error.Param)
	}
}

func TestTTS_ProviderFailure(t *testing.T) {
	h := TTSHandler{TTS: &fakeSpeech{err: companion.NewProviderUnavailableError("cartesia", nil)}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tts", strings.NewReader(`{"text":"hi"}`))

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
