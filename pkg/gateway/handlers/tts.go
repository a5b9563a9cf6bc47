package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice/tts"
)

type TTSHandler struct {
	TTS    tts.Provider
	Logger *slog.Logger
}

type ttsRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// ServeHTTP synthesizes one utterance and returns the raw audio.
func (h TTSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, companion.NewInvalidRequestError("malformed request body"))
		return
	}
	if req.Text == "" {
		writeError(w, r, companion.NewInvalidRequestErrorWithParam("text is required", "text"))
		return
	}

	synthesis, err := h.TTS.Synthesize(r.Context(), req.Text, tts.SynthesizeOptions{
		Voice:  req.VoiceID,
		Format: "mp3",
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("synthesis failed", "provider", h.TTS.Name(), "error", err)
		}
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(synthesis.Audio)
}
