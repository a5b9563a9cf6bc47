package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/voice"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/metrics"
)

type VoiceInitiateHandler struct {
	Calls   *voice.Registry
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type voiceInitiateRequest struct {
	UserID        string `json:"user_id"`
	CompanionName string `json:"companion_name"`
	Personality   string `json:"personality"`
	VoiceID       string `json:"voice_id"`
}

func (h VoiceInitiateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req voiceInitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, companion.NewInvalidRequestError("malformed request body"))
		return
	}

	call, err := h.Calls.Initiate(req.UserID, req.CompanionName, req.Personality, req.VoiceID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordCallStart()
	}
	if h.Logger != nil {
		h.Logger.Info("voice call initiated",
			"session_id", call.ID, "user_id", call.UserID, "companion", call.CompanionName)
	}
	writeJSON(w, http.StatusOK, call)
}

type VoiceEndHandler struct {
	Calls   *voice.Registry
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type voiceEndRequest struct {
	SessionID string `json:"session_id"`
}

func (h VoiceEndHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req voiceEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, companion.NewInvalidRequestError("malformed request body"))
		return
	}
	if req.SessionID == "" {
		writeError(w, r, companion.NewInvalidRequestErrorWithParam("session_id is required", "session_id"))
		return
	}

	duration, ok := h.Calls.End(req.SessionID)
	if !ok {
		writeJSON(w, http.StatusOK, statusResponse{Status: "failure"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordCallEnd("ended", duration)
	}
	if h.Logger != nil {
		h.Logger.Info("voice call ended", "session_id", req.SessionID, "duration_ms", duration.Milliseconds())
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

type VoiceSessionHandler struct {
	Calls  *voice.Registry
	Agent  *voice.Agent
	Logger *slog.Logger

	Upgrader websocket.Upgrader
}

// ServeHTTP upgrades the connection and runs the live call loop for an
// initiated session.
func (h VoiceSessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	call, ok := h.Calls.Get(sessionID)
	if !ok {
		writeError(w, r, companion.NewNotFoundError("voice session not found"))
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		return
	}
	defer conn.Close()

	if err := h.Agent.ServeSession(r.Context(), conn, call); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("voice session closed with error", "session_id", sessionID, "error", err)
		}
	}
}
