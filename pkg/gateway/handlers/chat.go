package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/metrics"
)

// Responder generates the companion reply segments for a user message.
type Responder interface {
	Respond(ctx context.Context, userID, characterName, personality, userMessage string) ([]string, error)
}

type ChatHandler struct {
	Responder Responder
	Provider  string
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

type chatRequest struct {
	Message     string `json:"message"`
	Name        string `json:"name"`
	Personality string `json:"personality"`
	UserID      string `json:"user_id"`
}

type chatResponse struct {
	LLMAns []string `json:"llm_ans"`
}

func (h ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badReq := companion.NewInvalidRequestError("malformed request body")
		if h.Metrics != nil {
			h.Metrics.RecordError("chat", errorType(badReq))
		}
		writeError(w, r, badReq)
		return
	}

	segments, err := h.Responder.Respond(r.Context(), req.UserID, req.Name, req.Personality, req.Message)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("reply generation failed", "provider", h.Provider, "error", err)
		}
		if h.Metrics != nil {
			h.Metrics.RecordReply(h.Provider, "error", 0)
			h.Metrics.RecordError("chat", errorType(err))
		}
		writeError(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordReply(h.Provider, "ok", len(segments))
	}
	writeJSON(w, http.StatusOK, chatResponse{LLMAns: segments})
}
