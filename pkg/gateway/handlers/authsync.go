package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
)

// AccountSyncer resolves an identity-provider user to a local account.
type AccountSyncer interface {
	Sync(ctx context.Context, workosUserID string) (*account.Account, error)
}

type AuthSyncHandler struct {
	Syncer AccountSyncer
	Logger *slog.Logger
}

type authSyncRequest struct {
	UserID string `json:"user_id"`
}

func (h AuthSyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req authSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, companion.NewInvalidRequestError("malformed request body"))
		return
	}

	acct, err := h.Syncer.Sync(r.Context(), req.UserID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("auth sync failed", "workos_user_id", req.UserID, "error", err)
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		UserID:     acct.UserID,
		Tokens:     acct.Tokens,
		Subscribed: acct.Subscribed,
	})
}
