package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/account"
)

// AccountStore is the account persistence surface the handlers need.
type AccountStore interface {
	FindOrCreateByEmail(ctx context.Context, email string) (*account.Account, error)
	FindByUserID(ctx context.Context, userID string) (*account.Account, error)
	SetSubscription(ctx context.Context, userID, plan string) error
	IncrementTokens(ctx context.Context, userID string, delta int64) error
}

type accountResponse struct {
	UserID     string `json:"user_id"`
	Tokens     string `json:"tokens"`
	Subscribed string `json:"subscribed"`
}

// statusResponse mirrors the mutation endpoints' success/failure envelope.
type statusResponse struct {
	Status string `json:"status"`
}

type CheckEmailHandler struct {
	Accounts AccountStore
	Logger   *slog.Logger
}

// ServeHTTP resolves an email to its account, creating the account on
// first sight.
func (h CheckEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	email := r.FormValue("email")
	acct, err := h.Accounts.FindOrCreateByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		UserID:     acct.UserID,
		Tokens:     acct.Tokens,
		Subscribed: acct.Subscribed,
	})
}

type ChangeSubscriptionHandler struct {
	Accounts AccountStore
	Logger   *slog.Logger
}

func (h ChangeSubscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	userID := r.FormValue("user_id")
	selectedPlan := r.FormValue("selected_plan")
	if userID == "" {
		writeError(w, r, companion.NewInvalidRequestErrorWithParam("user_id is required", "user_id"))
		return
	}
	if selectedPlan == "" {
		writeError(w, r, companion.NewInvalidRequestErrorWithParam("selected_plan is required", "selected_plan"))
		return
	}

	err := h.Accounts.SetSubscription(r.Context(), userID, selectedPlan)
	if companion.IsNotFound(err) {
		// Unknown user is a soft failure, not an HTTP error.
		writeJSON(w, http.StatusOK, statusResponse{Status: "failure"})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

type IncreaseTokensHandler struct {
	Accounts AccountStore
	Logger   *slog.Logger
}

func (h IncreaseTokensHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		writeError(w, r, companion.NewInvalidRequestErrorWithParam("user_id is required", "user_id"))
		return
	}
	delta, err := strconv.ParseInt(r.FormValue("tokens_to_increase"), 10, 64)
	if err != nil {
		writeError(w, r, companion.NewInvalidRequestErrorWithParam("tokens_to_increase must be an integer", "tokens_to_increase"))
		return
	}

	err = h.Accounts.IncrementTokens(r.Context(), userID, delta)
	if companion.IsNotFound(err) {
		writeJSON(w, http.StatusOK, statusResponse{Status: "failure"})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}
