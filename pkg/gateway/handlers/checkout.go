package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/metrics"
)

// CheckoutInitiator starts a hosted checkout session and returns its URL.
type CheckoutInitiator interface {
	Create(ctx context.Context, userID, plan, email string) (string, error)
}

type CheckoutHandler struct {
	Checkout CheckoutInitiator
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// ServeHTTP creates a checkout session and redirects the browser to the
// hosted payment page. Failures surface as JSON errors instead of a
// redirect.
func (h CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	selectedPlan := r.URL.Query().Get("selected_plan")
	email := r.URL.Query().Get("email")

	checkoutURL, err := h.Checkout.Create(r.Context(), userID, selectedPlan, email)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("checkout session failed", "user_id", userID, "plan", selectedPlan, "error", err)
		}
		if h.Metrics != nil {
			h.Metrics.RecordCheckout(selectedPlan, "error")
			h.Metrics.RecordError("checkout", errorType(err))
		}
		writeError(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordCheckout(selectedPlan, "ok")
	}
	http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
}
