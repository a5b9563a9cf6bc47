package handlers

import (
	"context"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/catalog"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion/history"
)

// CatalogLister lists the companions available to chat with.
type CatalogLister interface {
	ListActive(ctx context.Context) ([]catalog.Companion, error)
}

type CompanionsHandler struct {
	Catalog CatalogLister
}

func (h CompanionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	companions, err := h.Catalog.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"companions": companions})
}

// HistoryReader returns the recent chat history for a user and companion.
type HistoryReader interface {
	Recent(ctx context.Context, userID, companionName string, limit int) ([]history.Message, error)
}

type MessagesHandler struct {
	History HistoryReader
}

func (h MessagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	messages, err := h.History.Recent(r.Context(), q.Get("user_id"), q.Get("companion_name"), 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
