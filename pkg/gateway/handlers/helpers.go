package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/apierror"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/mw"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) int {
	reqID, _ := mw.RequestIDFrom(r.Context())
	domainErr, status := apierror.FromError(err, reqID)
	writeJSON(w, status, apierror.Envelope{Error: domainErr})
	return status
}

// errorType returns the taxonomy label for an error, for metrics.
func errorType(err error) string {
	var domainErr *companion.Error
	if errors.As(err, &domainErr) {
		return string(domainErr.Type)
	}
	return string(companion.ErrAPI)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
