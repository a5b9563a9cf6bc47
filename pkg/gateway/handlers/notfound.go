package handlers

import (
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/apierror"
	"github.com/Jaivik01092001/pinkhoney-main/pkg/gateway/mw"
)

type NotFoundHandler struct{}

func (h NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID, _ := mw.RequestIDFrom(r.Context())
	writeJSON(w, http.StatusNotFound, apierror.Envelope{Error: &companion.Error{
		Type:      companion.ErrNotFound,
		Message:   "not found",
		RequestID: reqID,
	}})
}
