package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

type Envelope struct {
	Error *companion.Error `json:"error"`
}

func FromError(err error, requestID string) (*companion.Error, int) {
	if err == nil {
		return nil, http.StatusOK
	}

	// Context timeouts/cancellation.
	if errors.Is(err, context.DeadlineExceeded) {
		return &companion.Error{
			Type:      companion.ErrAPI,
			Message:   "request timeout",
			RequestID: requestID,
		}, http.StatusGatewayTimeout
	}
	if errors.Is(err, context.Canceled) {
		return &companion.Error{
			Type:      companion.ErrAPI,
			Message:   "request cancelled",
			RequestID: requestID,
		}, http.StatusRequestTimeout
	}

	// Already canonical.
	var domainErr *companion.Error
	if errors.As(err, &domainErr) && domainErr != nil {
		out := *domainErr
		out.RequestID = requestID
		return &out, statusFromType(domainErr.Type)
	}

	// Unknown errors: treat as internal API error (do not leak details by default).
	return &companion.Error{
		Type:      companion.ErrAPI,
		Message:   "internal error",
		RequestID: requestID,
	}, http.StatusInternalServerError
}

func statusFromType(t companion.ErrorType) int {
	switch t {
	case companion.ErrInvalidRequest:
		return http.StatusBadRequest
	case companion.ErrNotFound:
		return http.StatusNotFound
	case companion.ErrConflict:
		return http.StatusConflict
	case companion.ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	case companion.ErrProviderUnavailable:
		return http.StatusBadGateway
	case companion.ErrCheckoutFailed:
		return http.StatusBadGateway
	case companion.ErrAPI:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
