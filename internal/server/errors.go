package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/abhisek/erdgrade/internal/llm"
)

// Error kinds returned to clients.
const (
	KindBadRequest      = "bad_request"
	KindMissingData     = "missing_data"
	KindTooLarge        = "payload_too_large"
	KindGradingFailed   = "grading_failed"
	KindUpstreamFailure = "upstream_failure"
	KindUnavailable     = "unavailable"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, kind, msg string, err error) {
	resp := ErrorResponse{Error: msg, Kind: kind}
	if err != nil {
		resp.Details = err.Error()
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// upstreamStatus maps a model error to a response status.
func upstreamStatus(err error) int {
	var rateLimit *llm.ErrRateLimit
	if errors.As(err, &rateLimit) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// bodyError classifies a failure to read or decode a request body.
func bodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, r, http.StatusRequestEntityTooLarge, KindTooLarge, "request body too large", err)
		return
	}
	writeError(w, r, http.StatusBadRequest, KindBadRequest, "invalid JSON body", err)
}
