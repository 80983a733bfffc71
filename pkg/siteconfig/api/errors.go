package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string                 `json:"error"`
	Code       string                 `json:"code"`
	Violations []siteconfig.Violation `json:"violations,omitempty"`
}

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

// statusFor maps service errors to HTTP status and a stable code.
func statusFor(err error) (int, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, siteconfig.ErrValidationFailed):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, siteconfig.ErrDuplicateIdentity):
		return http.StatusConflict, "duplicate_identity"
	case errors.Is(err, siteconfig.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, siteconfig.ErrConfigurationError):
		return http.StatusServiceUnavailable, "generation_unavailable"
	case errors.Is(err, siteconfig.ErrGenerationFailed):
		return http.StatusBadGateway, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (h *ConfigHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	resp := ErrorResponse{Error: err.Error(), Code: code}
	var verr *siteconfig.ValidationError
	if errors.As(err, &verr) {
		resp.Violations = verr.Violations
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		if status == http.StatusInternalServerError {
			resp.Error = "internal server error"
		}
	} else {
		h.logger.Info("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
