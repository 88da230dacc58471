package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "gradinvite/internal/delivery/http/helpers"
	"gradinvite/internal/domain"
)

// statusFor maps a service error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, h.ErrCodeBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, h.ErrCodeUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, h.ErrCodeNotFound
	case errors.Is(err, domain.ErrCapacityExhausted):
		return http.StatusConflict, h.ErrCodeConflict
	case errors.Is(err, domain.ErrChatNotConfigured):
		return http.StatusServiceUnavailable, h.ErrCodeServiceUnavailable
	case errors.Is(err, domain.ErrChatUnavailable):
		return http.StatusBadGateway, h.ErrCodeBadGateway
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, h.ErrCodeServiceUnavailable
	default:
		return http.StatusInternalServerError, h.ErrCodeInternalError
	}
}

// publicMessage is what a client sees for err. Server side failures are
// reduced to their category; the detail only goes to the log.
func publicMessage(status int, err error, notFound string) string {
	switch {
	case status == http.StatusNotFound && notFound != "":
		return notFound
	case status >= 500:
		for _, sentinel := range []error{domain.ErrChatNotConfigured, domain.ErrChatUnavailable, domain.ErrStorageUnavailable} {
			if errors.Is(err, sentinel) {
				return sentinel.Error()
			}
		}
		return "internal error"
	default:
		return err.Error()
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	status, code := statusFor(err)
	if status >= 500 {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	h.WriteJSONError(w, status, code, publicMessage(status, err, notFound))
}
