package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/qkart/internal/core/domain"
)

const (
	variantError   = "error"
	variantSuccess = "success"
)

// A Notice is a toast shown to the visitor.
type Notice struct {
	Message string `json:"message"`
	Variant string `json:"variant"`
}

func errorNotice(msg string) Notice {
	return Notice{Message: msg, Variant: variantError}
}

func successNotice(msg string) Notice {
	return Notice{Message: msg, Variant: variantSuccess}
}

// Messages shown when the backend gives no usable answer.
const (
	msgFetchProducts  = "Could not fetch products. Check that the backend is running, reachable and returns valid JSON."
	msgSearchProducts = "Failed to fetch products."
	msgFetchCart      = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	msgUpdateCart     = "Could not update cart details. Check if backend is running."
	msgFetchAddresses = "Could not fetch addresses. Check that the backend is running, reachable and returns valid JSON."
	msgAddAddress     = "Could not add this address."
	msgDeleteAddress  = "Could not delete this address."
	msgSelectAddress  = "Could not select this address."
	msgPlaceOrder     = "Could not place order."
	msgAuth           = "Something went wrong. Please try again later"
	msgInvalidJSON    = "invalid JSON data"
)

// noticeFor maps err to a response status and the notice to show.
// fallback replaces messages the visitor can not act on.
func noticeFor(err error, fallback string) (int, Notice) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotLoggedIn) {
			status = http.StatusUnauthorized
		}
		return status, Notice{
			Message: validationErr.Message,
			Variant: string(validationErr.Severity),
		}
	}

	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) {
		status := http.StatusBadGateway
		if remoteErr.StatusCode >= 400 && remoteErr.StatusCode < 500 {
			status = remoteErr.StatusCode
		}
		return status, errorNotice(remoteErr.Message)
	}

	if errors.Is(err, domain.ErrBackendUnreachable) {
		return http.StatusBadGateway, errorNotice(fallback)
	}

	return http.StatusInternalServerError, errorNotice(fallback)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error, fallback string) {
	status, n := noticeFor(err, fallback)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Warn("request rejected", "status", status, "err", err)
	}
	writeNotice(w, status, n)
}

func writeNotice(w http.ResponseWriter, status int, n Notice) {
	writeJSON(w, status, n)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", "httphandler.writeJSON", "err", err)
	}
}

// decodeJSON decodes the request body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeNotice(w, http.StatusBadRequest, errorNotice(msgInvalidJSON))
		return false
	}
	return true
}

func mustNoticeBody(n Notice) string {
	b, err := json.Marshal(n)
	if err != nil {
		panic(err)
	}
	return string(b)
}
