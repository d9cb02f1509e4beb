package httphandler

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// AllowJSON rejects requests with a body that is not JSON.
func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			writeNotice(w, http.StatusUnsupportedMediaType, errorNotice("invalid media type"))
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type sessionKey struct{}

// Sessions attaches the visitor session id to the request context.
// The id is read from the cookie and issued when absent or malformed.
func Sessions(cookieName string, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(cookieName); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				sessionID = id.String()
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   servedOverTLS(r),
				SameSite: http.SameSiteLaxMode,
			})
			slog.Debug("session issued", "op", "httphandler.Sessions")
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

// servedOverTLS reports whether the visitor reached the server over
// https, directly or through a TLS terminating proxy.
func servedOverTLS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// SessionID returns the session id set by [Sessions].
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
