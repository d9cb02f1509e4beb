package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
)

const (
	msgLoggedIn   = "Logged in successfully"
	msgRegistered = "Registered successfully"
)

type AuthHandler struct {
	auth port.Authenticator
}

func RegisterAuth(mux *http.ServeMux, auth port.Authenticator) {
	h := AuthHandler{auth}
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/register", h.PostRegister)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
}

func (h AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogin"
	log := slog.With("op", op)

	var req loginRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	sess, err := h.auth.Login(r.Context(), SessionID(r.Context()), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, log, err, msgAuth)
		return
	}

	writeJSON(w, http.StatusOK, LoggedIn{
		Username: sess.Username,
		Balance:  sess.Balance,
		Notice:   successNotice(msgLoggedIn),
	})
}

func (h AuthHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostRegister"
	log := slog.With("op", op)

	var req registerRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	err := h.auth.Register(r.Context(), domain.Registration{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(w, log, err, msgAuth)
		return
	}
	writeNotice(w, http.StatusCreated, successNotice(msgRegistered))
}

func (h AuthHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogout"
	log := slog.With("op", op)

	if err := h.auth.Logout(r.Context(), SessionID(r.Context())); err != nil {
		writeError(w, log, err, msgAuth)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
