package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/qkart/internal/core/port"
)

const msgOrderPlaced = "Order placed successfully :)"

type CheckoutHandler struct {
	checkout port.CheckoutManager
}

func RegisterCheckout(mux *http.ServeMux, checkout port.CheckoutManager) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("GET /v1/checkout", h.GetCheckout)
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
	mux.HandleFunc("POST /v1/addresses", h.PostAddress)
	mux.HandleFunc("DELETE /v1/addresses/{id}", h.DeleteAddress)
	mux.HandleFunc("PUT /v1/addresses/selected", h.PutSelected)
	mux.HandleFunc("GET /v1/thanks", h.GetThanks)
}

func (h CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetCheckout"
	log := slog.With("op", op)

	page, err := h.checkout.CheckoutPage(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, log, err, msgFetchAddresses)
		return
	}
	writeJSON(w, http.StatusOK, fromCheckoutPage(page))
}

func (h CheckoutHandler) PostAddress(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostAddress"
	log := slog.With("op", op)

	var req addAddressRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	sel, err := h.checkout.AddAddress(r.Context(), SessionID(r.Context()), req.Address)
	if err != nil {
		writeError(w, log, err, msgAddAddress)
		return
	}
	writeJSON(w, http.StatusOK, fromAddresses(sel))
}

func (h CheckoutHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.DeleteAddress"
	log := slog.With("op", op)

	sel, err := h.checkout.DeleteAddress(
		r.Context(), SessionID(r.Context()), r.PathValue("id"),
	)
	if err != nil {
		writeError(w, log, err, msgDeleteAddress)
		return
	}
	writeJSON(w, http.StatusOK, fromAddresses(sel))
}

func (h CheckoutHandler) PutSelected(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PutSelected"
	log := slog.With("op", op)

	var req selectAddressRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	sel, err := h.checkout.SelectAddress(r.Context(), SessionID(r.Context()), req.AddressID)
	if err != nil {
		writeError(w, log, err, msgSelectAddress)
		return
	}
	writeJSON(w, http.StatusOK, fromAddresses(sel))
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	order, err := h.checkout.Checkout(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, log, err, msgPlaceOrder)
		return
	}

	log.Info("order placed", "total", order.Total)
	writeJSON(w, http.StatusOK, Order{
		AddressID: order.AddressID,
		Total:     order.Total,
		Balance:   order.Balance,
		Notice:    successNotice(msgOrderPlaced),
	})
}

func (h CheckoutHandler) GetThanks(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetThanks"
	log := slog.With("op", op)

	page, err := h.checkout.ThanksPage(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, log, err, msgAuth)
		return
	}
	writeJSON(w, http.StatusOK, ThanksPage{Username: page.Username, Balance: page.Balance})
}
