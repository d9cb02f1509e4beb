package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/qkart/internal/core/port"
)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(mux *http.ServeMux, cart port.CartManager) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart", h.PostCart)
	mux.HandleFunc("POST /v1/cart/{productId}/increment", h.changeQuantity(1))
	mux.HandleFunc("POST /v1/cart/{productId}/decrement", h.changeQuantity(-1))
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	v, err := h.cart.CartView(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, log, err, msgFetchCart)
		return
	}
	writeJSON(w, http.StatusOK, fromCartView(v))
}

func (h CartHandler) PostCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCart"
	log := slog.With("op", op)

	var req addToCartRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	v, err := h.cart.AddToCart(
		r.Context(), SessionID(r.Context()),
		req.ProductID, req.Qty, req.PreventDuplicate,
	)
	if err != nil {
		writeError(w, log, err, msgUpdateCart)
		return
	}
	writeJSON(w, http.StatusOK, fromCartView(v))
}

func (h CartHandler) changeQuantity(delta int) http.HandlerFunc {
	const op = "CartHandler.changeQuantity"
	return func(w http.ResponseWriter, r *http.Request) {
		log := slog.With("op", op, "delta", delta)

		v, err := h.cart.ChangeQuantity(
			r.Context(), SessionID(r.Context()), r.PathValue("productId"), delta,
		)
		if err != nil {
			writeError(w, log, err, msgUpdateCart)
			return
		}
		writeJSON(w, http.StatusOK, fromCartView(v))
	}
}
