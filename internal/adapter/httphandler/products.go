package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/qkart/internal/core/port"
)

type ProductsHandler struct {
	browser port.ProductsBrowser
}

func RegisterProducts(mux *http.ServeMux, browser port.ProductsBrowser) {
	h := ProductsHandler{browser}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/search", h.GetSearch)
	mux.HandleFunc("POST /v1/products/search", h.PostSearch)
}

// GetProducts answers the products page: the grid on screen, the cart
// sidebar and the login state.
func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	page, err := h.browser.ProductsPage(r.Context(), SessionID(r.Context()))
	if err != nil {
		writeError(w, log, err, msgFetchProducts)
		return
	}
	writeJSON(w, http.StatusOK, fromProductsPage(page))
}

func (h ProductsHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetSearch"
	log := slog.With("op", op)

	query := r.URL.Query().Get("value")

	pv, err := h.browser.Search(r.Context(), SessionID(r.Context()), query)
	if err != nil {
		writeError(w, log, err, msgSearchProducts)
		return
	}
	writeJSON(w, http.StatusOK, fromProductsView(pv))
}

// PostSearch takes a keystroke of the search box. The result is picked up
// by the next GetProducts.
func (h ProductsHandler) PostSearch(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostSearch"
	log := slog.With("op", op)

	var req searchRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	h.browser.ScheduleSearch(SessionID(r.Context()), req.Value)
	w.WriteHeader(http.StatusAccepted)
}
