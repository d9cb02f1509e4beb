package httphandler

import (
	"net/http"

	"github.com/niksmo/qkart/internal/core/port"
	"github.com/rs/cors"
)

// NewRouter returns the storefront JSON API. Cross origin requests are
// allowed from corsOrigins only, with credentials so the session cookie
// travels.
func NewRouter(s port.Storefront, cookieName string, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()
	RegisterProducts(mux, s)
	RegisterCart(mux, s)
	RegisterCheckout(mux, s)
	RegisterAuth(mux, s)

	handler := Sessions(cookieName, AllowJSON(mux))
	if len(corsOrigins) == 0 {
		return handler
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(handler)
}
