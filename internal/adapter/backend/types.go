package backend

import "github.com/niksmo/qkart/internal/core/domain"

type (
	product struct {
		ID       string `json:"_id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Cost     int    `json:"cost"`
		Rating   int    `json:"rating"`
		Image    string `json:"image"`
		Stock    *int   `json:"stock,omitempty"`
	}

	cartLine struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}

	address struct {
		ID      string `json:"_id"`
		Address string `json:"address"`
	}

	checkoutRequest struct {
		AddressID string `json:"addressId"`
	}

	addressRequest struct {
		Address string `json:"address"`
	}

	credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	loginResponse struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		Username string `json:"username"`
		Balance  int    `json:"balance"`
	}

	balanceResponse struct {
		Balance int `json:"balance"`
	}

	errorResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

func toDomainProducts(ps []product) []domain.Product {
	vs := make([]domain.Product, len(ps))
	for i, p := range ps {
		vs[i] = domain.Product{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Cost:     p.Cost,
			Rating:   p.Rating,
			Image:    p.Image,
			Stock:    p.Stock,
		}
	}
	return vs
}

func toDomainLines(ls []cartLine) []domain.CartLine {
	vs := make([]domain.CartLine, len(ls))
	for i, l := range ls {
		vs[i] = domain.CartLine{ProductID: l.ProductID, Qty: l.Qty}
	}
	return vs
}

func toDomainAddresses(as []address) []domain.Address {
	vs := make([]domain.Address, len(as))
	for i, a := range as {
		vs[i] = domain.Address{ID: a.ID, Text: a.Address}
	}
	return vs
}
