package httphandler

import "github.com/niksmo/qkart/internal/core/domain"

type (
	Product struct {
		ID       string `json:"_id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Cost     int    `json:"cost"`
		Rating   int    `json:"rating"`
		Image    string `json:"image"`
		Stock    *int   `json:"stock,omitempty"`
	}

	ProductsView struct {
		Products []Product `json:"products"`
		Notice   string    `json:"notice,omitempty"`
		Query    string    `json:"query"`
	}

	// A CartItem has a nil Product when the catalog has no such id.
	CartItem struct {
		ProductID string   `json:"productId"`
		Qty       int      `json:"qty"`
		Product   *Product `json:"product"`
	}

	CartView struct {
		Items []CartItem `json:"items"`
		Total int        `json:"total"`
		Count int        `json:"count"`
	}

	ProductsPage struct {
		ProductsView
		LoggedIn bool     `json:"loggedIn"`
		Username string   `json:"username,omitempty"`
		Cart     CartView `json:"cart"`
	}

	Address struct {
		ID      string `json:"_id"`
		Address string `json:"address"`
	}

	Addresses struct {
		All      []Address `json:"all"`
		Selected string    `json:"selected"`
	}

	OrderSummary struct {
		Products int `json:"products"`
		Subtotal int `json:"subtotal"`
		Shipping int `json:"shipping"`
		Total    int `json:"total"`
	}

	CheckoutPage struct {
		Cart      CartView     `json:"cart"`
		Summary   OrderSummary `json:"summary"`
		Addresses Addresses    `json:"addresses"`
		Balance   int          `json:"balance"`
	}

	Order struct {
		AddressID string `json:"addressId"`
		Total     int    `json:"total"`
		Balance   int    `json:"balance"`
		Notice
	}

	ThanksPage struct {
		Username string `json:"username"`
		Balance  int    `json:"balance"`
	}

	LoggedIn struct {
		Username string `json:"username"`
		Balance  int    `json:"balance"`
		Notice
	}
)

// Request bodies.
type (
	searchRequest struct {
		Value string `json:"value"`
	}

	addToCartRequest struct {
		ProductID        string `json:"productId"`
		Qty              int    `json:"qty"`
		PreventDuplicate bool   `json:"preventDuplicate"`
	}

	addAddressRequest struct {
		Address string `json:"address"`
	}

	selectAddressRequest struct {
		AddressID string `json:"addressId"`
	}

	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	registerRequest struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
)

func fromProduct(p domain.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Cost:     p.Cost,
		Rating:   p.Rating,
		Image:    p.Image,
		Stock:    p.Stock,
	}
}

func fromProductsView(v domain.ProductsView) ProductsView {
	ps := make([]Product, len(v.Products))
	for i, p := range v.Products {
		ps[i] = fromProduct(p)
	}
	return ProductsView{Products: ps, Notice: v.Notice, Query: v.Query}
}

func fromCartView(v domain.CartView) CartView {
	items := make([]CartItem, len(v.Items))
	for i, it := range v.Items {
		items[i] = CartItem{ProductID: it.ProductID, Qty: it.Qty}
		if it.Product != nil {
			p := fromProduct(*it.Product)
			items[i].Product = &p
		}
	}
	return CartView{Items: items, Total: v.Total, Count: v.Count}
}

func fromProductsPage(v domain.ProductsPage) ProductsPage {
	return ProductsPage{
		ProductsView: fromProductsView(v.ProductsView),
		LoggedIn:     v.LoggedIn,
		Username:     v.Username,
		Cart:         fromCartView(v.Cart),
	}
}

func fromAddresses(v domain.AddressSelection) Addresses {
	as := make([]Address, len(v.All))
	for i, a := range v.All {
		as[i] = Address{ID: a.ID, Address: a.Text}
	}
	return Addresses{All: as, Selected: v.Selected}
}

func fromCheckoutPage(v domain.CheckoutPage) CheckoutPage {
	return CheckoutPage{
		Cart: fromCartView(v.Cart),
		Summary: OrderSummary{
			Products: v.Summary.Products,
			Subtotal: v.Summary.Subtotal,
			Shipping: v.Summary.Shipping,
			Total:    v.Summary.Total,
		},
		Addresses: fromAddresses(v.Addresses),
		Balance:   v.Balance,
	}
}
