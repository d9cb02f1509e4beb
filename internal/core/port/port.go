package port

import (
	"context"

	"github.com/niksmo/qkart/internal/core/domain"
)

// Outbound ports.

type CatalogAPI interface {
	Products(context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

type CartAPI interface {
	Cart(ctx context.Context, token string) ([]domain.CartLine, error)
	UpsertCart(ctx context.Context, token string, line domain.CartLine) ([]domain.CartLine, error)
	Checkout(ctx context.Context, token, addressID string) error
}

type AddressAPI interface {
	Addresses(ctx context.Context, token string) ([]domain.Address, error)
	AddAddress(ctx context.Context, token, text string) ([]domain.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) ([]domain.Address, error)
}

type AuthAPI interface {
	Login(context.Context, domain.Credentials) (domain.Login, error)
	Register(context.Context, domain.Credentials) error
}

// A BalanceAPI returns the authoritative wallet balance.
// ok is false when the backend does not expose one.
type BalanceAPI interface {
	Balance(ctx context.Context, token string) (balance int, ok bool, err error)
}

type BackendAPI interface {
	CatalogAPI
	CartAPI
	AddressAPI
	AuthAPI
	BalanceAPI
}

// A KeyValueStorage keeps string entries grouped by namespace.
// Set upserts the given entries. Set and Clear apply to the namespace
// atomically.
type KeyValueStorage interface {
	Get(ctx context.Context, namespace string) (map[string]string, error)
	Set(ctx context.Context, namespace string, entries map[string]string) error
	Clear(ctx context.Context, namespace string) error
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}

// Inbound ports.

type SessionLoader interface {
	LoadSession(ctx context.Context, sessionID string) (domain.Session, error)
}

type ProductsBrowser interface {
	ProductsPage(ctx context.Context, sessionID string) (domain.ProductsPage, error)
	Search(ctx context.Context, sessionID, query string) (domain.ProductsView, error)
	ScheduleSearch(sessionID, query string)
}

type CartManager interface {
	CartView(ctx context.Context, sessionID string) (domain.CartView, error)
	AddToCart(ctx context.Context, sessionID, productID string, qty int, preventDuplicate bool) (domain.CartView, error)
	ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (domain.CartView, error)
}

type CheckoutManager interface {
	CheckoutPage(ctx context.Context, sessionID string) (domain.CheckoutPage, error)
	AddAddress(ctx context.Context, sessionID, text string) (domain.AddressSelection, error)
	DeleteAddress(ctx context.Context, sessionID, addressID string) (domain.AddressSelection, error)
	SelectAddress(ctx context.Context, sessionID, addressID string) (domain.AddressSelection, error)
	Checkout(ctx context.Context, sessionID string) (domain.Order, error)
	ThanksPage(ctx context.Context, sessionID string) (domain.ThanksPage, error)
}

type Authenticator interface {
	Login(ctx context.Context, sessionID string, c domain.Credentials) (domain.Session, error)
	Register(ctx context.Context, r domain.Registration) error
	Logout(ctx context.Context, sessionID string) error
}

type Storefront interface {
	SessionLoader
	ProductsBrowser
	CartManager
	CheckoutManager
	Authenticator
}
