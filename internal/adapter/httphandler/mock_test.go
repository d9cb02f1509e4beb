package httphandler_test

import (
	"context"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/stretchr/testify/mock"
)

var _ port.Storefront = (*MockStorefront)(nil)

type MockStorefront struct {
	mock.Mock
}

func (m *MockStorefront) LoadSession(ctx context.Context, sid string) (domain.Session, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockStorefront) ProductsPage(ctx context.Context, sid string) (domain.ProductsPage, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.ProductsPage), args.Error(1)
}

func (m *MockStorefront) Search(ctx context.Context, sid, query string) (domain.ProductsView, error) {
	args := m.Called(ctx, sid, query)
	return args.Get(0).(domain.ProductsView), args.Error(1)
}

func (m *MockStorefront) ScheduleSearch(sid, query string) {
	m.Called(sid, query)
}

func (m *MockStorefront) CartView(ctx context.Context, sid string) (domain.CartView, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.CartView), args.Error(1)
}

func (m *MockStorefront) AddToCart(
	ctx context.Context, sid, productID string, qty int, preventDuplicate bool,
) (domain.CartView, error) {
	args := m.Called(ctx, sid, productID, qty, preventDuplicate)
	return args.Get(0).(domain.CartView), args.Error(1)
}

func (m *MockStorefront) ChangeQuantity(
	ctx context.Context, sid, productID string, delta int,
) (domain.CartView, error) {
	args := m.Called(ctx, sid, productID, delta)
	return args.Get(0).(domain.CartView), args.Error(1)
}

func (m *MockStorefront) CheckoutPage(ctx context.Context, sid string) (domain.CheckoutPage, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.CheckoutPage), args.Error(1)
}

func (m *MockStorefront) AddAddress(ctx context.Context, sid, text string) (domain.AddressSelection, error) {
	args := m.Called(ctx, sid, text)
	return args.Get(0).(domain.AddressSelection), args.Error(1)
}

func (m *MockStorefront) DeleteAddress(ctx context.Context, sid, id string) (domain.AddressSelection, error) {
	args := m.Called(ctx, sid, id)
	return args.Get(0).(domain.AddressSelection), args.Error(1)
}

func (m *MockStorefront) SelectAddress(ctx context.Context, sid, id string) (domain.AddressSelection, error) {
	args := m.Called(ctx, sid, id)
	return args.Get(0).(domain.AddressSelection), args.Error(1)
}

func (m *MockStorefront) Checkout(ctx context.Context, sid string) (domain.Order, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockStorefront) ThanksPage(ctx context.Context, sid string) (domain.ThanksPage, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.ThanksPage), args.Error(1)
}

func (m *MockStorefront) Login(
	ctx context.Context, sid string, c domain.Credentials,
) (domain.Session, error) {
	args := m.Called(ctx, sid, c)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockStorefront) Register(ctx context.Context, r domain.Registration) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStorefront) Logout(ctx context.Context, sid string) error {
	args := m.Called(ctx, sid)
	return args.Error(0)
}
